package boot

/*
Kafka 관련 설정을 담는 옵션 구조체입니다.
Axon 부트스트랩 단계에서 Kafka Consumer 구성을 제어합니다.
*/
type KafkaOptions struct {
	// Kafka 브로커 주소 목록
	Brokers []string

	/*
		이벤트 소비(Consumer) 설정
		nil이면 Kafka Consumer Runtime은 활성화되지 않습니다.
	*/
	Read *KafkaReadOptions
}

/*
Kafka 이벤트 소비 시 사용되는 설정입니다.
Consumer Group 단위의 실행을 제어합니다.
*/
type KafkaReadOptions struct {
	// Kafka Consumer Group ID
	GroupID string
}

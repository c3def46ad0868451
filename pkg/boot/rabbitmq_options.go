package boot

/*
RabbitMQ 관련 설정을 담는 옵션 구조체입니다.
*/
type RabbitMqOptions struct {
	// amqp:// 형식의 접속 URL
	URL string

	/*
		이벤트 소비(Consumer) 설정
		nil이면 RabbitMQ Consumer Runtime은 활성화되지 않습니다.
	*/
	Read *RabbitMqReadOptions
}

type RabbitMqReadOptions struct {
	// 소비할 Queue 이름. 빈 값이면 바인딩의 Topic이 Queue 이름으로 사용됩니다.
	Queue string
}

package boot

import "time"

type Options struct {
	Address                string
	EnableGracefulShutdown bool
	ShutdownTimeout        time.Duration

	// true면 부트스트랩 단계에서 모든 서비스 타입을 미리 인스턴스화하여
	// 생성자 구성 문제를 기동 시점에 드러냅니다.
	WarmUp bool

	// nil이면 WebSocket 허브는 활성화되지 않습니다.
	Hub *HubOptions

	// nil이면 Kafka Consumer Runtime은 활성화되지 않습니다.
	Kafka *KafkaOptions

	// nil이면 RabbitMQ Consumer Runtime은 활성화되지 않습니다.
	RabbitMq *RabbitMqOptions
}

// HubOptions는 WebSocket 허브 transport 설정입니다.
type HubOptions struct {
	// 허브가 마운트될 경로. 빈 값이면 "/hub"가 사용됩니다.
	Path string
}

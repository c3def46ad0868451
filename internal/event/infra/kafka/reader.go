package kafka

import (
	"context"
	"errors"

	"github.com/NARUBROWN/axon/internal/event/consumer"
	"github.com/NARUBROWN/axon/pkg/boot"
	"github.com/segmentio/kafka-go"
)

type Reader struct {
	reader *kafka.Reader
}

func NewKafkaReader(topic string, opts boot.KafkaOptions) (*Reader, error) {
	if len(opts.Brokers) == 0 {
		return nil, errors.New("Kafka Brokers가 설정되지 않았습니다")
	}
	if opts.Read == nil {
		return nil, errors.New("Kafka Read 옵션이 설정되지 않았습니다")
	}
	if opts.Read.GroupID == "" {
		return nil, errors.New("Kafka Read GroupID가 비어 있습니다")
	}
	if topic == "" {
		return nil, errors.New("Kafka topic이 비어 있습니다")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: opts.Brokers,
		Topic:   topic,
		GroupID: opts.Read.GroupID,
	})

	return &Reader{
		reader: reader,
	}, nil
}

// Read는 메시지를 가져오되 커밋은 ACK 시점으로 미룹니다.
// 호출이 실패하면 커밋되지 않은 메시지는 재전달됩니다.
func (r *Reader) Read(ctx context.Context) (consumer.Message, error) {
	m, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return consumer.Message{}, err
	}

	return consumer.Message{
		EventName: m.Topic,
		Payload:   m.Value,
		AckFn: func() error {
			return r.reader.CommitMessages(ctx, m)
		},
		NackFn: func() error {
			// 커밋하지 않으면 컨슈머 그룹 재시작 시 재전달된다.
			return nil
		},
	}, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

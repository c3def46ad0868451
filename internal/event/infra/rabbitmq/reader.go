package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	"github.com/NARUBROWN/axon/internal/event/consumer"
	"github.com/NARUBROWN/axon/pkg/boot"
	"github.com/rabbitmq/amqp091-go"
)

type Reader struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	queue      string
	deliveries <-chan amqp091.Delivery
}

func NewRabbitMqReader(topic string, opts boot.RabbitMqOptions) (*Reader, error) {
	if opts.URL == "" {
		return nil, errors.New("RabbitMQ URL이 설정되지 않았습니다")
	}
	if opts.Read == nil {
		return nil, errors.New("RabbitMQ Read 옵션이 설정되지 않았습니다")
	}

	queue := opts.Read.Queue
	if queue == "" {
		queue = topic
	}

	conn, err := amqp091.Dial(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("RabbitMQ 접속 실패: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("RabbitMQ 채널 생성 실패: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("RabbitMQ Queue 선언 실패: %w", err)
	}

	deliveries, err := ch.Consume(
		queue,
		"",    // consumer tag 자동 생성
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("RabbitMQ Consume 시작 실패: %w", err)
	}

	return &Reader{
		conn:       conn,
		channel:    ch,
		queue:      queue,
		deliveries: deliveries,
	}, nil
}

func (r *Reader) Read(ctx context.Context) (consumer.Message, error) {
	select {
	case <-ctx.Done():
		return consumer.Message{}, ctx.Err()
	case d, ok := <-r.deliveries:
		if !ok {
			return consumer.Message{}, errors.New("RabbitMQ delivery 채널이 닫혔습니다")
		}

		return consumer.Message{
			EventName: r.queue,
			Payload:   d.Body,
			AckFn: func() error {
				return d.Ack(false)
			},
			NackFn: func() error {
				// requeue하여 재전달을 브로커에 맡긴다.
				return d.Nack(false, true)
			},
		}, nil
	}
}

func (r *Reader) Close() error {
	if err := r.channel.Close(); err != nil {
		_ = r.conn.Close()
		return err
	}
	return r.conn.Close()
}

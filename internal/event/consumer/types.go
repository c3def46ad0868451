package consumer

import "context"

// Message는 브로커에서 수신한 이벤트 하나입니다.
type Message struct {
	EventName string
	Payload   []byte

	AckFn  func() error
	NackFn func() error
}

func (m Message) Ack() error {
	if m.AckFn == nil {
		return nil
	}
	return m.AckFn()
}

func (m Message) Nack() error {
	if m.NackFn == nil {
		return nil
	}
	return m.NackFn()
}

// Reader는 브로커별 소비 구현이 만족해야 하는 계약입니다.
type Reader interface {
	Read(ctx context.Context) (Message, error)
	Close() error
}

package ws

import "context"

type senderKeyType struct{}

var senderKey = senderKeyType{}

// Sender는 허브 메서드가 자신의 연결로 프레임을 직접 push할 때 사용하는 계약입니다.
type Sender interface {
	ConnID() string
	Send(data []byte) error
}

type connSender struct {
	connID string
	send   func(data []byte) error
}

func (s *connSender) ConnID() string         { return s.connID }
func (s *connSender) Send(data []byte) error { return s.send(data) }

// WithSender는 호출 컨텍스트에 연결 Sender를 부착합니다.
// WebSocket transport 내부에서만 호출됩니다.
func WithSender(ctx context.Context, connID string, send func(data []byte) error) context.Context {
	return context.WithValue(ctx, senderKey, &connSender{connID: connID, send: send})
}

// Send는 현재 호출이 WebSocket 연결에서 시작된 경우 해당 연결로
// 데이터를 push합니다. WebSocket 외의 transport에서는 조용히 무시됩니다.
func Send(ctx context.Context, data []byte) error {
	sender, ok := ctx.Value(senderKey).(Sender)
	if !ok || sender == nil {
		return nil
	}
	return sender.Send(data)
}

// From은 컨텍스트에 부착된 Sender를 꺼냅니다.
func From(ctx context.Context) (Sender, bool) {
	sender, ok := ctx.Value(senderKey).(Sender)
	return sender, ok
}

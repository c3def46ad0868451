package consumer

import "sync"

// Registration은 토픽 하나를 노출 메서드 하나에 바인딩합니다.
// 해당 토픽으로 수신한 메시지의 payload가 그 메서드의 인자 목록이 됩니다.
type Registration struct {
	Topic  string
	Method string
}

type Registry struct {
	mu            sync.RWMutex
	registrations []Registration
}

func NewRegistry() *Registry {
	return &Registry{
		registrations: make([]Registration, 0),
	}
}

func (r *Registry) Register(topic string, method string) {
	if topic == "" {
		panic("consumer: topic이 빈 값일 수 없습니다")
	}
	if method == "" {
		panic("consumer: method가 빈 값일 수 없습니다")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations = append(r.registrations, Registration{
		Topic:  topic,
		Method: method,
	})
}

func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cpy := make([]Registration, len(r.registrations))
	copy(cpy, r.registrations)
	return cpy
}

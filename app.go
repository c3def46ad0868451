package axon

import (
	"github.com/NARUBROWN/axon/core"
	"github.com/NARUBROWN/axon/internal/bootstrap"
	"github.com/NARUBROWN/axon/pkg/boot"
)

// Expose는 메서드 하나를 외부에 노출하겠다는 선언입니다.
// fn은 (*Service).Method 형태의 메서드 표현식이어야 합니다.
func Expose(name string, fn any) core.MethodSpec {
	return core.MethodSpec{Name: name, Fn: fn}
}

type App interface {
	// 서비스 선언: 생성자 하나와 노출 메서드 목록
	Service(constructor any, methods ...core.MethodSpec)
	// 이벤트 토픽을 노출 메서드에 바인딩
	Bind(topic string, method string)
	// 사용자 정의 transport 등록
	Custom(transports ...core.CustomTransport)
	// 내장 transport 핸들러를 관찰 (통합 테스트용)
	Transport(observer func(v any))
	// 실행
	Run(opts boot.Options) error
}

type app struct {
	services   []core.ServiceDefinition
	bindings   []bootstrap.Binding
	transports []core.CustomTransport
	observers  []func(v any)
}

func New() App {
	return &app{}
}

func (a *app) Service(constructor any, methods ...core.MethodSpec) {
	a.services = append(a.services, core.ServiceDefinition{
		Constructor: constructor,
		Methods:     methods,
	})
}

func (a *app) Bind(topic string, method string) {
	a.bindings = append(a.bindings, bootstrap.Binding{
		Topic:  topic,
		Method: method,
	})
}

func (a *app) Custom(transports ...core.CustomTransport) {
	a.transports = append(a.transports, transports...)
}

func (a *app) Transport(observer func(v any)) {
	a.observers = append(a.observers, observer)
}

func (a *app) Run(opts boot.Options) error {
	return bootstrap.Run(bootstrap.Config{
		Options:            opts,
		Services:           a.services,
		Bindings:           a.bindings,
		CustomTransports:   a.transports,
		TransportObservers: a.observers,
	})
}

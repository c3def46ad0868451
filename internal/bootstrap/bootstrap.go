package bootstrap

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/NARUBROWN/axon/core"
	httpEngine "github.com/NARUBROWN/axon/internal/adapter/echo"
	"github.com/NARUBROWN/axon/internal/container"
	"github.com/NARUBROWN/axon/internal/engine"
	"github.com/NARUBROWN/axon/internal/event/consumer"
	kafkaInfra "github.com/NARUBROWN/axon/internal/event/infra/kafka"
	rabbitInfra "github.com/NARUBROWN/axon/internal/event/infra/rabbitmq"
	"github.com/NARUBROWN/axon/internal/registry"
	"github.com/NARUBROWN/axon/internal/ws"
	"github.com/NARUBROWN/axon/pkg/boot"
	"github.com/labstack/echo/v4"
)

type Binding struct {
	Topic  string
	Method string
}

type Config struct {
	Options            boot.Options
	Services           []core.ServiceDefinition
	Bindings           []Binding
	CustomTransports   []core.CustomTransport
	TransportObservers []func(v any)
}

func Run(config Config) error {
	// 컨테이너 생성 및 생성자 등록
	cont := container.New()
	for _, def := range config.Services {
		if def.Constructor == nil {
			return errors.New("bootstrap: ServiceDefinition에 생성자가 없습니다")
		}
		if err := cont.RegisterConstructor(def.Constructor); err != nil {
			return err
		}
	}

	// Registry 빌드. 빌드 에러는 기동 자체를 중단시킨다.
	reg, err := registry.Build(config.Services)
	if err != nil {
		return err
	}
	log.Printf("[Bootstrap] 메서드 %d개가 등록되었습니다.", reg.Len())

	eng := engine.New(reg, cont)

	if config.Options.WarmUp {
		if err := cont.WarmUp(reg.OwnerTypes()); err != nil {
			return err
		}
	}

	// HTTP Adapter (Echo)
	e := echo.New()
	e.HideBanner = true
	adapter := httpEngine.NewAdapter(eng)
	adapter.Mount(e)

	// WebSocket 허브
	mux := http.NewServeMux()
	var wsRuntime *ws.Runtime
	if config.Options.Hub != nil {
		hubPath := config.Options.Hub.Path
		if hubPath == "" {
			hubPath = "/hub"
		}
		wsRuntime = ws.NewRuntime(hubPath, eng)
		wsRuntime.Mount(mux)
	}
	mux.Handle("/", e)

	// Event Consumer Runtime
	eventRuntime, err := buildEventRuntime(config, eng)
	if err != nil {
		return err
	}

	rootCtx := context.Background()
	if config.Options.EnableGracefulShutdown {
		var stop context.CancelFunc
		rootCtx, stop = signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
	}

	if eventRuntime != nil {
		eventRuntime.Start(rootCtx)
		defer eventRuntime.Stop()
	}

	// Custom Transport 실행
	transportErr := make(chan error, max(1, len(config.CustomTransports)))
	for _, transport := range config.CustomTransports {
		if err := transport.Init(eng); err != nil {
			return err
		}
	}
	for _, transport := range config.CustomTransports {
		go func(t core.CustomTransport) {
			if err := t.Start(); err != nil {
				transportErr <- err
			}
		}(transport)
	}

	// Listen
	listener, err := net.Listen("tcp", config.Options.Address)
	if err != nil {
		return err
	}

	server := &http.Server{Handler: mux}

	// 통합 테스트 등에서 핸들러를 직접 구동할 수 있도록 공개한다.
	for _, observer := range config.TransportObservers {
		observer(http.Handler(mux))
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	log.Printf("[Bootstrap] %s에서 수신을 시작합니다.", listener.Addr())

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-transportErr:
		return err
	case <-rootCtx.Done():
	}

	// Graceful Shutdown
	timeout := config.Options.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if wsRuntime != nil {
		wsRuntime.Stop()
	}
	for _, transport := range config.CustomTransports {
		if err := transport.Stop(shutdownCtx); err != nil {
			log.Printf("[Bootstrap] Custom Transport 종료 실패: %v", err)
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Printf("[Bootstrap] 서버를 정상 종료했습니다.")
	return nil
}

func buildEventRuntime(config Config, invoker core.Invoker) (*consumer.Runtime, error) {
	if len(config.Bindings) == 0 {
		return nil, nil
	}

	eventRegistry := consumer.NewRegistry()
	for _, binding := range config.Bindings {
		eventRegistry.Register(binding.Topic, binding.Method)
	}

	switch {
	case config.Options.Kafka != nil:
		return consumer.NewRuntime(eventRegistry, kafkaInfra.NewRunnerFactory(*config.Options.Kafka), invoker), nil
	case config.Options.RabbitMq != nil:
		return consumer.NewRuntime(eventRegistry, rabbitInfra.NewRunnerFactory(*config.Options.RabbitMq), invoker), nil
	default:
		return nil, errors.New("bootstrap: 이벤트 바인딩이 있지만 브로커 설정이 없습니다")
	}
}

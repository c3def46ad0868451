package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/NARUBROWN/axon/core"
)

type runnerFactory interface {
	Build(reg Registration) (Reader, error)
}

/*
Runtime은 바인딩마다 goroutine 하나를 돌리면서 브로커 메시지를 호출
엔진으로 위임합니다. 호출이 성공 Outcome이면 ACK, 실패 Outcome이면
NACK 하여 브로커의 재전달 정책에 맡깁니다.
*/
type Runtime struct {
	registry *Registry
	factory  runnerFactory
	invoker  core.Invoker
	stopOnce sync.Once
	cancel   context.CancelFunc
	errChan  chan error
}

func NewRuntime(registry *Registry, factory runnerFactory, invoker core.Invoker) *Runtime {
	if registry == nil {
		panic("consumer: 레지스트리는 nil일 수 없습니다")
	}
	if factory == nil {
		panic("consumer: factory는 nil일 수 없습니다")
	}
	if invoker == nil {
		panic("consumer: invoker는 nil일 수 없습니다")
	}

	return &Runtime{
		registry: registry,
		factory:  factory,
		invoker:  invoker,
		errChan:  make(chan error, max(1, len(registry.Registrations()))),
	}
}

// Errors는 런타임 내부에서 발생한 치명적 에러를 전달받기 위한 채널입니다.
// 채널은 close되지 않으므로, 필요 시 선택적으로 1개 이벤트를 대기하거나
// non-blocking 방식으로 조회하세요.
func (r *Runtime) Errors() <-chan error {
	return r.errChan
}

func (r *Runtime) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	for _, registration := range r.registry.Registrations() {
		log.Printf("[Event Consumer] 토픽 '%s' → 메서드 '%s' 컨슈머를 시작합니다.", registration.Topic, registration.Method)
		go func(reg Registration) {
			reader, err := r.factory.Build(reg)
			if err != nil {
				startErr := fmt.Errorf(
					"[Event Consumer] 컨슈머 초기화 실패 (topic=%s): %w",
					reg.Topic,
					err,
				)
				select {
				case r.errChan <- startErr:
				default:
					log.Printf("%v (에러 채널이 가득 차 전파하지 못했습니다)", startErr)
				}
				// 초기화 실패는 치명적이므로 전체 런타임을 중단한다.
				r.Stop()
				return
			}
			defer reader.Close()

			for {
				select {
				case <-ctx.Done():
					return
				default:
					msg, err := reader.Read(ctx)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("[Event Consumer] 메시지 읽기 실패: %v", err)
						continue
					}

					args, err := decodeArgs(msg.Payload)
					if err != nil {
						log.Printf(
							"[Event Consumer] payload 파싱 실패 (%s): %v",
							reg.Topic,
							err,
						)
						if nackErr := msg.Nack(); nackErr != nil {
							log.Printf("[Event Consumer] NACK 실패 (%s): %v", reg.Topic, nackErr)
						}
						continue
					}

					outcome := r.invoker.Invoke(ctx, reg.Method, args)
					if !outcome.OK() {
						log.Printf(
							"[Event Consumer] 호출 실패 (%s → %s): %v",
							reg.Topic,
							reg.Method,
							outcome.Failure,
						)
						// 호출 실패 시 NACK
						if nackErr := msg.Nack(); nackErr != nil {
							log.Printf("[Event Consumer] NACK 실패 (%s): %v", reg.Topic, nackErr)
						}
						continue
					}

					// 호출 성공 시 ACK
					if ackErr := msg.Ack(); ackErr != nil {
						log.Printf("[Event Consumer] ACK 실패 (%s): %v", reg.Topic, ackErr)
					}
				}
			}
		}(registration)
	}
}

/*
decodeArgs는 메시지 payload를 호출 인자 목록으로 해석합니다.
JSON 배열이면 그대로 인자 목록, 그 외의 JSON 값(객체/스칼라)이면
인자 하나짜리 목록, 빈 payload면 인자 없는 호출입니다.
*/
func decodeArgs(payload []byte) ([]any, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var args []any
	if err := json.Unmarshal(payload, &args); err == nil {
		return args, nil
	}

	var single any
	if err := json.Unmarshal(payload, &single); err != nil {
		return nil, fmt.Errorf("payload가 JSON이 아닙니다: %w", err)
	}
	return []any{single}, nil
}

func (r *Runtime) Validate() error {
	for _, reg := range r.registry.Registrations() {
		reader, err := r.factory.Build(reg)
		if err != nil {
			return fmt.Errorf("Consumer 초기화 실패 (%s): %w", reg.Topic, err)
		}
		if err := reader.Close(); err != nil {
			return fmt.Errorf("Consumer 종료 실패 (%s): %w", reg.Topic, err)
		}
	}
	return nil
}

func (r *Runtime) Stop() {
	r.stopOnce.Do(func() {
		if r.cancel != nil {
			r.cancel() // 모든 goroutine 중지
		}
		log.Printf("[Event Consumer] 모든 컨슈머를 중지했습니다.")
	})
}

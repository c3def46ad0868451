package engine

import (
	"context"
	"reflect"

	"github.com/NARUBROWN/axon/core"
	"github.com/NARUBROWN/axon/internal/registry"
	"github.com/NARUBROWN/axon/pkg/future"
)

/*
Engine은 노출 이름과 인자 목록을 받아 대상 메서드를 호출하고 결과를
Outcome으로 정규화하는 호출 엔진입니다.

Registry는 빌드 이후 불변이므로 Engine 자체는 가변 상태를 가지지
않으며, 여러 호출이 잠금 없이 병렬로 진행될 수 있습니다. 인스턴스의
공유 정책(싱글톤/호출별)은 전적으로 InstanceResolver의 계약입니다.
*/
type Engine struct {
	registry *registry.Registry
	resolver core.InstanceResolver
}

func New(reg *registry.Registry, resolver core.InstanceResolver) *Engine {
	if reg == nil {
		panic("engine: registry는 nil일 수 없습니다")
	}
	if resolver == nil {
		panic("engine: resolver는 nil일 수 없습니다")
	}

	return &Engine{
		registry: reg,
		resolver: resolver,
	}
}

// Invoke는 한 번의 호출 전체를 소유합니다.
// 비즈니스 로직의 실패는 어떤 경우에도 엔진 밖으로 전파되지 않고
// 항상 Outcome 값으로 변환되어 반환됩니다.
func (e *Engine) Invoke(ctx context.Context, name string, args []any) core.Outcome {
	// 1. 이름 조회
	desc, ok := e.registry.Lookup(name)
	if !ok {
		return core.Fail(core.FailureMethodNotFound, "%s", name)
	}

	// 2. 인자 개수 검증
	if len(args) != len(desc.ParamTypes) {
		return core.Fail(
			core.FailureArityMismatch,
			"인자 개수가 다릅니다 (expected=%d, actual=%d)",
			len(desc.ParamTypes), len(args),
		)
	}

	// 3. 인자 변환
	coercedArgs := make([]reflect.Value, 0, len(args))
	for idx, raw := range args {
		coerced, err := coerce(raw, desc.ParamTypes[idx])
		if err != nil {
			return core.Fail(
				core.FailureArgumentType,
				"%d번째 인자 (%v): %v",
				idx, desc.ParamTypes[idx], err,
			)
		}
		coercedArgs = append(coercedArgs, coerced)
	}

	// 4. 인스턴스 Resolve
	instance, err := e.resolver.Resolve(desc.OwnerType)
	if err != nil {
		return core.Fail(
			core.FailureInstanceUnavailable,
			"%v: %v", desc.OwnerType, err,
		)
	}

	// 5. 호출 및 결과 정규화
	return e.call(ctx, desc, instance, coercedArgs)
}

func (e *Engine) call(ctx context.Context, desc registry.MethodDescriptor, instance any, coerced []reflect.Value) (outcome core.Outcome) {
	// 대상 메서드의 panic은 엔진의 흐름을 끊지 않고 실패 Outcome이 된다.
	defer func() {
		if r := recover(); r != nil {
			outcome = core.Fail(core.FailureTargetThrew, "panic: %v", r)
		}
	}()

	in := make([]reflect.Value, 0, len(coerced)+2)
	in = append(in, reflect.ValueOf(instance))
	if desc.TakesContext {
		in = append(in, reflect.ValueOf(ctx))
	}
	in = append(in, coerced...)

	results := desc.Fn.Call(in)

	switch desc.Shape {
	case registry.ShapeAsyncValue:
		return e.awaitValue(ctx, results[0])
	case registry.ShapeAsyncVoid:
		return e.awaitVoid(ctx, results[0])
	default:
		return normalizeValue(desc, results)
	}
}

func normalizeValue(desc registry.MethodDescriptor, results []reflect.Value) core.Outcome {
	if desc.ReturnsError {
		errValue := results[len(results)-1]
		if !errValue.IsNil() {
			return core.Fail(
				core.FailureTargetThrew,
				"%v", errValue.Interface().(error),
			)
		}
	}

	if !desc.ReturnsValue {
		return core.Success(nil)
	}
	return core.Success(results[0].Interface())
}

func (e *Engine) awaitValue(ctx context.Context, result reflect.Value) core.Outcome {
	completion, ok := result.Interface().(*future.Value)
	if !ok || completion == nil {
		return core.Fail(core.FailureTargetThrew, "지연 완료가 nil입니다")
	}

	value, err := completion.Await(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return core.Fail(core.FailureCancelled, "%v", ctx.Err())
		}
		return core.Fail(core.FailureTargetThrew, "%v", err)
	}
	return core.Success(value)
}

func (e *Engine) awaitVoid(ctx context.Context, result reflect.Value) core.Outcome {
	completion, ok := result.Interface().(*future.Void)
	if !ok || completion == nil {
		return core.Fail(core.FailureTargetThrew, "지연 완료가 nil입니다")
	}

	if err := completion.Await(ctx); err != nil {
		if ctx.Err() != nil {
			return core.Fail(core.FailureCancelled, "%v", ctx.Err())
		}
		return core.Fail(core.FailureTargetThrew, "%v", err)
	}
	return core.Success(nil)
}

var _ core.Invoker = (*Engine)(nil)

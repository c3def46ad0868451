package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/NARUBROWN/axon/core"
	"github.com/NARUBROWN/axon/pkg/future"
)

// BuildErrorKind는 레지스트리 빌드 실패의 분류입니다.
type BuildErrorKind string

const (
	// 두 메서드가 같은 노출 이름을 선언함
	ErrDuplicateName BuildErrorKind = "DUPLICATE_NAME"
	// 반환 시그니처를 Value/AsyncValue/AsyncVoid로 분류할 수 없음
	ErrUnsupportedReturnShape BuildErrorKind = "UNSUPPORTED_RETURN_SHAPE"
	// 메서드 표현식이나 노출 이름 자체가 잘못됨
	ErrInvalidDefinition BuildErrorKind = "INVALID_DEFINITION"
)

// BuildError는 빌드 단계의 치명적 에러입니다.
// 빌드 에러가 하나라도 발생하면 부분 레지스트리는 절대 노출되지 않습니다.
type BuildError struct {
	Kind    BuildErrorKind
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("registry: %s: %s", e.Kind, e.Message)
}

func buildErrorf(kind BuildErrorKind, format string, args ...any) *BuildError {
	return &BuildError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

var (
	errorType     = reflect.TypeFor[error]()
	contextType   = reflect.TypeFor[context.Context]()
	futureValType = reflect.TypeFor[*future.Value]()
	futureVoidTyp = reflect.TypeFor[*future.Void]()
)

/*
Build는 서비스 정의 집합을 스캔하여 불변 Registry를 생성합니다.

입력 정의에 대한 순수 함수이며, 같은 입력으로 두 번 실행하면
동일한 키 집합과 디스크립터를 가진 레지스트리가 만들어집니다.
어떤 서비스 인스턴스도 이 단계에서 생성되지 않습니다.
*/
func Build(defs []core.ServiceDefinition) (*Registry, error) {
	descriptors := make(map[string]MethodDescriptor)

	for _, def := range defs {
		var owner reflect.Type

		for _, spec := range def.Methods {
			desc, err := describe(spec)
			if err != nil {
				return nil, err
			}

			// 하나의 정의 안에서는 모든 메서드가 같은 서비스 타입을 가져야 한다.
			if owner == nil {
				owner = desc.OwnerType
			} else if owner != desc.OwnerType {
				return nil, buildErrorf(
					ErrInvalidDefinition,
					"하나의 ServiceDefinition 안에서 서비스 타입이 섞여 있습니다: %v, %v (메서드 %q)",
					owner, desc.OwnerType, spec.Name,
				)
			}

			if _, exists := descriptors[desc.ExposedName]; exists {
				return nil, buildErrorf(
					ErrDuplicateName,
					"노출 이름이 중복되었습니다: %q",
					desc.ExposedName,
				)
			}
			descriptors[desc.ExposedName] = desc
		}
	}

	return &Registry{descriptors: descriptors}, nil
}

func describe(spec core.MethodSpec) (MethodDescriptor, error) {
	if spec.Name == "" {
		return MethodDescriptor{}, buildErrorf(
			ErrInvalidDefinition,
			"노출 이름이 빈 값일 수 없습니다",
		)
	}

	fn := reflect.ValueOf(spec.Fn)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return MethodDescriptor{}, buildErrorf(
			ErrInvalidDefinition,
			"메서드 표현식이 함수가 아닙니다 (%q): %T",
			spec.Name, spec.Fn,
		)
	}

	fnType := fn.Type()
	if fnType.NumIn() == 0 {
		return MethodDescriptor{}, buildErrorf(
			ErrInvalidDefinition,
			"메서드 표현식은 리시버를 첫 번째 인자로 가져야 합니다 (%q)",
			spec.Name,
		)
	}

	owner := fnType.In(0)
	if owner.Kind() != reflect.Pointer || owner.Elem().Kind() != reflect.Struct {
		return MethodDescriptor{}, buildErrorf(
			ErrInvalidDefinition,
			"서비스 타입은 구조체 포인터여야 합니다 (%q): %v",
			spec.Name, owner,
		)
	}

	desc := MethodDescriptor{
		ExposedName: spec.Name,
		OwnerType:   owner,
		Fn:          fn,
	}

	// 리시버 다음의 context.Context는 호출자 시그니처에 포함되지 않는다.
	paramStart := 1
	if fnType.NumIn() > 1 && fnType.In(1) == contextType {
		desc.TakesContext = true
		paramStart = 2
	}
	for i := paramStart; i < fnType.NumIn(); i++ {
		in := fnType.In(i)
		if in == contextType {
			return MethodDescriptor{}, buildErrorf(
				ErrInvalidDefinition,
				"context.Context는 리시버 바로 뒤에만 올 수 있습니다 (%q)",
				spec.Name,
			)
		}
		desc.ParamTypes = append(desc.ParamTypes, in)
	}

	shape, returnsValue, returnsError, err := classifyReturns(spec.Name, fnType)
	if err != nil {
		return MethodDescriptor{}, err
	}
	desc.Shape = shape
	desc.ReturnsValue = returnsValue
	desc.ReturnsError = returnsError

	return desc, nil
}

/*
classifyReturns는 선언된 반환 시그니처를 세 가지 결과 분류 중 하나로
확정합니다. 분류가 불가능한 시그니처는 빌드 에러이며 런타임까지
이월되지 않습니다.

허용되는 시그니처:

	func(recv, ...) T             → Value
	func(recv, ...) (T, error)    → Value
	func(recv, ...) error         → Value (값 없음)
	func(recv, ...) *future.Value → AsyncValue
	func(recv, ...) *future.Void  → AsyncVoid
*/
func classifyReturns(name string, fnType reflect.Type) (ResultShape, bool, bool, error) {
	switch fnType.NumOut() {
	case 1:
		out := fnType.Out(0)
		switch {
		case out == futureValType:
			return ShapeAsyncValue, false, false, nil
		case out == futureVoidTyp:
			return ShapeAsyncVoid, false, false, nil
		case out == errorType:
			return ShapeValue, false, true, nil
		case isPlainValue(out):
			return ShapeValue, true, false, nil
		}
	case 2:
		out, last := fnType.Out(0), fnType.Out(1)
		if last == errorType && isPlainValue(out) && out != futureValType && out != futureVoidTyp {
			return ShapeValue, true, true, nil
		}
	}

	return 0, false, false, buildErrorf(
		ErrUnsupportedReturnShape,
		"반환 시그니처를 분류할 수 없습니다 (%q): %v",
		name, fnType,
	)
}

// isPlainValue는 동기 값으로 반환할 수 있는 타입인지 검사합니다.
// 채널/함수는 지연 완료로 오인될 수 있으므로 허용하지 않습니다.
func isPlainValue(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func:
		return false
	default:
		return t != errorType
	}
}

package core

import "fmt"

// FailureKind는 호출 실패의 분류입니다.
// Transport 계층은 이 값을 자신의 표현(HTTP 상태 코드 등)으로 변환합니다.
type FailureKind string

const (
	FailureMethodNotFound      FailureKind = "METHOD_NOT_FOUND"
	FailureArityMismatch       FailureKind = "ARITY_MISMATCH"
	FailureArgumentType        FailureKind = "ARGUMENT_TYPE_MISMATCH"
	FailureInstanceUnavailable FailureKind = "INSTANCE_UNAVAILABLE"
	FailureTargetThrew         FailureKind = "TARGET_THREW"
	FailureCancelled           FailureKind = "CANCELLED"
)

// Failure는 한 번의 호출에서 발생한 실패를 담습니다.
type Failure struct {
	Kind    FailureKind
	Message string
}

// error 인터페이스의 계약 구현
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Outcome은 모든 호출이 반환하는 단일 봉투입니다.
// Failure가 nil이면 성공이며, AsyncVoid 메서드의 경우 Value는 nil일 수 있습니다.
type Outcome struct {
	Value   any
	Failure *Failure
}

func (o Outcome) OK() bool {
	return o.Failure == nil
}

func Success(value any) Outcome {
	return Outcome{Value: value}
}

func Fail(kind FailureKind, format string, args ...any) Outcome {
	return Outcome{
		Failure: &Failure{
			Kind:    kind,
			Message: fmt.Sprintf(format, args...),
		},
	}
}

package core

import "context"

// Invoker는 모든 transport가 소비하는 단일 진입점입니다.
// transport는 수신 요청을 (이름, 인자 목록)으로 해석하고 Outcome을
// 자신의 와이어 표현으로 변환하는 책임만 가집니다.
type Invoker interface {
	Invoke(ctx context.Context, name string, args []any) Outcome
}

// CustomTransport는 Axon 내장 transport 외부에서 독립 실행되는 transport 계약입니다.
type CustomTransport interface {
	// Init은 Registry 빌드와 Engine 준비 이후 호출됩니다.
	Init(invoker Invoker) error
	// Start는 Init 이후 별도 goroutine에서 호출됩니다.
	Start() error
	// Stop은 Graceful Shutdown 시 호출됩니다.
	Stop(ctx context.Context) error
}

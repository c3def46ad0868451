package future

import (
	"context"
	"sync"
)

/*
Value는 값과 함께 완료되는 지연 완료(deferred completion)입니다.
메서드가 *future.Value를 반환하면 엔진은 해당 메서드를 AsyncValue로
분류하고, 완료될 때까지 호출자의 흐름을 중단합니다.

Complete/Fail 중 먼저 호출된 쪽이 결과를 확정하며 이후 호출은 무시됩니다.
*/
type Value struct {
	once sync.Once
	done chan struct{}
	val  any
	err  error
}

func NewValue() *Value {
	return &Value{done: make(chan struct{})}
}

func (f *Value) Complete(v any) {
	f.once.Do(func() {
		f.val = v
		close(f.done)
	})
}

func (f *Value) Fail(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Await는 완료 또는 ctx 취소까지 대기합니다.
// ctx가 먼저 취소되면 ctx.Err()를 반환합니다.
func (f *Value) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Void는 값 없이 완료 신호만 전달하는 지연 완료입니다.
type Void struct {
	once sync.Once
	done chan struct{}
	err  error
}

func NewVoid() *Void {
	return &Void{done: make(chan struct{})}
}

func (f *Void) Complete() {
	f.once.Do(func() {
		close(f.done)
	})
}

func (f *Void) Fail(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

func (f *Void) Await(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

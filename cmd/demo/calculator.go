package main

import (
	"context"
	"errors"
	"time"

	"github.com/NARUBROWN/axon/pkg/future"
)

type CalculatorService struct{}

func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

func (s *CalculatorService) Echo(message string) string {
	return message
}

func (s *CalculatorService) Double(n int) int {
	return n * 2
}

func (s *CalculatorService) Divide(a float64, b float64) (float64, error) {
	if b == 0 {
		return 0, errors.New("0으로 나눌 수 없습니다")
	}
	return a / b, nil
}

// SlowAdd는 지연 완료로 값을 돌려주는 AsyncValue 예시입니다.
func (s *CalculatorService) SlowAdd(ctx context.Context, a int, b int) *future.Value {
	result := future.NewValue()

	go func() {
		select {
		case <-time.After(100 * time.Millisecond):
			result.Complete(a + b)
		case <-ctx.Done():
			result.Fail(ctx.Err())
		}
	}()

	return result
}

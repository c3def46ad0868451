package engine

import (
	"math"
	"reflect"
	"testing"
)

func TestCoerce_ExactTypesPassThrough(t *testing.T) {
	v, err := coerce("hello", reflect.TypeFor[string]())
	if err != nil {
		t.Fatalf("변환에 실패했습니다: %v", err)
	}
	if v.Interface() != "hello" {
		t.Fatalf("값이 잘못되었습니다: %v", v)
	}

	v, err = coerce(true, reflect.TypeFor[bool]())
	if err != nil {
		t.Fatalf("변환에 실패했습니다: %v", err)
	}
	if v.Interface() != true {
		t.Fatalf("값이 잘못되었습니다: %v", v)
	}
}

func TestCoerce_IntegralFloatToInt(t *testing.T) {
	v, err := coerce(float64(7), reflect.TypeFor[int]())
	if err != nil {
		t.Fatalf("변환에 실패했습니다: %v", err)
	}
	if v.Interface() != 7 {
		t.Fatalf("값이 잘못되었습니다: %v", v)
	}
}

func TestCoerce_FractionalFloatToIntFails(t *testing.T) {
	if _, err := coerce(1.5, reflect.TypeFor[int]()); err == nil {
		t.Fatal("소수부가 있는 값은 int로 변환되면 안 됩니다")
	}
	if _, err := coerce(1.5, reflect.TypeFor[uint]()); err == nil {
		t.Fatal("소수부가 있는 값은 uint로 변환되면 안 됩니다")
	}
}

func TestCoerce_RangeChecks(t *testing.T) {
	if _, err := coerce(float64(300), reflect.TypeFor[int8]()); err == nil {
		t.Fatal("int8 범위를 벗어나면 실패해야 합니다")
	}
	if _, err := coerce(-1, reflect.TypeFor[uint]()); err == nil {
		t.Fatal("음수는 uint로 변환되면 안 됩니다")
	}
	if _, err := coerce(math.MaxFloat64, reflect.TypeFor[float32]()); err == nil {
		t.Fatal("float32 범위를 벗어나면 실패해야 합니다")
	}
}

func TestCoerce_IntToFloat(t *testing.T) {
	v, err := coerce(3, reflect.TypeFor[float64]())
	if err != nil {
		t.Fatalf("변환에 실패했습니다: %v", err)
	}
	if v.Interface() != float64(3) {
		t.Fatalf("값이 잘못되었습니다: %v", v)
	}
}

type coerceTarget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCoerce_MapToStruct(t *testing.T) {
	raw := map[string]any{"name": "kim", "count": float64(3)}

	v, err := coerce(raw, reflect.TypeFor[coerceTarget]())
	if err != nil {
		t.Fatalf("변환에 실패했습니다: %v", err)
	}
	got := v.Interface().(coerceTarget)
	if got.Name != "kim" || got.Count != 3 {
		t.Fatalf("구조체 변환 결과가 잘못되었습니다: %+v", got)
	}
}

func TestCoerce_MapToStructPointer(t *testing.T) {
	raw := map[string]any{"name": "lee", "count": float64(1)}

	v, err := coerce(raw, reflect.TypeFor[*coerceTarget]())
	if err != nil {
		t.Fatalf("변환에 실패했습니다: %v", err)
	}
	got := v.Interface().(*coerceTarget)
	if got == nil || got.Name != "lee" {
		t.Fatalf("포인터 변환 결과가 잘못되었습니다: %+v", got)
	}
}

func TestCoerce_SliceOfAny(t *testing.T) {
	raw := []any{float64(1), float64(2), float64(3)}

	v, err := coerce(raw, reflect.TypeFor[[]int]())
	if err != nil {
		t.Fatalf("변환에 실패했습니다: %v", err)
	}
	if !reflect.DeepEqual(v.Interface(), []int{1, 2, 3}) {
		t.Fatalf("슬라이스 변환 결과가 잘못되었습니다: %v", v.Interface())
	}

	if _, err := coerce([]any{1.5}, reflect.TypeFor[[]int]()); err == nil {
		t.Fatal("원소 변환 실패는 전체 실패여야 합니다")
	}
}

func TestCoerce_Nil(t *testing.T) {
	v, err := coerce(nil, reflect.TypeFor[*coerceTarget]())
	if err != nil {
		t.Fatalf("nil 변환에 실패했습니다: %v", err)
	}
	if !v.IsNil() {
		t.Fatalf("nil 포인터가 아닙니다: %v", v)
	}

	if _, err := coerce(nil, reflect.TypeFor[int]()); err == nil {
		t.Fatal("nil은 int로 변환되면 안 됩니다")
	}
}

func TestCoerce_DoesNotMutateInput(t *testing.T) {
	raw := map[string]any{"name": "park", "count": float64(2)}

	if _, err := coerce(raw, reflect.TypeFor[coerceTarget]()); err != nil {
		t.Fatalf("변환에 실패했습니다: %v", err)
	}
	if raw["name"] != "park" || raw["count"] != float64(2) {
		t.Fatalf("입력 값이 변경되었습니다: %v", raw)
	}
}

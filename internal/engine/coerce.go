package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

/*
coerce는 원시 인자 값을 선언된 파라미터 타입으로 변환합니다.

변환은 결정적이며 부수 효과가 없습니다. 숫자는 자릿수를 조용히
잘라내지 않습니다: 정수 타입이 선언된 자리에 소수부가 있는 값이
오면 실패입니다. JSON으로 디코딩된 인자(float64, map[string]any,
[]any)가 주된 입력입니다.
*/
func coerce(raw any, target reflect.Type) (reflect.Value, error) {
	if raw == nil {
		return coerceNil(target)
	}

	rv := reflect.ValueOf(raw)
	if rv.Type() == target || rv.Type().AssignableTo(target) {
		return rv, nil
	}

	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return coerceInt(raw, target)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return coerceUint(raw, target)
	case reflect.Float32, reflect.Float64:
		return coerceFloat(raw, target)
	case reflect.Struct:
		return coerceViaJSON(raw, target)
	case reflect.Pointer:
		if target.Elem().Kind() == reflect.Struct {
			return coerceViaJSON(raw, target)
		}
	case reflect.Slice:
		return coerceSlice(raw, target)
	case reflect.Map:
		return coerceViaJSON(raw, target)
	}

	return reflect.Value{}, fmt.Errorf(
		"%T 값을 %v 타입으로 변환할 수 없습니다", raw, target,
	)
}

func coerceNil(target reflect.Type) (reflect.Value, error) {
	switch target.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return reflect.Zero(target), nil
	default:
		return reflect.Value{}, fmt.Errorf(
			"nil 값을 %v 타입으로 변환할 수 없습니다", target,
		)
	}
}

func coerceInt(raw any, target reflect.Type) (reflect.Value, error) {
	var n int64

	switch v := raw.(type) {
	case float64:
		if math.Trunc(v) != v {
			return reflect.Value{}, fmt.Errorf(
				"소수부가 있는 값 %v을(를) %v 타입으로 변환할 수 없습니다", v, target,
			)
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return reflect.Value{}, fmt.Errorf("값 %v이(가) %v 범위를 벗어납니다", v, target)
		}
		n = int64(v)
	case float32:
		return coerceInt(float64(v), target)
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		if uint64(v) > math.MaxInt64 {
			return reflect.Value{}, fmt.Errorf("값 %v이(가) %v 범위를 벗어납니다", v, target)
		}
		n = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return reflect.Value{}, fmt.Errorf("값 %v이(가) %v 범위를 벗어납니다", v, target)
		}
		n = int64(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return reflect.Value{}, fmt.Errorf(
				"숫자 %q을(를) %v 타입으로 변환할 수 없습니다", v.String(), target,
			)
		}
		n = parsed
	default:
		return reflect.Value{}, fmt.Errorf(
			"%T 값을 %v 타입으로 변환할 수 없습니다", raw, target,
		)
	}

	out := reflect.New(target).Elem()
	if out.OverflowInt(n) {
		return reflect.Value{}, fmt.Errorf("값 %d이(가) %v 범위를 벗어납니다", n, target)
	}
	out.SetInt(n)
	return out, nil
}

func coerceUint(raw any, target reflect.Type) (reflect.Value, error) {
	var n uint64

	switch v := raw.(type) {
	case float64:
		if math.Trunc(v) != v {
			return reflect.Value{}, fmt.Errorf(
				"소수부가 있는 값 %v을(를) %v 타입으로 변환할 수 없습니다", v, target,
			)
		}
		if v < 0 || v >= math.MaxUint64 {
			return reflect.Value{}, fmt.Errorf("값 %v이(가) %v 범위를 벗어납니다", v, target)
		}
		n = uint64(v)
	case int:
		if v < 0 {
			return reflect.Value{}, fmt.Errorf("음수 %d을(를) %v 타입으로 변환할 수 없습니다", v, target)
		}
		n = uint64(v)
	case int64:
		if v < 0 {
			return reflect.Value{}, fmt.Errorf("음수 %d을(를) %v 타입으로 변환할 수 없습니다", v, target)
		}
		n = uint64(v)
	case uint:
		n = uint64(v)
	case uint64:
		n = v
	default:
		return reflect.Value{}, fmt.Errorf(
			"%T 값을 %v 타입으로 변환할 수 없습니다", raw, target,
		)
	}

	out := reflect.New(target).Elem()
	if out.OverflowUint(n) {
		return reflect.Value{}, fmt.Errorf("값 %d이(가) %v 범위를 벗어납니다", n, target)
	}
	out.SetUint(n)
	return out, nil
}

func coerceFloat(raw any, target reflect.Type) (reflect.Value, error) {
	var f float64

	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return reflect.Value{}, fmt.Errorf(
				"숫자 %q을(를) %v 타입으로 변환할 수 없습니다", v.String(), target,
			)
		}
		f = parsed
	default:
		return reflect.Value{}, fmt.Errorf(
			"%T 값을 %v 타입으로 변환할 수 없습니다", raw, target,
		)
	}

	out := reflect.New(target).Elem()
	if out.OverflowFloat(f) {
		return reflect.Value{}, fmt.Errorf("값 %v이(가) %v 범위를 벗어납니다", f, target)
	}
	out.SetFloat(f)
	return out, nil
}

func coerceSlice(raw any, target reflect.Type) (reflect.Value, error) {
	items, ok := raw.([]any)
	if !ok {
		return coerceViaJSON(raw, target)
	}

	out := reflect.MakeSlice(target, len(items), len(items))
	for i, item := range items {
		elem, err := coerce(item, target.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%d번째 원소: %w", i, err)
		}
		out.Index(i).Set(elem)
	}
	return out, nil
}

// coerceViaJSON은 map[string]any 같은 디코딩된 구조를 선언 타입으로
// 되살립니다. 직렬화 왕복은 결정적이며 원본 값을 변경하지 않습니다.
func coerceViaJSON(raw any, target reflect.Type) (reflect.Value, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return reflect.Value{}, fmt.Errorf(
			"%T 값을 %v 타입으로 변환할 수 없습니다: %w", raw, target, err,
		)
	}

	out := reflect.New(target)
	if err := json.Unmarshal(encoded, out.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf(
			"%T 값을 %v 타입으로 변환할 수 없습니다: %w", raw, target, err,
		)
	}
	return out.Elem(), nil
}

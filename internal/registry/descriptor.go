package registry

import "reflect"

// ResultShape는 메서드 결과가 호출자에게 도달하는 방식의 분류입니다.
type ResultShape int

const (
	// 값을 즉시 반환 (뒤에 error가 붙을 수 있음)
	ShapeValue ResultShape = iota
	// *future.Value를 반환하여 값으로 완료
	ShapeAsyncValue
	// *future.Void를 반환하여 신호만으로 완료
	ShapeAsyncVoid
)

func (s ResultShape) String() string {
	switch s {
	case ShapeValue:
		return "Value"
	case ShapeAsyncValue:
		return "AsyncValue"
	case ShapeAsyncVoid:
		return "AsyncVoid"
	}
	return "Unknown"
}

/*
MethodDescriptor는 노출 가능한 메서드 하나의 불변 기록입니다.
Registry 빌드 시점에 단 한 번 생성되며 이후 변경되지 않습니다.
*/
type MethodDescriptor struct {
	// 외부 호출자가 사용하는 이름
	ExposedName string
	// 메서드를 선언한 서비스 타입 (*Service 형태)
	OwnerType reflect.Type
	// 메서드 표현식 값. 첫 번째 인자가 리시버입니다.
	Fn reflect.Value
	// 리시버와 context.Context를 제외한 선언 파라미터 시그니처
	ParamTypes []reflect.Type
	// 리시버 바로 뒤에 context.Context 파라미터를 받는지 여부
	TakesContext bool
	// 결과 분류
	Shape ResultShape
	// ShapeValue일 때 마지막 반환값이 error인지 여부
	ReturnsError bool
	// ShapeValue일 때 error 외의 반환값이 존재하는지 여부
	ReturnsValue bool
}

// Registry는 노출 이름에서 MethodDescriptor로의 읽기 전용 매핑입니다.
// 빌드 이후 불변이므로 동기화 없이 동시 조회해도 안전합니다.
type Registry struct {
	descriptors map[string]MethodDescriptor
}

func (r *Registry) Lookup(name string) (MethodDescriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Names는 등록된 노출 이름 목록을 반환합니다. 순서는 보장되지 않습니다.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	return names
}

// OwnerTypes는 중복을 제거한 서비스 타입 목록을 반환합니다.
// Container WarmUp 등 부트스트랩 단계에서 사용됩니다.
func (r *Registry) OwnerTypes() []reflect.Type {
	seen := make(map[reflect.Type]struct{})
	types := make([]reflect.Type, 0)
	for _, d := range r.descriptors {
		if _, ok := seen[d.OwnerType]; ok {
			continue
		}
		seen[d.OwnerType] = struct{}{}
		types = append(types, d.OwnerType)
	}
	return types
}

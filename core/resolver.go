package core

import "reflect"

// InstanceResolver는 호출 시점에 서비스 인스턴스를 공급하는 외부 능력입니다.
// 엔진은 인스턴스를 직접 생성하거나 캐시하지 않고 이 계약에만 의존합니다.
// 싱글톤/호출별 스코프 등 공유 정책은 전적으로 구현체의 책임입니다.
type InstanceResolver interface {
	Resolve(t reflect.Type) (any, error)
}

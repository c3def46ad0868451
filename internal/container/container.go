package container

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"sync"
)

/*
Container는 생성자 기반 DI 컨테이너이며 core.InstanceResolver 계약을
구현합니다. 생성자 등록은 부트스트랩 단계에서 끝나고, Resolve는 호출
시점에 여러 goroutine에서 동시에 호출될 수 있으므로 잠금으로 보호합니다.

Resolve된 인스턴스는 타입별 싱글톤으로 캐시됩니다. 호출별 스코프가
필요하면 core.InstanceResolver의 다른 구현체를 주입하면 됩니다.
*/
type Container struct {
	mu           sync.Mutex
	constructors map[reflect.Type]reflect.Value
	instances    map[reflect.Type]any
	creating     map[reflect.Type]bool
}

func New() *Container {
	return &Container{
		constructors: make(map[reflect.Type]reflect.Value),
		instances:    make(map[reflect.Type]any),
		creating:     make(map[reflect.Type]bool),
	}
}

func (c *Container) RegisterConstructor(function any) error {
	val := reflect.ValueOf(function)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		return errors.New("생성자는 함수여야 합니다")
	}

	if typ.NumOut() != 1 {
		return errors.New("생성자는 하나의 반환값만 가져야 합니다")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.constructors[typ.Out(0)] = val

	return nil
}

func (c *Container) Resolve(componentType reflect.Type) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolve(componentType)
}

// resolve는 잠금을 보유한 상태에서만 호출됩니다.
func (c *Container) resolve(componentType reflect.Type) (any, error) {
	if instance, ok := c.instances[componentType]; ok {
		return instance, nil
	}

	if c.creating[componentType] {
		return nil, fmt.Errorf("순환 의존성 감지: %v", componentType)
	}

	constructor, hasConstructor := c.constructors[componentType]
	if !hasConstructor {
		// 인터페이스 타입이면 할당 가능한 구현체 생성자를 찾는다.
		if componentType.Kind() == reflect.Interface {
			for outType, candidate := range c.constructors {
				if outType.AssignableTo(componentType) {
					constructor = candidate
					hasConstructor = true
					break
				}
			}
		}
		if !hasConstructor {
			return nil, fmt.Errorf("등록된 생성자가 없습니다: %v", componentType)
		}
	}

	c.creating[componentType] = true
	defer delete(c.creating, componentType)

	numIn := constructor.Type().NumIn()
	args := make([]reflect.Value, numIn)
	for i := 0; i < numIn; i++ {
		paramInstance, err := c.resolve(constructor.Type().In(i))
		if err != nil {
			return nil, err
		}
		args[i] = reflect.ValueOf(paramInstance)
	}

	result := constructor.Call(args)[0].Interface()
	c.instances[componentType] = result

	return result, nil
}

func (c *Container) WarmUp(types []reflect.Type) error {
	seen := make(map[reflect.Type]struct{})

	for _, t := range types {
		log.Printf("[Container] 의존성 후보 등록: %s", t.Elem().Name())
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}

		if _, err := c.Resolve(t); err != nil {
			return err
		}
	}
	return nil
}

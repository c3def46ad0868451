package core

// MethodSpec은 하나의 메서드를 외부에 노출하겠다는 선언입니다.
// Fn은 메서드 표현식((*UserService).GetUser 형태)이어야 합니다.
type MethodSpec struct {
	// 외부 호출자가 사용하는 이름 (대소문자 구분, 레지스트리 전체에서 유일)
	Name string
	// 메서드 표현식
	Fn any
}

// ServiceDefinition은 서비스 타입 하나에 대한 등록 정보입니다.
// Constructor는 DI Container가, Methods는 Registry Builder가 소비합니다.
type ServiceDefinition struct {
	Constructor any
	Methods     []MethodSpec
}

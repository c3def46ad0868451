package ws

import (
	"encoding/json"
	"fmt"

	"github.com/NARUBROWN/axon/core"
)

/*
requestFrame은 클라이언트가 전송하는 호출 프레임입니다.

	{"id": 1, "method": "Echo", "args": ["hello"]}

id는 응답 상관용이며 클라이언트가 관리합니다.
*/
type requestFrame struct {
	ID     int64  `json:"id"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type responseFrame struct {
	ID     int64      `json:"id"`
	Result any        `json:"result,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

func decodeRequest(payload []byte) (requestFrame, error) {
	var frame requestFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		return requestFrame{}, fmt.Errorf("프레임 파싱 실패: %w", err)
	}
	if frame.Method == "" {
		return requestFrame{}, fmt.Errorf("프레임에 method가 비어 있습니다")
	}
	return frame, nil
}

func encodeOutcome(id int64, outcome core.Outcome) ([]byte, error) {
	frame := responseFrame{ID: id}
	if outcome.OK() {
		frame.Result = outcome.Value
	} else {
		frame.Error = &errorBody{
			Kind:    string(outcome.Failure.Kind),
			Message: outcome.Failure.Message,
		}
	}
	return json.Marshal(frame)
}

func encodeError(id int64, kind core.FailureKind, message string) []byte {
	frame := responseFrame{
		ID: id,
		Error: &errorBody{
			Kind:    string(kind),
			Message: message,
		},
	}
	// 고정 구조체 직렬화는 실패하지 않는다.
	payload, _ := json.Marshal(frame)
	return payload
}

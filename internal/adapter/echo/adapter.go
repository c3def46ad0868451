package echo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/NARUBROWN/axon/core"
	"github.com/labstack/echo/v4"
)

// Adapter는 HTTP 요청을 Axon 호출 모델로 연결합니다.
type Adapter struct {
	invoker core.Invoker
}

func NewAdapter(invoker core.Invoker) *Adapter {
	return &Adapter{
		invoker: invoker,
	}
}

// Mount는 Echo 인스턴스에 호출 엔드포인트를 연결합니다.
// 요청 바디는 JSON 배열 형태의 인자 목록이어야 합니다.
func (a *Adapter) Mount(e *echo.Echo) {
	e.POST("/invoke/:method", func(c echo.Context) error {
		name := c.Param("method")

		args, err := decodeArgs(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error": map[string]any{
					"kind":    string(core.FailureArgumentType),
					"message": err.Error(),
				},
			})
		}

		outcome := a.invoker.Invoke(c.Request().Context(), name, args)

		if outcome.OK() {
			return c.JSON(http.StatusOK, map[string]any{
				"result": outcome.Value,
			})
		}

		return c.JSON(statusFor(outcome.Failure.Kind), map[string]any{
			"error": map[string]any{
				"kind":    string(outcome.Failure.Kind),
				"message": outcome.Failure.Message,
			},
		})
	})
}

func decodeArgs(c echo.Context) ([]any, error) {
	body := c.Request().Body
	if body == nil {
		return nil, nil
	}

	decoder := json.NewDecoder(body)
	var args []any
	if err := decoder.Decode(&args); err != nil {
		if errors.Is(err, io.EOF) {
			// 빈 바디는 인자 없는 호출로 취급한다.
			return nil, nil
		}
		return nil, fmt.Errorf("인자 목록 파싱 실패: %w", err)
	}
	return args, nil
}

func statusFor(kind core.FailureKind) int {
	switch kind {
	case core.FailureMethodNotFound:
		return http.StatusNotFound
	case core.FailureArityMismatch, core.FailureArgumentType:
		return http.StatusBadRequest
	case core.FailureInstanceUnavailable:
		return http.StatusServiceUnavailable
	case core.FailureCancelled:
		// Nginx 계열에서 쓰는 client closed request
		return 499
	default:
		return http.StatusInternalServerError
	}
}

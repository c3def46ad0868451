package test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/NARUBROWN/axon"
	"github.com/NARUBROWN/axon/pkg/boot"
	"github.com/NARUBROWN/axon/pkg/future"
)

type appService struct{}

func (s *appService) Echo(message string) string {
	return message
}

func (s *appService) Double(n int) int {
	return n * 2
}

func (s *appService) Fail() error {
	return errors.New("bad")
}

func (s *appService) SlowAdd(ctx context.Context, a int, b int) *future.Value {
	result := future.NewValue()
	go func() {
		select {
		case <-time.After(20 * time.Millisecond):
			result.Complete(a + b)
		case <-ctx.Done():
			result.Fail(ctx.Err())
		}
	}()
	return result
}

func setupApp() axon.App {
	app := axon.New()
	app.Service(
		func() *appService { return &appService{} },
		axon.Expose("Echo", (*appService).Echo),
		axon.Expose("Double", (*appService).Double),
		axon.Expose("Fail", (*appService).Fail),
		axon.Expose("SlowAdd", (*appService).SlowAdd),
	)
	return app
}

func newTestHandlerFromApp(t *testing.T, app axon.App) http.Handler {
	t.Helper()

	ready := make(chan http.Handler, 1)
	runErr := make(chan error, 1)

	app.Transport(func(v any) {
		h, ok := v.(http.Handler)
		if !ok {
			return
		}
		select {
		case ready <- h:
		default:
		}
	})

	go func() {
		runErr <- app.Run(boot.Options{
			Address:                "127.0.0.1:0",
			EnableGracefulShutdown: true,
			Hub:                    &boot.HubOptions{Path: "/hub"},
		})
	}()

	var h http.Handler
	select {
	case h = <-ready:
	case err := <-runErr:
		t.Fatalf("axon 앱 실행 실패: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("axon 앱 시작 타임아웃")
	}

	t.Cleanup(func() {
		stopped := false
		select {
		case <-runErr:
			stopped = true
		default:
		}

		if !stopped {
			if p, err := os.FindProcess(os.Getpid()); err == nil {
				_ = p.Signal(os.Interrupt)
			}

			select {
			case <-runErr:
			case <-time.After(3 * time.Second):
				t.Fatalf("axon 앱 종료 타임아웃")
			}
		}
	})

	return h
}

func postInvoke(t *testing.T, handler http.Handler, method string, body string) *http.Response {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(http.MethodPost, "/invoke/"+method, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Result()
}

func TestAppIntegration_EchoRoundTrip(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	resp := postInvoke(t, handler, "Echo", `["hello"]`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("상태 코드가 잘못되었습니다: %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("바디 파싱 실패: %v", err)
	}
	if body["result"] != "hello" {
		t.Fatalf("응답 값이 잘못되었습니다: %v", body)
	}
}

func TestAppIntegration_AsyncValue(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	resp := postInvoke(t, handler, "SlowAdd", `[20, 22]`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("상태 코드가 잘못되었습니다: %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("바디 파싱 실패: %v", err)
	}
	if body["result"] != float64(42) {
		t.Fatalf("응답 값이 잘못되었습니다: %v", body)
	}
}

func TestAppIntegration_MethodNotFound(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	resp := postInvoke(t, handler, "DoesNotExist", `[]`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("404가 예상됐지만 실제: %d", resp.StatusCode)
	}
}

func TestAppIntegration_ArityMismatch(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	resp := postInvoke(t, handler, "Double", `[1, 2, 3]`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("400이 예상됐지만 실제: %d", resp.StatusCode)
	}
}

func TestAppIntegration_TargetFailure(t *testing.T) {
	handler := newTestHandlerFromApp(t, setupApp())

	resp := postInvoke(t, handler, "Fail", `[]`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("500이 예상됐지만 실제: %d", resp.StatusCode)
	}

	var body struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("바디 파싱 실패: %v", err)
	}
	if body.Error.Kind != "TARGET_THREW" {
		t.Fatalf("실패 분류가 잘못되었습니다: %s", body.Error.Kind)
	}
	if !strings.Contains(body.Error.Message, "bad") {
		t.Fatalf("원본 실패 메시지가 보존되지 않았습니다: %s", body.Error.Message)
	}
}

func TestAppIntegration_DuplicateNameAbortsStartup(t *testing.T) {
	app := axon.New()
	app.Service(
		func() *appService { return &appService{} },
		axon.Expose("Echo", (*appService).Echo),
		axon.Expose("Echo", (*appService).Double),
	)

	err := app.Run(boot.Options{Address: "127.0.0.1:0"})
	if err == nil {
		t.Fatal("중복 이름이면 기동이 실패해야 합니다")
	}
	if !strings.Contains(err.Error(), "DUPLICATE_NAME") {
		t.Fatalf("예상하지 못한 에러입니다: %v", err)
	}
}

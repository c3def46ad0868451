package ws

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/NARUBROWN/axon/core"
	pkgws "github.com/NARUBROWN/axon/pkg/ws"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

/*
Runtime은 WebSocket 허브 transport입니다. 연결마다 읽기 루프 하나를
돌리면서 수신한 요청 프레임을 엔진으로 위임하고, Outcome을 응답
프레임으로 되돌려 보냅니다.

요청 프레임은 각자 별도 goroutine에서 처리되므로 같은 연결의 응답
순서는 보장되지 않으며, 클라이언트는 id로 상관시켜야 합니다.
*/
type Runtime struct {
	path     string
	invoker  core.Invoker
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
	connMu   sync.Mutex
	conns    map[string]*websocket.Conn
}

func NewRuntime(path string, invoker core.Invoker) *Runtime {
	if path == "" {
		panic("ws: path가 빈 값일 수 없습니다")
	}
	if invoker == nil {
		panic("ws: invoker는 nil일 수 없습니다")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runtime{
		path:    path,
		invoker: invoker,
		ctx:     ctx,
		cancel:  cancel,
		conns:   make(map[string]*websocket.Conn),
	}
}

// Mount는 허브 경로를 http.ServeMux에 등록합니다.
func (r *Runtime) Mount(mux *http.ServeMux) {
	log.Printf("[WS] 허브 경로 등록: %s", r.path)
	mux.HandleFunc(r.path, r.HandleConn)
}

func (r *Runtime) HandleConn(w http.ResponseWriter, req *http.Request) {
	select {
	case <-r.ctx.Done():
		http.Error(w, "websocket runtime is shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("[WS] 업그레이드 실패 (%s): %v", r.path, err)
		return
	}

	connID := generateConnID()
	if !r.trackConn(connID, conn) {
		_ = conn.Close()
		return
	}
	defer func() {
		r.untrackConn(connID)
		_ = conn.Close()
	}()

	log.Printf("[WS] 연결 수립 (conn=%s, path=%s)", connID, r.path)

	// 같은 연결에 여러 goroutine이 쓰지 않도록 보호한다.
	var writeMu sync.Mutex
	var pending sync.WaitGroup
	defer pending.Wait()

	writeFrame := func(payload []byte) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("[WS] 응답 전송 실패 (conn=%s): %v", connID, err)
		}
	}

	// 연결당 읽기 루프
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[WS] 연결 종료 (conn=%s): %v", connID, err)
			return
		}

		frame, err := decodeRequest(payload)
		if err != nil {
			writeFrame(encodeError(0, core.FailureArgumentType, err.Error()))
			continue
		}

		pending.Add(1)
		go func(frame requestFrame) {
			defer pending.Done()

			ctx := pkgws.WithSender(req.Context(), connID, func(data []byte) error {
				writeMu.Lock()
				defer writeMu.Unlock()
				return conn.WriteMessage(websocket.TextMessage, data)
			})

			outcome := r.invoker.Invoke(ctx, frame.Method, frame.Args)

			response, err := encodeOutcome(frame.ID, outcome)
			if err != nil {
				log.Printf("[WS] 응답 직렬화 실패 (conn=%s, method=%s): %v", connID, frame.Method, err)
				response = encodeError(frame.ID, core.FailureTargetThrew, "응답을 직렬화할 수 없습니다")
			}
			writeFrame(response)
		}(frame)
	}
}

func (r *Runtime) Stop() {
	r.stopOnce.Do(func() {
		r.cancel()

		r.connMu.Lock()
		conns := make(map[string]*websocket.Conn, len(r.conns))
		for id, conn := range r.conns {
			conns[id] = conn
		}
		r.connMu.Unlock()

		for _, conn := range conns {
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "server shutting down"),
				time.Now().Add(time.Second),
			)
			_ = conn.Close()
		}

		log.Printf("[WS] WebSocket 런타임을 중지했습니다.")
	})
}

func (r *Runtime) trackConn(connID string, conn *websocket.Conn) bool {
	r.connMu.Lock()
	defer r.connMu.Unlock()

	select {
	case <-r.ctx.Done():
		return false
	default:
		r.conns[connID] = conn
		return true
	}
}

func (r *Runtime) untrackConn(connID string) {
	r.connMu.Lock()
	defer r.connMu.Unlock()
	delete(r.conns, connID)
}

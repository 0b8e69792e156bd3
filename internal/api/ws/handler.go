package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/bridge"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/utils"
)

// maxFrameBytes bounds inbound frames; write_file_content carries whole files.
const maxFrameBytes = utils.MaxPayloadSize

const closeGrace = 2 * time.Second

// Invoker runs bridge commands by name
type Invoker interface {
	Invoke(ctx context.Context, name string, args bridge.Args) (any, error)
}

// Handler manages WebSocket connections
type Handler struct {
	invoker  Invoker
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*session]struct{}
	closed   bool
}

// NewHandler creates a new WebSocket handler accepting the given origins.
// "*" or an empty list accepts any origin.
func NewHandler(invoker Invoker, metrics *monitoring.Metrics, logger *logging.Logger, origins []string) *Handler {
	return &Handler{
		invoker: invoker,
		metrics: metrics,
		logger:  logger.Named("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(origins),
		},
		sessions: make(map[*session]struct{}),
	}
}

// Shutdown closes every open connection and refuses new ones.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	h.closed = true
	open := make([]*session, 0, len(h.sessions))
	for s := range h.sessions {
		open = append(open, s)
	}
	h.mu.Unlock()

	for _, s := range open {
		s.close("server shutting down")
	}
}

func (h *Handler) track(s *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[s] = struct{}{}
	return true
}

func (h *Handler) untrack(s *session) {
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

// session is one IPC connection. gorilla/websocket allows a single
// concurrent writer, so writes go through mu.
type session struct {
	conn    *websocket.Conn
	id      id.ConnectionID
	logger  *logging.Logger
	metrics *monitoring.Metrics
	mu      sync.Mutex
}

// HandleConnection handles WebSocket upgrade and frames
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(maxFrameBytes)

	s := &session{
		conn:    conn,
		id:      id.NewConnectionID(),
		metrics: h.metrics,
	}
	s.logger = h.logger.With(zap.String("conn_id", s.id.String()))

	if !h.track(s) {
		s.close("server shutting down")
		conn.Close()
		return
	}
	defer h.untrack(s)

	ctx, cancel := context.WithCancel(c.Request.Context())
	var wg sync.WaitGroup
	defer conn.Close()
	defer wg.Wait()
	defer cancel()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	s.logger.Info("IPC connection opened", zap.String("remote", c.ClientIP()))

	s.send(types.Frame{
		Type:      types.FrameSystem,
		Message:   "Connected to AgentOS desktop bridge",
		Timestamp: time.Now().Unix(),
	}, types.FrameSystem)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("IPC read error", zap.Error(err))
			}
			break
		}

		var frame types.Frame
		if err := sonic.Unmarshal(data, &frame); err != nil {
			s.record("in", "invalid")
			s.sendError("invalid frame: expected a JSON object")
			continue
		}
		s.record("in", string(frame.Type))

		switch frame.Type {
		case types.FrameInvoke:
			req := frame.Request()
			if req.ID == "" {
				req.ID = id.NewInvocationID().String()
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.invoke(ctx, s, req)
			}()
		case types.FramePing:
			s.send(types.Frame{Type: types.FramePong, Timestamp: time.Now().Unix()}, types.FramePong)
		default:
			s.sendError("unknown frame type")
		}
	}

	s.logger.Info("IPC connection closed")
}

func (h *Handler) invoke(ctx context.Context, s *session, req types.InvokeRequest) {
	args := bridge.Args(req.Args)
	if args == nil {
		args = bridge.Args{}
	}

	resp := types.Success(req.ID, nil)
	data, err := h.invoker.Invoke(ctx, req.Cmd, args)
	if err != nil {
		resp = types.Failure(req.ID, err)
	} else {
		resp.Data = data
	}

	if ctx.Err() != nil {
		s.logger.Debug("Dropping result for closed connection", zap.String("cmd", req.Cmd), zap.String("invocation_id", req.ID))
		return
	}
	s.send(types.NewResultFrame(resp, time.Now().Unix()), types.FrameResult)
}

func (s *session) send(v any, frameType types.FrameType) {
	data, err := sonic.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode frame", zap.Error(err))
		return
	}

	s.mu.Lock()
	err = s.conn.WriteMessage(websocket.TextMessage, data)
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("IPC write failed", zap.Error(err))
		return
	}
	s.record("out", string(frameType))
}

// close sends a close frame; the read loop then ends the session.
func (s *session) close(reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, reason)
	s.mu.Lock()
	err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	s.mu.Unlock()
	if err != nil {
		s.conn.Close()
		return
	}
	// A peer that never answers the close frame still ends the read loop.
	_ = s.conn.SetReadDeadline(time.Now().Add(closeGrace))
}

func (s *session) sendError(msg string) {
	s.send(types.Frame{
		Type:      types.FrameError,
		Message:   msg,
		Timestamp: time.Now().Unix(),
	}, types.FrameError)
}

func (s *session) record(direction, frameType string) {
	if s.metrics != nil {
		s.metrics.RecordWSMessage(direction, frameType)
	}
}

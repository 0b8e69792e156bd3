package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/bridge"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/utils"
)

const (
	serviceName = "AgentOS Desktop Bridge"
	version     = "0.1.0"

	// InvocationHeader carries a caller-chosen invocation id.
	InvocationHeader = "X-Invocation-ID"
)

// Invoker runs bridge commands by name
type Invoker interface {
	Invoke(ctx context.Context, name string, args bridge.Args) (any, error)
	Commands() []bridge.Command
}

// Handlers contains all HTTP handlers
type Handlers struct {
	invoker Invoker
	metrics *monitoring.Metrics
	logger  *logging.Logger
	backend string
	maxBody int64
}

// NewHandlers creates a new handler set. backend names the dialog backend
// reported by the health check.
func NewHandlers(invoker Invoker, metrics *monitoring.Metrics, logger *logging.Logger, backend string) *Handlers {
	return &Handlers{
		invoker: invoker,
		metrics: metrics,
		logger:  logger.Named("http"),
		backend: backend,
		maxBody: utils.MaxPayloadSize,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": serviceName,
		"version": version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":         "healthy",
		"dialog_backend": h.backend,
		"commands":       len(h.invoker.Commands()),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListCommands lists the commands the front-end can invoke
func (h *Handlers) ListCommands(c *gin.Context) {
	commands := h.invoker.Commands()
	c.JSON(http.StatusOK, gin.H{
		"commands": commands,
		"count":    len(commands),
	})
}

// Invoke runs one command. The body is the args object; an empty body means
// no arguments. A command that fails still answers 200 with ok=false.
func (h *Handlers) Invoke(c *gin.Context) {
	name := c.Param("command")
	invocationID := c.GetHeader(InvocationHeader)
	if invocationID == "" {
		invocationID = id.NewInvocationID().String()
	}
	c.Header(InvocationHeader, invocationID)

	args, err := decodeArgs(c, h.maxBody)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(c, status, types.Failure(invocationID, err))
		return
	}

	h.logger.Debug("Invoking command",
		zap.String("cmd", name),
		zap.String("invocation_id", invocationID),
		zap.String("request_id", tracing.RequestID(c.Request.Context())),
	)

	data, err := h.invoker.Invoke(c.Request.Context(), name, args)
	switch {
	case errors.Is(err, bridge.ErrUnknownCommand):
		writeJSON(c, http.StatusNotFound, types.Failure(invocationID, err))
	case errors.Is(err, bridge.ErrInvalidArgs):
		writeJSON(c, http.StatusBadRequest, types.Failure(invocationID, err))
	case err != nil:
		writeJSON(c, http.StatusOK, types.Failure(invocationID, err))
	default:
		writeJSON(c, http.StatusOK, types.Success(invocationID, data))
	}
}

func decodeArgs(c *gin.Context, limit int64) (bridge.Args, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	body, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return bridge.Args{}, nil
	}

	var args bridge.Args
	if err := sonic.Unmarshal(body, &args); err != nil {
		return nil, fmt.Errorf("invalid request body: expected a JSON object of arguments")
	}
	if args == nil {
		args = bridge.Args{}
	}
	return args, nil
}

func writeJSON(c *gin.Context, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to encode response"})
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}

package types

// FrameType identifies an IPC frame
type FrameType string

// IPC frame types
const (
	FrameInvoke FrameType = "invoke"
	FrameResult FrameType = "result"
	FramePing   FrameType = "ping"
	FramePong   FrameType = "pong"
	FrameSystem FrameType = "system"
	FrameError  FrameType = "error"
)

// InvokeRequest represents a command invocation
type InvokeRequest struct {
	ID   string         `json:"id,omitempty"`
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args,omitempty"`
}

// InvokeResponse represents the outcome of a command invocation. Data is
// always present so an absent dialog path is sent as null.
type InvokeResponse struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// Success builds a successful response.
func Success(id string, data any) InvokeResponse {
	return InvokeResponse{ID: id, OK: true, Data: data}
}

// Failure builds a failed response carrying the error text.
func Failure(id string, err error) InvokeResponse {
	return InvokeResponse{ID: id, OK: false, Error: err.Error()}
}

// Frame is an IPC message other than a result: inbound invoke and ping
// frames, outbound pong, system and error frames.
type Frame struct {
	Type      FrameType      `json:"type"`
	ID        string         `json:"id,omitempty"`
	Cmd       string         `json:"cmd,omitempty"`
	Args      map[string]any `json:"args,omitempty"`
	Message   string         `json:"message,omitempty"`
	Timestamp int64          `json:"timestamp,omitempty"`
}

// Request extracts the invocation carried by an invoke frame.
func (f Frame) Request() InvokeRequest {
	return InvokeRequest{ID: f.ID, Cmd: f.Cmd, Args: f.Args}
}

// ResultFrame carries an InvokeResponse back over IPC.
type ResultFrame struct {
	Type FrameType `json:"type"`
	InvokeResponse
	Timestamp int64 `json:"timestamp"`
}

// NewResultFrame wraps a response in a result frame.
func NewResultFrame(resp InvokeResponse, timestamp int64) ResultFrame {
	return ResultFrame{Type: FrameResult, InvokeResponse: resp, Timestamp: timestamp}
}

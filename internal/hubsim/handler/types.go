package handler

import (
	"time"

	"github.com/moonblokz/telemetry-cli/internal/hubsim/store"
)

// Error codes carried in Response.Code.
const (
	CodeOK          = "OK"
	CodeBadRequest  = "TC-HUB-4000"
	CodeNotFound    = "TC-HUB-4040"
	CodeTooLarge    = "TC-HUB-4130"
	CodeInternal    = "TC-HUB-5000"
	CodeRelayFailed = "TC-HUB-5020"
)

// Response is the envelope of every JSON response except /metrics.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      CodeOK,
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// AcceptedResponse is the data of a successful POST /command.
type AcceptedResponse struct {
	ID      string `json:"id"`
	Command string `json:"command"`
	Relayed bool   `json:"relayed"`
}

// ListResponse is the data of GET /commands.
type ListResponse struct {
	Items []store.Record `json:"items"`
	Count int            `json:"count"`
}

// HealthResponse is the data of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Time    string `json:"time"`
	Version string `json:"version"`
	Stored  int    `json:"stored"`
}

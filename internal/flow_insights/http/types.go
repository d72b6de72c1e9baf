package http

import (
	"go.uber.org/zap"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/graph/export"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/service"
)

type Handler struct {
	svc            *service.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func New(svc *service.Service, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes, logger: logger}
}

// SankeyRawRequest carries the file contents inline instead of as multipart.
// Content is base64 on the wire so binary workbooks survive the JSON body.
type SankeyRawRequest struct {
	Filename string `json:"filename" binding:"required"`
	Content  []byte `json:"content" binding:"required"`
	Title    string `json:"title,omitempty"`
	Dropoffs *bool  `json:"dropoffs,omitempty"`
}

type ErrorResponse struct {
	OK     bool          `json:"ok"`
	Error  string        `json:"error"`
	Figure export.Figure `json:"figure"`
}

package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/graph/export"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/service"
	"github.com/sarayu-labs/chat-insights/internal/observability"
)

func (h *Handler) SankeyUpload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, http.StatusRequestEntityTooLarge, "The file you uploaded is too large")
			return
		}
		h.fail(c, http.StatusBadRequest, service.PlaceholderMessage)
		return
	}

	f, err := file.Open()
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Did you upload the correct file? "+file.Filename)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Did you upload the correct file? "+file.Filename)
		return
	}

	req := service.Request{Title: c.PostForm("title")}
	if v := c.PostForm("dropoffs"); v != "" {
		track, err := strconv.ParseBool(v)
		if err != nil {
			h.fail(c, http.StatusBadRequest, "dropoffs must be true or false")
			return
		}
		req.TrackDropoffs = &track
	}

	h.analyze(c, service.Upload{Filename: file.Filename, Content: content}, req)
}

func (h *Handler) SankeyRaw(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var body SankeyRawRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, http.StatusRequestEntityTooLarge, "The file you uploaded is too large")
			return
		}
		h.fail(c, http.StatusBadRequest, "invalid json body")
		return
	}

	h.analyze(c,
		service.Upload{Filename: body.Filename, Content: body.Content},
		service.Request{Title: body.Title, TrackDropoffs: body.Dropoffs},
	)
}

func (h *Handler) Placeholder(c *gin.Context) {
	c.JSON(http.StatusOK, export.ErrorFigure(service.PlaceholderMessage))
}

func (h *Handler) analyze(c *gin.Context, up service.Upload, req service.Request) {
	res, err := h.svc.Analyze(c.Request.Context(), up, req)
	if err != nil {
		status, msg := service.UserMessage(err, up.Filename, h.svc.Column())
		h.fail(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) fail(c *gin.Context, status int, msg string) {
	observability.FromContext(c.Request.Context(), h.logger).Debug("request rejected",
		zap.Int("status", status),
		zap.String("message", msg),
	)
	c.JSON(status, ErrorResponse{
		OK:     false,
		Error:  msg,
		Figure: export.ErrorFigure(msg),
	})
}

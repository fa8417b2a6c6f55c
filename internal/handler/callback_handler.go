package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsroom/summaryhub/internal/model"
	"newsroom/summaryhub/internal/service"
	"newsroom/summaryhub/pkg/response"
)

type CallbackHandler struct {
	callbackService service.CallbackService
}

func NewCallbackHandler(callbackService service.CallbackService) *CallbackHandler {
	return &CallbackHandler{callbackService: callbackService}
}

type CallbackRequest struct {
	JobID   string          `json:"job_id" binding:"required"`
	Outcome string          `json:"outcome" binding:"required"`
	Output  json.RawMessage `json:"output"`
	Error   string          `json:"error"`
}

// Receive accepts the provider's completion callback. Anything that parses
// is acknowledged with 200, including unknown job ids and non-terminal
// outcomes; a non-2xx answer here would only provoke the provider's retry
// storm.
func (h *CallbackHandler) Receive(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid callback: "+err.Error())
		return
	}

	stored, warning, err := h.callbackService.Handle(c.Request.Context(), model.CallbackEvent{
		JobID:   req.JobID,
		Outcome: model.Outcome(req.Outcome),
		Output:  decodeOutput(req.Output),
		Error:   req.Error,
	})
	if err != nil {
		// Store write failure. The correlation entry survives, so the
		// provider's retry can complete the job.
		response.InternalError(c, "failed to store summary")
		return
	}

	body := gin.H{"received": true, "stored": stored}
	if warning != "" {
		body["warning"] = warning
	}
	c.JSON(http.StatusOK, body)
}

// decodeOutput accepts the provider's output as either a plain string or a
// sequence of parts, which are joined with newlines.
func decodeOutput(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var parts []string
	if err := json.Unmarshal(raw, &parts); err == nil {
		return strings.TrimSpace(strings.Join(parts, "\n"))
	}

	return ""
}

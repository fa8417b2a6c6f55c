package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom/summaryhub/internal/model"
	"newsroom/summaryhub/internal/service"
	"newsroom/summaryhub/pkg/response"
)

type SummaryHandler struct {
	summaryService service.SummaryService
}

func NewSummaryHandler(summaryService service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

type GenerateRequest struct {
	URL      string `json:"url" binding:"required"`
	Headline string `json:"headline"`
	RawHTML  string `json:"raw_html"`
	Snippet  string `json:"snippet"`
}

func (h *SummaryHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.summaryService.Generate(c.Request.Context(), service.GenerateRequest{
		URL:      req.URL,
		Headline: req.Headline,
		RawHTML:  req.RawHTML,
		Snippet:  req.Snippet,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingURL), errors.Is(err, service.ErrNoText):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "summary generation failed: "+err.Error())
		}
		return
	}

	switch result.Status {
	case model.StatusComplete:
		c.JSON(http.StatusOK, completeBody(result.Fingerprint, result.Entry))
	case model.StatusProcessing:
		c.JSON(http.StatusAccepted, gin.H{
			"status":      model.StatusProcessing,
			"fingerprint": result.Fingerprint,
			"job_id":      result.JobID,
		})
	case model.StatusPending:
		c.JSON(http.StatusAccepted, gin.H{
			"status":      model.StatusPending,
			"fingerprint": result.Fingerprint,
		})
	default:
		response.InternalError(c, "unexpected generate state")
	}
}

func (h *SummaryHandler) Fetch(c *gin.Context) {
	fp := c.Query("fingerprint")
	rawURL := c.Query("url")

	result, err := h.summaryService.Fetch(c.Request.Context(), fp, rawURL)
	if err != nil {
		if errors.Is(err, service.ErrMissingQuery) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "summary lookup failed")
		return
	}

	switch result.Status {
	case model.StatusComplete:
		c.JSON(http.StatusOK, completeBody(result.Fingerprint, result.Entry))
	case model.StatusPending:
		c.JSON(http.StatusOK, gin.H{
			"status":      model.StatusPending,
			"fingerprint": result.Fingerprint,
		})
	default:
		body := gin.H{"status": model.StatusUnknown}
		if result.Fingerprint != "" {
			body["fingerprint"] = result.Fingerprint
		}
		c.JSON(http.StatusOK, body)
	}
}

func completeBody(fp string, entry *model.CacheEntry) gin.H {
	return gin.H{
		"status":       model.StatusComplete,
		"cached":       true,
		"summary":      entry.Summary,
		"headline":     entry.Headline,
		"provider":     entry.Provider,
		"completed_at": entry.CompletedAt,
		"fingerprint":  fp,
	}
}

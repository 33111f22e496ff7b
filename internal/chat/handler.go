package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"proposal-analyzer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the chat service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

func (h *Handler) chat(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resp, err := h.Svc.Reply(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		case errors.Is(err, ErrMessageTooLong):
			respond.Error(c, http.StatusBadRequest, "validation_error", "message exceeds maximum length", nil)
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "chat assistant not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "assistant request failed", nil)
		}
		return
	}

	respond.OK(c, resp)
}

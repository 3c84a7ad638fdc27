package insights

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-reviewer/internal/shared/server/respond"
)

const maxChatMessageLen = 4000

// Handler exposes the mentor chat.
type Handler struct {
	Mentor *Mentor
}

func NewHandler(m *Mentor) *Handler {
	return &Handler{Mentor: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}
	if len(req.Message) > maxChatMessageLen {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is too long", gin.H{"maxLength": maxChatMessageLen})
		return
	}

	respond.OK(c, gin.H{"reply": h.Mentor.Chat(c.Request.Context(), req.Message, req.Context)})
}

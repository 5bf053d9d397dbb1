package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moderation-service/internal/pipeline"
)

type ChatHandler interface {
	Chat(c *gin.Context)
}

type chatHandler struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

func NewChatHandler(p *pipeline.Pipeline, logger *zap.Logger) ChatHandler {
	return &chatHandler{pipeline: p, logger: logger}
}

type ChatRequest struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
}

// Chat handles POST /api/chat
func (h *chatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for chat", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	result, err := h.pipeline.Classify(c.Request.Context(), req.Text, req.UserID)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a message"})
			return
		}
		h.logger.Error("Failed to classify message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to process your message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

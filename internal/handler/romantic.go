package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moderation-service/internal/romantic"
)

type RomanticHandler interface {
	Process(c *gin.Context)
	Stats(c *gin.Context)
	RandomByCategory(c *gin.Context)
}

type romanticHandler struct {
	matcher *romantic.Matcher
	logger  *zap.Logger
}

func NewRomanticHandler(matcher *romantic.Matcher, logger *zap.Logger) RomanticHandler {
	return &romanticHandler{matcher: matcher, logger: logger}
}

type RomanticRequest struct {
	Text string `json:"text" binding:"required"`
}

// Process handles POST /api/romantic
func (h *romanticHandler) Process(c *gin.Context) {
	var req RomanticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	if !h.matcher.IsRomanticInput(req.Text) {
		c.JSON(http.StatusOK, gin.H{
			"success":     false,
			"is_romantic": false,
			"message":     "Input does not contain romantic keywords",
		})
		return
	}

	result := h.matcher.ProcessRomanticInput(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"success":     result.Success,
		"is_romantic": true,
		"result":      result,
	})
}

// Stats handles GET /api/romantic/stats
func (h *romanticHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.matcher.Statistics(),
	})
}

// RandomByCategory handles GET /api/romantic/random/:category
func (h *romanticHandler) RandomByCategory(c *gin.Context) {
	category := c.Param("category")

	entry, err := h.matcher.RandomResponseByCategory(category)
	if err != nil {
		if errors.Is(err, romantic.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found", "category": category})
			return
		}
		h.logger.Error("Failed to pick random response", zap.String("category", category), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pick response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"response":  entry.Response,
		"category":  entry.Category,
		"is_random": true,
	})
}

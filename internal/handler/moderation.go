package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moderation-service/internal/models"
	"moderation-service/internal/moderation"
)

type ModerationHandler interface {
	Check(c *gin.Context)
	Analyze(c *gin.Context)
	AddPattern(c *gin.Context)
	Stats(c *gin.Context)
	Flagged(c *gin.Context)
	Detect(c *gin.Context)
	SetThreshold(c *gin.Context)
}

type moderationHandler struct {
	moderator *moderation.Moderator
	store     *moderation.PatternStore
	engine    *moderation.Engine
	logger    *zap.Logger
}

func NewModerationHandler(moderator *moderation.Moderator, store *moderation.PatternStore, engine *moderation.Engine, logger *zap.Logger) ModerationHandler {
	return &moderationHandler{
		moderator: moderator,
		store:     store,
		engine:    engine,
		logger:    logger,
	}
}

type CheckRequest struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
}

// Check handles POST /api/moderation/check
func (h *moderationHandler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	decision := h.moderator.ProcessUserInput(req.Text, req.UserID)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"is_allowed": decision.Action != models.ActionBlock,
		"action":     decision.Action,
		"response":   decision.Response,
		"analysis":   decision.Analysis,
	})
}

type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Analyze handles POST /api/moderation/analyze
func (h *moderationHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	analysis := h.moderator.Analyze(req.Text, "unknown")

	recommendation := models.ActionAllow
	if analysis.ShouldBlock {
		recommendation = models.ActionBlock
	} else if analysis.IsHarmful {
		recommendation = models.ActionFlag
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"text":           req.Text,
		"analysis":       analysis,
		"recommendation": recommendation,
	})
}

type AddPatternRequest struct {
	Pattern  string `json:"pattern" binding:"required"`
	Severity string `json:"severity" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// AddPattern handles POST /api/moderation/patterns
func (h *moderationHandler) AddPattern(c *gin.Context) {
	var req AddPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pattern, severity, and category are required"})
		return
	}

	if err := h.store.Add(req.Pattern, models.Severity(req.Severity), req.Category); err != nil {
		if errors.Is(err, moderation.ErrInvalidPattern) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to add pattern", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add pattern"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Pattern added successfully",
		"pattern":  req.Pattern,
		"severity": req.Severity,
		"category": req.Category,
	})
}

// Stats handles GET /api/moderation/stats
func (h *moderationHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.moderator.Stats(),
	})
}

// Flagged handles GET /api/moderation/flagged
// Query parameters: severity, category, limit (all optional).
func (h *moderationHandler) Flagged(c *gin.Context) {
	filter := models.FlaggedFilter{
		Severity: models.Severity(c.Query("severity")),
		Category: c.Query("category"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		filter.Limit = limit
	}

	entries, err := h.moderator.FlaggedContent(filter)
	if err != nil {
		h.logger.Error("Failed to get flagged content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve flagged content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(entries),
		"content": entries,
	})
}

type DetectRequest struct {
	Text string `json:"text" binding:"required"`
}

// Detect handles POST /api/moderation/detect using the trained keyword
// engine rather than the curated pattern set.
func (h *moderationHandler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  h.engine.DetectAbusiveContent(req.Text),
	})
}

type ThresholdRequest struct {
	Threshold *float64 `json:"threshold" binding:"required"`
}

// SetThreshold handles PUT /api/moderation/threshold
func (h *moderationHandler) SetThreshold(c *gin.Context) {
	var req ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Threshold is required"})
		return
	}
	if *req.Threshold < 0 || *req.Threshold > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Threshold must be between 0 and 1"})
		return
	}

	h.engine.SetConfidenceThreshold(*req.Threshold)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"threshold": *req.Threshold,
	})
}

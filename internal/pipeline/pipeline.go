package pipeline

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"moderation-service/internal/models"
	"moderation-service/internal/moderation"
	"moderation-service/internal/romantic"
)

// ErrEmptyInput is returned when a message trims to nothing. It is the only
// error Classify can return.
var ErrEmptyInput = errors.New("input text is empty")

const fallbackErrorResponse = "I'm having trouble thinking right now. Please try again!"

// Fallback is the contract with the external responder (knowledge base, web
// search, LLM) that handles pass-through messages. It receives the raw text
// and the flagged bit; the pipeline echoes the flagged bit unchanged.
type Fallback interface {
	Respond(ctx context.Context, text string, flagged bool) (string, error)
}

// Pipeline sequences content moderation and romantic matching for one
// message, producing exactly one disposition: blocked, romantic reply, or
// pass-through to the fallback.
type Pipeline struct {
	moderator *moderation.Moderator
	matcher   *romantic.Matcher
	fallback  Fallback
	logger    *zap.Logger
}

func NewPipeline(moderator *moderation.Moderator, matcher *romantic.Matcher, fallback Fallback, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		moderator: moderator,
		matcher:   matcher,
		fallback:  fallback,
		logger:    logger,
	}
}

// Classify runs the full decision policy for one inbound message.
//
// Moderation runs first and a BLOCK is terminal: no romantic lookup, no
// fallback. ALLOW and FLAG both continue; a FLAG is preserved as metadata on
// whatever response is served. A fallback failure degrades to a fixed line
// rather than failing the request.
func (p *Pipeline) Classify(ctx context.Context, text, userID string) (*models.ClassificationResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if userID == "" {
		userID = "guest"
	}

	decision := p.moderator.ProcessUserInput(text, userID)

	if decision.Action == models.ActionBlock {
		p.logger.Info("Message blocked",
			zap.String("user_id", userID),
			zap.String("severity", string(decision.Analysis.Severity)))
		return &models.ClassificationResult{
			Action:     models.ActionBlock,
			Severity:   decision.Analysis.Severity,
			Response:   decision.Response,
			IsRomantic: false,
		}, nil
	}

	flagged := decision.Action == models.ActionFlag
	if flagged {
		p.logger.Warn("Message flagged, continuing",
			zap.String("user_id", userID),
			zap.String("severity", string(decision.Analysis.Severity)))
	}

	if p.matcher.IsRomanticInput(text) {
		if result := p.matcher.ProcessRomanticInput(text); result.Success {
			category := result.Category
			score := result.MatchScore
			return &models.ClassificationResult{
				Action:     decision.Action,
				Severity:   decision.Analysis.Severity,
				Response:   result.Response,
				IsRomantic: true,
				Flagged:    flagged,
				Category:   &category,
				MatchScore: &score,
			}, nil
		}
	}

	response, err := p.fallback.Respond(ctx, text, flagged)
	if err != nil {
		p.logger.Error("Fallback responder failed", zap.Error(err))
		response = fallbackErrorResponse
	}

	return &models.ClassificationResult{
		Action:     decision.Action,
		Severity:   decision.Analysis.Severity,
		Response:   response,
		IsRomantic: false,
		Flagged:    flagged,
	}, nil
}

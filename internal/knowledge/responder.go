package knowledge

import (
	"context"

	"go.uber.org/zap"
)

const defaultResponse = "I'm still learning about that. Could you tell me more, or try asking differently?"

// Responder answers pass-through messages from the knowledge base. It stands
// in for the external web-search/LLM collaborator: exact lookups are served
// locally, everything else gets the default line.
type Responder struct {
	store  *Store
	logger *zap.Logger
}

func NewResponder(store *Store, logger *zap.Logger) *Responder {
	return &Responder{store: store, logger: logger}
}

// Respond implements the pipeline fallback contract. The flagged bit is
// passed through for logging only; it never changes the answer.
func (r *Responder) Respond(ctx context.Context, text string, flagged bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if answer, ok := r.store.Lookup(text); ok {
		r.logger.Debug("Knowledge base hit", zap.Bool("flagged", flagged))
		return answer, nil
	}
	return defaultResponse, nil
}

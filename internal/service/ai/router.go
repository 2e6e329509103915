// Package ai routes conversation turns to a reply provider. The chain is
// two tiers: the configured remote gateway (if any), then the local fallback
// responder. The fallback has no external dependency, so a turn only fails
// when the fallback itself does.
package ai

import (
	"context"
	"fmt"
	"log"
)

// Responder is the local fallback tier.
type Responder interface {
	Process(ctx context.Context, message, contextLabel, userID, role string) (string, error)
}

// Router fails a turn over from the remote gateway to the local responder.
type Router struct {
	gateway  Gateway
	fallback Responder
}

// NewRouter builds a router. gateway may be nil (no remote configured);
// fallback must not be.
func NewRouter(gateway Gateway, fallback Responder) *Router {
	return &Router{gateway: gateway, fallback: fallback}
}

// Send resolves one turn to assistant text. The remote gateway gets exactly
// one attempt, no retries: any transport, HTTP, or model error falls through
// to the local tier immediately.
func (r *Router) Send(ctx context.Context, req Request) (string, error) {
	if r.gateway != nil {
		reply, err := r.gateway.Send(ctx, req)
		if err == nil {
			return reply, nil
		}
		log.Printf("[ai] %s gateway failed, using local fallback: %v", r.gateway.Kind(), err)
	}

	if r.fallback == nil {
		return "", fmt.Errorf("no fallback responder configured")
	}
	return r.fallback.Process(ctx, req.Query, req.Context, req.UserID, req.Role)
}

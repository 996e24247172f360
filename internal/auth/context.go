package auth

import (
	"context"
)

// Actor identifies the user on whose behalf a request runs
type Actor struct {
	ID int64
	// Source tells how the id was resolved: "default" or "jwt"
	Source string
}

const (
	SourceDefault = "default"
	SourceJWT     = "jwt"
)

type contextKey string

const actorContextKey contextKey = "actor"

// WithActor adds the actor to the context
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// FromContext extracts the actor from the context
func FromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(*Actor)
	return actor, ok
}

// ActorID returns the actor id stored in the context, or fallback when none is set
func ActorID(ctx context.Context, fallback int64) int64 {
	if actor, ok := FromContext(ctx); ok && actor != nil {
		return actor.ID
	}
	return fallback
}

package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Middleware resolves the acting user for each request
type Middleware struct {
	jwtValidator   *JWTValidator
	defaultActorID int64
	logger         *zap.Logger
}

// NewMiddleware creates a new actor resolving middleware
func NewMiddleware(jwtSecret string, defaultActorID int64, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwtValidator:   NewJWTValidator(jwtSecret),
		defaultActorID: defaultActorID,
		logger:         logger,
	}
}

// Resolve returns the actor named by a valid bearer token, or the default actor
func (m *Middleware) Resolve(r *http.Request) *Actor {
	if m.jwtValidator.Enabled() {
		if token, ok := bearerToken(r); ok {
			actor, err := m.jwtValidator.ValidateToken(token)
			if err == nil {
				return actor
			}
			m.logger.Debug("token validation failed, using default actor",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
		}
	}
	return &Actor{ID: m.defaultActorID, Source: SourceDefault}
}

// OptionalAuthenticate stores the resolved actor in the request context.
// Requests without a usable token continue as the default actor.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := m.Resolve(r)
		ctx := WithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

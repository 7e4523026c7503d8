package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/kristykoh/krispyledger-web/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// BridgeKey is the context key for the authenticated bridge name.
const BridgeKey contextKey = "bridge"

// GetBridge extracts the bridge name from the context.
// Returns empty string if not found.
func GetBridge(ctx context.Context) string {
	bridge, _ := ctx.Value(BridgeKey).(string)
	return bridge
}

// WithBridge returns a copy of ctx carrying the bridge name.
func WithBridge(ctx context.Context, bridge string) context.Context {
	return context.WithValue(ctx, BridgeKey, bridge)
}

// RequireAuth returns an interceptor that rejects calls without a valid
// bridge token in the Authorization header.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithBridge(ctx, claims.Bridge), req)
		}
	}
}

package auth

import (
	"context"

	"github.com/fitvibe/fitvibe/internal/authctx"
)

func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return authctx.ContextWithUserID(ctx, userID)
}

// UserIDFromContext returns the authenticated user id set by the auth
// middleware. The second return value is false for unauthenticated requests.
func UserIDFromContext(ctx context.Context) (int, bool) {
	return authctx.UserIDFromContext(ctx)
}

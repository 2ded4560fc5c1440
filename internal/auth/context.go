package auth

import "context"

type userIDKey struct{}

// ContextWithUserID carries the authenticated user id into the request
// context, set by the auth middleware after the session token checks out.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the authenticated user id. The second return
// is false for requests that never passed the auth middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int)
	return userID, ok
}

package userctx

import "context"

// Context key type
type contextKey string

const userKey contextKey = "auth_user"

// User is the authenticated profile carried through the request context
type User struct {
	ID       string
	Email    string
	FullName string
	Role     string
}

// SetUser adds the authenticated user to the request context
func SetUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the authenticated user from the request context
func GetUser(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}

// GetUserID retrieves the authenticated user's id, empty when anonymous
func GetUserID(ctx context.Context) string {
	if user, ok := GetUser(ctx); ok {
		return user.ID
	}
	return ""
}

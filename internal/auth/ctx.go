// Package auth carries the current-user capability. Identity is established
// by an external provider at the gateway; this service only consumes the
// asserted user and threads it explicitly through every ownership check.
package auth

import "context"

// User is the capability handed to operations that need ownership checks.
type User struct {
	ID string
}

type ctxKey int

const userCtxKey ctxKey = 1

func WithUser(ctx context.Context, u User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userCtxKey, u)
}

func UserFromContext(ctx context.Context) (User, bool) {
	if ctx == nil {
		return User{}, false
	}
	u, ok := ctx.Value(userCtxKey).(User)
	if !ok || u.ID == "" {
		return User{}, false
	}
	return u, true
}

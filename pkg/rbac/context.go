package rbac

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/permit/pkg/logger"
)

// roleCtxKey is the context key for storing the role name.
type roleCtxKey struct{}

// SetRoleToContext stores the name of the caller's role in the context.
func SetRoleToContext(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// GetRoleFromContext retrieves the role name from the context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok
}

// LogRole is a logger.ContextExtractor that adds the role name stored in the
// context to log records under "caller_role".
func LogRole(ctx context.Context) (slog.Attr, bool) {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.CallerRole(role), true
}

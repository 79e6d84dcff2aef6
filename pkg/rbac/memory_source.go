package rbac

import (
	"context"
	"sync"
)

// RoleSource provides role definitions to the Authorizer.
type RoleSource interface {
	// Load returns role definitions keyed by role name.
	Load(ctx context.Context) (map[string]RoleDefinition, error)
}

// inMemRoleSource serves role definitions held in memory.
// It copies its input so later changes by the caller have no effect.
type inMemRoleSource struct {
	mu    sync.RWMutex
	roles map[string]RoleDefinition
}

// NewInMemRoleSource creates a role source from a map of definitions.
func NewInMemRoleSource(roles map[string]RoleDefinition) RoleSource {
	rolesCopy := make(map[string]RoleDefinition, len(roles))
	for name, def := range roles {
		rolesCopy[name] = def.clone()
	}

	return &inMemRoleSource{
		roles: rolesCopy,
	}
}

// Load returns the definitions. The authorizer treats the map as read-only.
func (s *inMemRoleSource) Load(ctx context.Context) (map[string]RoleDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.roles, nil
}

package rbac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/permit/pkg/logger"
)

// Authorizer answers permission checks for named roles.
// Each named role is resolved once, with its inherited rules applied first
// and its own rules on top.
type Authorizer interface {
	// Can checks if a role allows action on subject.
	Can(roleName, action, subject string) error

	// CanAny checks if a role allows any of the provided permissions.
	CanAny(roleName string, permissions ...Permission) error

	// CanAll checks if a role allows all of the provided permissions.
	CanAll(roleName string, permissions ...Permission) error

	// CanFromContext checks if the role in context allows action on subject.
	CanFromContext(ctx context.Context, action, subject string) error

	// CanAnyFromContext checks if the role in context allows any of the permissions.
	CanAnyFromContext(ctx context.Context, permissions ...Permission) error

	// CanAllFromContext checks if the role in context allows all of the permissions.
	CanAllFromContext(ctx context.Context, permissions ...Permission) error

	// VerifyRole returns an error if the given role does not exist.
	VerifyRole(role string) error

	// GetRoles returns all role names sorted by inheritance (base roles first).
	GetRoles() []string

	// Role returns a copy of the resolved role.
	Role(name string) (*Role, error)
}

// Option configures the Authorizer.
type Option func(*options)

type options struct {
	logger            *slog.Logger
	maxDepth          int
	strictIdentifiers bool
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxInheritanceDepth overrides DefaultMaxInheritanceDepth.
// Non-positive values are ignored.
func WithMaxInheritanceDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithStrictIdentifiers makes NewAuthorizer validate every rule.
func WithStrictIdentifiers(strict bool) Option {
	return func(o *options) {
		o.strictIdentifiers = strict
	}
}

// WithConfig applies settings loaded with LoadConfig.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		WithMaxInheritanceDepth(cfg.MaxInheritanceDepth)(o)
		o.strictIdentifiers = cfg.StrictIdentifiers
	}
}

// authorizer implements the Authorizer interface.
type authorizer struct {
	// roles holds the resolved role for each name.
	// The map and its roles are never mutated after initialization.
	roles map[string]*Role
	// sortedRoles lists all roles sorted by inheritance (base roles first).
	sortedRoles []string
	logger      *slog.Logger
}

// NewAuthorizer creates an Authorizer from the definitions provided by source.
// It resolves every role up front so checks are plain map lookups.
func NewAuthorizer(ctx context.Context, source RoleSource, opts ...Option) (Authorizer, error) {
	o := &options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxInheritanceDepth,
	}
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger.With(logger.Component("rbac"))

	defs, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if defs == nil {
		defs = make(map[string]RoleDefinition)
	}

	if o.strictIdentifiers {
		if err := validateRules(defs); err != nil {
			log.ErrorContext(ctx, "invalid role definitions", logger.Error(err))
			return nil, err
		}
	}

	if err := validateRoleInheritance(defs, o.maxDepth); err != nil {
		log.ErrorContext(ctx, "invalid role inheritance", logger.Error(err))
		return nil, err
	}

	resolved := make(map[string]*Role, len(defs))
	for _, name := range sortedNames(defs) {
		role := resolveRole(name, defs, resolved)
		log.DebugContext(ctx, "role resolved", logger.Role(name), logger.Count(role.Len()))
	}

	log.DebugContext(ctx, "authorizer initialized", logger.Count(len(resolved)))

	return &authorizer{
		roles:       resolved,
		sortedRoles: sortRolesByInheritance(defs),
		logger:      log,
	}, nil
}

// Can checks if a role allows action on subject.
func (a *authorizer) Can(roleName, action, subject string) error {
	return a.can(context.Background(), roleName, action, subject)
}

// CanAny checks if a role allows any of the provided permissions.
func (a *authorizer) CanAny(roleName string, permissions ...Permission) error {
	return a.canAny(context.Background(), roleName, permissions)
}

// CanAll checks if a role allows all of the provided permissions.
func (a *authorizer) CanAll(roleName string, permissions ...Permission) error {
	return a.canAll(context.Background(), roleName, permissions)
}

// CanFromContext checks if the role in context allows action on subject.
func (a *authorizer) CanFromContext(ctx context.Context, action, subject string) error {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrRoleNotInContext, ErrInsufficientPermissions)
	}

	return a.can(ctx, role, action, subject)
}

// CanAnyFromContext checks if the role in context allows any of the permissions.
func (a *authorizer) CanAnyFromContext(ctx context.Context, permissions ...Permission) error {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrRoleNotInContext, ErrInsufficientPermissions)
	}

	return a.canAny(ctx, role, permissions)
}

// CanAllFromContext checks if the role in context allows all of the permissions.
func (a *authorizer) CanAllFromContext(ctx context.Context, permissions ...Permission) error {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrRoleNotInContext, ErrInsufficientPermissions)
	}

	return a.canAll(ctx, role, permissions)
}

func (a *authorizer) can(ctx context.Context, roleName, action, subject string) error {
	role, exists := a.roles[roleName]
	if !exists {
		return ErrInvalidRole
	}

	if role.Cannot(action, subject) {
		a.logDenied(ctx, roleName, action, subject)
		return ErrInsufficientPermissions
	}

	return nil
}

func (a *authorizer) canAny(ctx context.Context, roleName string, permissions []Permission) error {
	if len(permissions) == 0 {
		return nil
	}

	role, exists := a.roles[roleName]
	if !exists {
		return ErrInvalidRole
	}

	for _, p := range permissions {
		if role.Can(p.Action, p.Subject) {
			return nil
		}
	}

	for _, p := range permissions {
		a.logDenied(ctx, roleName, p.Action, p.Subject)
	}
	return ErrInsufficientPermissions
}

func (a *authorizer) canAll(ctx context.Context, roleName string, permissions []Permission) error {
	if len(permissions) == 0 {
		return nil
	}

	role, exists := a.roles[roleName]
	if !exists {
		return ErrInvalidRole
	}

	for _, p := range permissions {
		if role.Cannot(p.Action, p.Subject) {
			a.logDenied(ctx, roleName, p.Action, p.Subject)
			return errors.Join(ErrInsufficientPermissions,
				fmt.Errorf("missing %s on %s", p.Action, p.Subject))
		}
	}

	return nil
}

func (a *authorizer) logDenied(ctx context.Context, roleName, action, subject string) {
	a.logger.DebugContext(ctx, "permission denied",
		logger.Role(roleName), logger.Action(action), logger.Subject(subject))
}

// VerifyRole returns an error if the given role does not exist.
func (a *authorizer) VerifyRole(role string) error {
	if _, exists := a.roles[role]; !exists {
		return ErrInvalidRole
	}
	return nil
}

// GetRoles returns all role names sorted by inheritance (base roles first).
func (a *authorizer) GetRoles() []string {
	return slices.Clone(a.sortedRoles)
}

// Role returns a copy of the resolved role, safe to modify.
func (a *authorizer) Role(name string) (*Role, error) {
	role, exists := a.roles[name]
	if !exists {
		return nil, ErrInvalidRole
	}
	return role.Clone(), nil
}

// resolveRole builds the role for name, resolving parents first.
// Inheritance must already be validated as acyclic.
func resolveRole(name string, defs map[string]RoleDefinition, resolved map[string]*Role) *Role {
	if role, ok := resolved[name]; ok {
		return role
	}

	def := defs[name]
	role := &Role{}
	for _, parent := range def.Inherits {
		role.Extends(resolveRole(parent, defs, resolved))
	}
	for _, rule := range def.Rules {
		role.Set(rule.Verdict, rule.Action, rule.Subject)
	}

	resolved[name] = role
	return role
}

// validateRules checks every rule of every definition.
func validateRules(defs map[string]RoleDefinition) error {
	for _, name := range sortedNames(defs) {
		for i, rule := range defs[name].Rules {
			if err := rule.Validate(); err != nil {
				return errors.Join(err, fmt.Errorf("role %q rule %d", name, i))
			}
		}
	}
	return nil
}

// sortRolesByInheritance returns role names sorted by inheritance depth,
// then by name.
func sortRolesByInheritance(defs map[string]RoleDefinition) []string {
	depths := make(map[string]int)
	visited := make(map[string]bool)

	for roleName := range defs {
		if !visited[roleName] {
			calculateRoleDepth(roleName, defs, depths, visited, make(map[string]bool))
		}
	}

	result := sortedNames(defs)
	slices.SortStableFunc(result, func(a, b string) int {
		return depths[a] - depths[b]
	})

	return result
}

func sortedNames(defs map[string]RoleDefinition) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// calculateRoleDepth computes the inheritance depth of a role using DFS.
func calculateRoleDepth(roleName string, defs map[string]RoleDefinition, depths map[string]int, visited, inProcess map[string]bool) int {
	if visited[roleName] {
		return depths[roleName]
	}

	if inProcess[roleName] {
		return 0 // Circular dependency detected
	}

	inProcess[roleName] = true
	defer func() { inProcess[roleName] = false }()

	maxDepth := 0
	for _, inheritedRole := range defs[roleName].Inherits {
		depth := calculateRoleDepth(inheritedRole, defs, depths, visited, inProcess) + 1
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	depths[roleName] = maxDepth
	visited[roleName] = true
	return maxDepth
}

// validateRoleInheritance checks for unknown parents, circular dependencies
// and excessive depth.
func validateRoleInheritance(defs map[string]RoleDefinition, maxDepth int) error {
	for _, roleName := range sortedNames(defs) {
		for _, parent := range defs[roleName].Inherits {
			if _, ok := defs[parent]; !ok {
				return errors.Join(ErrInvalidRole,
					fmt.Errorf("role %q inherits unknown role %q", roleName, parent))
			}
		}
	}

	for _, roleName := range sortedNames(defs) {
		if err := checkCircularInheritance(roleName, defs, []string{roleName}); err != nil {
			return err
		}
	}

	depths := make(map[string]int)
	visited := make(map[string]bool)
	for _, roleName := range sortedNames(defs) {
		if depth := calculateRoleDepth(roleName, defs, depths, visited, make(map[string]bool)); depth > maxDepth {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("inheritance depth of %q exceeds maximum allowed depth of %d", roleName, maxDepth))
		}
	}

	return nil
}

// checkCircularInheritance performs DFS to detect circular dependencies in role inheritance.
func checkCircularInheritance(roleName string, defs map[string]RoleDefinition, path []string) error {
	for _, inheritedRole := range defs[roleName].Inherits {
		if slices.Contains(path, inheritedRole) {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("circular inheritance detected: %s -> %s", strings.Join(path, " -> "), inheritedRole))
		}

		if err := checkCircularInheritance(inheritedRole, defs, append(slices.Clone(path), inheritedRole)); err != nil {
			return err
		}
	}

	return nil
}

// Package rbac provides allow/deny permission roles and an authorizer for
// named roles with inheritance.
//
// Key concepts:
//
//   - Rule: a (verdict, action, subject) triple, encoded as ["can", "read", "doc"]
//   - Role: a table from (action, subject) pairs to a verdict, built from rules
//   - Last write wins: a later rule for the same pair overrides earlier ones
//   - Deny by default: a pair without any rule is denied
//
// Working with a single role:
//
//	viewer := rbac.New(
//	    rbac.Allowed("read", "doc"),
//	    rbac.Denied("delete", "doc"),
//	)
//	viewer.Can("read", "doc")      // true
//	viewer.Cannot("delete", "doc") // true
//	viewer.Can("write", "doc")     // false, no rule
//
//	// Extend returns a new role; viewer is unchanged.
//	editor := viewer.Extend(rbac.Allowed("write", "doc"))
//
//	// Extends merges other roles into the receiver in place.
//	admin := rbac.New().Extends(editor).Set(rbac.Allow, "delete", "doc")
//
// Every Set is recorded in the role's rule list, so Raw and Clone always
// reproduce the current table.
//
// Named roles are served by an Authorizer. Definitions come from a RoleSource
// (in memory, YAML or JSON); inherited roles are applied first in declaration
// order and the role's own rules override them:
//
//	source, err := rbac.NewYAMLRoleSource(strings.NewReader(`
//	viewer:
//	  rules:
//	    - [can, read, doc]
//	editor:
//	  inherits: [viewer]
//	  rules:
//	    - [can, write, doc]
//	`))
//
//	cfg, err := rbac.LoadConfig() // RBAC_MAX_INHERITANCE_DEPTH, RBAC_STRICT_IDENTIFIERS
//	auth, err := rbac.NewAuthorizer(ctx, source, rbac.WithConfig(cfg))
//
//	if err := auth.Can("editor", "write", "doc"); err != nil {
//	    // errors.Is(err, rbac.ErrInsufficientPermissions)
//	}
//
//	ctx = rbac.SetRoleToContext(ctx, "viewer")
//	err = auth.CanFromContext(ctx, "read", "doc")
//
// A Role is not safe for concurrent mutation. The Authorizer is immutable
// after construction and hands out clones from Role, so it can be shared.
package rbac

package rbac

import "errors"

// Domain errors for RBAC operations.
var (
	// ErrInvalidRole is returned when a role does not exist.
	ErrInvalidRole = errors.New("rbac.invalid_role")

	// ErrInsufficientPermissions is returned when required permissions are not granted.
	ErrInsufficientPermissions = errors.New("rbac.insufficient_permissions")

	// ErrRoleNotInContext is returned when no role is found in the context.
	ErrRoleNotInContext = errors.New("rbac.role_not_in_context")

	// ErrCircularInheritance is returned when roles have circular inheritance
	// or the inheritance chain is deeper than allowed.
	ErrCircularInheritance = errors.New("rbac.circular_inheritance")

	// ErrInvalidIdentifier is returned when an action or subject is empty or contains whitespace.
	ErrInvalidIdentifier = errors.New("rbac.invalid_identifier")

	// ErrInvalidVerdict is returned for verdicts other than "can" and "cannot".
	ErrInvalidVerdict = errors.New("rbac.invalid_verdict")

	// ErrMalformedRule is returned when an encoded rule is not a three-element tuple.
	ErrMalformedRule = errors.New("rbac.malformed_rule")

	// ErrDecodingRoles is returned when role definitions cannot be decoded.
	ErrDecodingRoles = errors.New("rbac.decoding_roles")
)

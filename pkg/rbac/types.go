package rbac

// DefaultMaxInheritanceDepth is the maximum allowed depth of role inheritance
// unless configured otherwise.
const DefaultMaxInheritanceDepth = 10

// Permission is an (action, subject) pair checked by the Authorizer.
type Permission struct {
	Action  string `json:"action" yaml:"action"`
	Subject string `json:"subject" yaml:"subject"`
}

// RoleDefinition describes a named role: its own rules and the roles it
// inherits from. Inherited rules are applied first, in declaration order,
// so the role's own rules override them.
type RoleDefinition struct {
	// Rules directly declared by this role.
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Inherits lists role names this role inherits from.
	Inherits []string `json:"inherits,omitempty" yaml:"inherits,omitempty"`
}

func (d RoleDefinition) clone() RoleDefinition {
	rules := make([]Rule, len(d.Rules))
	copy(rules, d.Rules)

	inherits := make([]string, len(d.Inherits))
	copy(inherits, d.Inherits)

	return RoleDefinition{Rules: rules, Inherits: inherits}
}

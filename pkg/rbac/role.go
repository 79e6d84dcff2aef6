package rbac

import "slices"

// pair is the permission table key.
type pair struct {
	action  string
	subject string
}

// Role maps (action, subject) pairs to a verdict.
//
// A role keeps the ordered list of rules it was built from together with a
// lookup table derived from it. Later rules for the same pair override earlier
// ones, and pairs without any rule are denied. Both structures are owned by the
// role: constructors, Clone and Raw always copy.
//
// The zero value is an empty role ready to use. A Role is not safe for
// concurrent mutation.
type Role struct {
	rules []Rule
	table map[pair]bool
}

// New creates a role from the given rules.
func New(rules ...Rule) *Role {
	r := &Role{}
	r.BuildPermissions(rules)
	return r
}

// BuildPermissions replaces the rules of the role and rebuilds the lookup
// table from scratch, applying rules in order.
func (r *Role) BuildPermissions(rules []Rule) {
	r.rules = slices.Clone(rules)
	r.table = make(map[pair]bool, len(rules))
	for _, rule := range r.rules {
		r.table[pair{rule.Action, rule.Subject}] = rule.Verdict == Allow
	}
}

// Set records a single rule and returns the role for chaining.
// Any verdict other than Allow denies the pair.
func (r *Role) Set(verdict Verdict, action, subject string) *Role {
	if r.table == nil {
		r.table = make(map[pair]bool)
	}
	r.rules = append(r.rules, Rule{Verdict: verdict, Action: action, Subject: subject})
	r.table[pair{action, subject}] = verdict == Allow
	return r
}

// Can reports whether the role allows action on subject.
func (r *Role) Can(action, subject string) bool {
	return r.table[pair{action, subject}]
}

// Cannot reports whether the role denies action on subject, either
// explicitly or because no rule covers the pair.
func (r *Role) Cannot(action, subject string) bool {
	return !r.table[pair{action, subject}]
}

// Verdict returns the verdict stored for the pair and whether any rule
// defines it.
func (r *Role) Verdict(action, subject string) (Verdict, bool) {
	allowed, ok := r.table[pair{action, subject}]
	switch {
	case !ok:
		return "", false
	case allowed:
		return Allow, true
	default:
		return Deny, true
	}
}

// Extends applies the rules of every given role, in order, on top of r.
// It mutates r and returns it. Nil roles are skipped.
func (r *Role) Extends(roles ...*Role) *Role {
	for _, other := range roles {
		if other == nil {
			continue
		}
		for _, rule := range other.Raw() {
			r.Set(rule.Verdict, rule.Action, rule.Subject)
		}
	}
	return r
}

// Clone returns an independent copy of the role.
func (r *Role) Clone() *Role {
	return New(r.rules...)
}

// Extend returns a copy of the role with rules applied on top of it.
// The receiver is left unchanged.
func (r *Role) Extend(rules ...Rule) *Role {
	role := r.Clone()
	for _, rule := range rules {
		role.Set(rule.Verdict, rule.Action, rule.Subject)
	}
	return role
}

// Raw returns a copy of the rules the role was built from.
func (r *Role) Raw() []Rule {
	return slices.Clone(r.rules)
}

// Len returns the number of recorded rules.
func (r *Role) Len() int {
	return len(r.rules)
}

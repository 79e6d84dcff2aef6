package rbac

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Verdict is the outcome a rule assigns to an (action, subject) pair.
type Verdict string

const (
	// Allow grants the action on the subject.
	Allow Verdict = "can"
	// Deny refuses the action on the subject.
	Deny Verdict = "cannot"
)

// Valid reports whether v is Allow or Deny.
func (v Verdict) Valid() bool {
	return v == Allow || v == Deny
}

// Rule declares whether Action may be performed on Subject.
// It is encoded as the tuple [verdict, action, subject] in JSON and YAML.
type Rule struct {
	Verdict Verdict
	Action  string
	Subject string
}

// Allowed returns a rule granting action on subject.
func Allowed(action, subject string) Rule {
	return Rule{Verdict: Allow, Action: action, Subject: subject}
}

// Denied returns a rule refusing action on subject.
func Denied(action, subject string) Rule {
	return Rule{Verdict: Deny, Action: action, Subject: subject}
}

// Validate checks the verdict and both identifiers.
// Roles accept any rule; validation is only applied where callers opt in.
func (r Rule) Validate() error {
	if !r.Verdict.Valid() {
		return errors.Join(ErrInvalidVerdict, fmt.Errorf("verdict %q", r.Verdict))
	}
	if !validIdentifier(r.Action) {
		return errors.Join(ErrInvalidIdentifier, fmt.Errorf("action %q", r.Action))
	}
	if !validIdentifier(r.Subject) {
		return errors.Join(ErrInvalidIdentifier, fmt.Errorf("subject %q", r.Subject))
	}
	return nil
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s %s", r.Verdict, r.Action, r.Subject)
}

// MarshalJSON encodes the rule as a three-element array.
func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.tuple())
}

// UnmarshalJSON decodes a three-element array into the rule.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return errors.Join(ErrMalformedRule, err)
	}
	return r.fromTuple(parts)
}

// MarshalYAML encodes the rule as a flow sequence.
func (r Rule) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, part := range r.tuple() {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: part})
	}
	return node, nil
}

// UnmarshalYAML decodes a three-element sequence into the rule.
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	var parts []string
	if err := value.Decode(&parts); err != nil {
		return errors.Join(ErrMalformedRule, err)
	}
	return r.fromTuple(parts)
}

func (r Rule) tuple() []string {
	return []string{string(r.Verdict), r.Action, r.Subject}
}

func (r *Rule) fromTuple(parts []string) error {
	if len(parts) != 3 {
		return errors.Join(ErrMalformedRule, fmt.Errorf("expected 3 elements, got %d", len(parts)))
	}
	v := Verdict(parts[0])
	if !v.Valid() {
		return errors.Join(ErrInvalidVerdict, fmt.Errorf("verdict %q", parts[0]))
	}
	*r = Rule{Verdict: v, Action: parts[1], Subject: parts[2]}
	return nil
}

func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsSpace)
}

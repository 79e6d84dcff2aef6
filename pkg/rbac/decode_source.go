package rbac

import (
	"encoding/json"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// NewYAMLRoleSource decodes role definitions from a YAML document of the form
//
//	editor:
//	  inherits: [viewer]
//	  rules:
//	    - [can, write, doc]
//
// The reader is consumed immediately.
func NewYAMLRoleSource(r io.Reader) (RoleSource, error) {
	var roles map[string]RoleDefinition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roles); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrDecodingRoles, err)
	}
	return &inMemRoleSource{roles: roles}, nil
}

// NewJSONRoleSource decodes role definitions from a JSON object keyed by role
// name. The reader is consumed immediately.
func NewJSONRoleSource(r io.Reader) (RoleSource, error) {
	var roles map[string]RoleDefinition
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&roles); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrDecodingRoles, err)
	}
	return &inMemRoleSource{roles: roles}, nil
}

package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/permit/pkg/rbac"
)

func docRole() *rbac.Role {
	return rbac.New(
		rbac.Allowed("read", "doc"),
		rbac.Denied("delete", "doc"),
	)
}

func TestRole_New(t *testing.T) {
	t.Parallel()

	role := docRole()

	assert.True(t, role.Can("read", "doc"))
	assert.True(t, role.Cannot("delete", "doc"))
	assert.False(t, role.Can("delete", "doc"))
	assert.False(t, role.Can("write", "doc"))
	assert.Equal(t, 2, role.Len())
}

func TestRole_DenyByDefault(t *testing.T) {
	t.Parallel()

	t.Run("empty role", func(t *testing.T) {
		role := rbac.New()
		assert.False(t, role.Can("read", "doc"))
		assert.True(t, role.Cannot("read", "doc"))
		assert.Empty(t, role.Raw())
	})

	t.Run("zero value", func(t *testing.T) {
		var role rbac.Role
		assert.False(t, role.Can("read", "doc"))
		assert.True(t, role.Cannot("read", "doc"))

		role.Set(rbac.Allow, "read", "doc")
		assert.True(t, role.Can("read", "doc"))
	})

	t.Run("explicit deny and undefined agree", func(t *testing.T) {
		role := rbac.New(rbac.Denied("delete", "doc"))
		assert.Equal(t, role.Cannot("delete", "doc"), role.Cannot("archive", "doc"))
		assert.Equal(t, role.Can("delete", "doc"), role.Can("archive", "doc"))
	})

	t.Run("empty identifiers are accepted", func(t *testing.T) {
		role := rbac.New(rbac.Allowed("", ""))
		assert.True(t, role.Can("", ""))
		assert.False(t, role.Can("", "doc"))
	})
}

func TestRole_Verdict(t *testing.T) {
	t.Parallel()

	role := docRole()

	v, ok := role.Verdict("read", "doc")
	assert.True(t, ok)
	assert.Equal(t, rbac.Allow, v)

	v, ok = role.Verdict("delete", "doc")
	assert.True(t, ok)
	assert.Equal(t, rbac.Deny, v)

	v, ok = role.Verdict("write", "doc")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestRole_Set(t *testing.T) {
	t.Parallel()

	t.Run("last write wins", func(t *testing.T) {
		role := rbac.New().
			Set(rbac.Deny, "read", "doc").
			Set(rbac.Allow, "read", "doc")

		assert.True(t, role.Can("read", "doc"))
		assert.False(t, role.Cannot("read", "doc"))
	})

	t.Run("later deny overrides allow", func(t *testing.T) {
		role := docRole().Set(rbac.Deny, "read", "doc")
		assert.False(t, role.Can("read", "doc"))
		assert.True(t, role.Cannot("read", "doc"))
	})

	t.Run("other pairs are untouched", func(t *testing.T) {
		role := docRole().
			Set(rbac.Allow, "write", "doc").
			Set(rbac.Deny, "write", "doc").
			Set(rbac.Allow, "write", "doc")

		assert.True(t, role.Can("read", "doc"))
		assert.True(t, role.Cannot("delete", "doc"))
		assert.True(t, role.Can("write", "doc"))
	})

	t.Run("unknown verdict denies", func(t *testing.T) {
		role := rbac.New(rbac.Allowed("read", "doc")).Set(rbac.Verdict("maybe"), "read", "doc")
		assert.False(t, role.Can("read", "doc"))
	})

	t.Run("pairs do not collide on separators", func(t *testing.T) {
		role := rbac.New(rbac.Allowed("a:b", "c"))
		assert.True(t, role.Can("a:b", "c"))
		assert.False(t, role.Can("a", "b:c"))
	})

	t.Run("rule list stays in sync", func(t *testing.T) {
		role := docRole().Set(rbac.Allow, "write", "doc")

		assert.Equal(t, []rbac.Rule{
			rbac.Allowed("read", "doc"),
			rbac.Denied("delete", "doc"),
			rbac.Allowed("write", "doc"),
		}, role.Raw())
		assert.True(t, role.Clone().Can("write", "doc"))
	})
}

func TestRole_BuildPermissions(t *testing.T) {
	t.Parallel()

	role := docRole().Set(rbac.Allow, "write", "doc")
	role.BuildPermissions([]rbac.Rule{
		rbac.Allowed("publish", "doc"),
		rbac.Denied("publish", "doc"),
		rbac.Allowed("share", "doc"),
	})

	assert.False(t, role.Can("read", "doc"), "previous rules must be discarded")
	assert.False(t, role.Can("write", "doc"), "previous sets must be discarded")
	assert.False(t, role.Can("publish", "doc"))
	assert.True(t, role.Can("share", "doc"))
	assert.Equal(t, 3, role.Len())
}

func TestRole_BuildPermissions_CopiesInput(t *testing.T) {
	t.Parallel()

	rules := []rbac.Rule{rbac.Allowed("read", "doc")}
	role := rbac.New(rules...)

	rules[0] = rbac.Denied("read", "doc")

	assert.True(t, role.Can("read", "doc"))
	assert.Equal(t, rbac.Allowed("read", "doc"), role.Raw()[0])
}

func TestRole_Clone(t *testing.T) {
	t.Parallel()

	original := docRole()
	clone := original.Clone()

	require.Equal(t, original.Raw(), clone.Raw())

	clone.Set(rbac.Allow, "delete", "doc")
	assert.True(t, clone.Can("delete", "doc"))
	assert.False(t, original.Can("delete", "doc"))

	original.Set(rbac.Deny, "read", "doc")
	assert.False(t, original.Can("read", "doc"))
	assert.True(t, clone.Can("read", "doc"))
}

func TestRole_Extend(t *testing.T) {
	t.Parallel()

	roleA := docRole()
	before := roleA.Raw()

	extended := roleA.Extend(rbac.Allowed("write", "doc"))

	assert.True(t, extended.Can("read", "doc"))
	assert.True(t, extended.Can("write", "doc"))
	assert.True(t, extended.Cannot("delete", "doc"))

	assert.False(t, roleA.Can("write", "doc"))
	assert.Equal(t, before, roleA.Raw())

	t.Run("overrides in order", func(t *testing.T) {
		role := roleA.Extend(
			rbac.Allowed("delete", "doc"),
			rbac.Denied("read", "doc"),
			rbac.Denied("delete", "doc"),
		)
		assert.False(t, role.Can("read", "doc"))
		assert.False(t, role.Can("delete", "doc"))
		assert.True(t, roleA.Can("read", "doc"))
	})

	t.Run("no rules returns a copy", func(t *testing.T) {
		role := roleA.Extend()
		require.NotSame(t, roleA, role)
		assert.Equal(t, roleA.Raw(), role.Raw())
	})
}

func TestRole_Extends(t *testing.T) {
	t.Parallel()

	t.Run("merges in place", func(t *testing.T) {
		a := rbac.New(rbac.Allowed("read", "doc"))
		b := rbac.New(rbac.Allowed("write", "doc"), rbac.Denied("read", "doc"))

		got := a.Extends(b)

		assert.Same(t, a, got)
		assert.False(t, a.Can("read", "doc"))
		assert.True(t, a.Can("write", "doc"))
		assert.True(t, b.Cannot("read", "doc"), "source role must be untouched")
		assert.Equal(t, 2, b.Len())
	})

	t.Run("roles apply in call order", func(t *testing.T) {
		allow := rbac.New(rbac.Allowed("delete", "doc"))
		deny := rbac.New(rbac.Denied("delete", "doc"))

		assert.False(t, rbac.New().Extends(allow, deny).Can("delete", "doc"))
		assert.True(t, rbac.New().Extends(deny, allow).Can("delete", "doc"))
	})

	t.Run("later set overrides extended rule", func(t *testing.T) {
		base := rbac.New(rbac.Allowed("delete", "doc"))
		role := rbac.New().Extends(base).Set(rbac.Deny, "delete", "doc")
		assert.True(t, role.Cannot("delete", "doc"))
	})

	t.Run("nil roles are skipped", func(t *testing.T) {
		role := rbac.New(rbac.Allowed("read", "doc")).Extends(nil)
		assert.True(t, role.Can("read", "doc"))
		assert.Equal(t, 1, role.Len())
	})

	t.Run("extending itself", func(t *testing.T) {
		role := docRole()
		role.Extends(role)
		assert.True(t, role.Can("read", "doc"))
		assert.Equal(t, 4, role.Len())
	})

	t.Run("rules are exported", func(t *testing.T) {
		a := rbac.New(rbac.Allowed("read", "doc"))
		b := rbac.New(rbac.Allowed("write", "doc"))
		a.Extends(b)

		assert.Equal(t, []rbac.Rule{
			rbac.Allowed("read", "doc"),
			rbac.Allowed("write", "doc"),
		}, a.Raw())
		assert.True(t, a.Clone().Can("write", "doc"))
	})
}

func TestRole_Raw(t *testing.T) {
	t.Parallel()

	role := docRole()
	raw := role.Raw()
	raw[0].Verdict = rbac.Deny
	raw[1].Verdict = rbac.Allow

	assert.True(t, role.Can("read", "doc"))
	assert.True(t, role.Cannot("delete", "doc"))
	assert.False(t, role.Can("write", "doc"))
	assert.Equal(t, []rbac.Rule{
		rbac.Allowed("read", "doc"),
		rbac.Denied("delete", "doc"),
	}, role.Raw())
}

package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdminUser(t *testing.T) {
	t.Run("creates super user", func(t *testing.T) {
		user, err := NewAdminUser("Jefe.Tovar", "Apamate.25x", RoleSuper, nil)
		require.NoError(t, err)

		assert.Equal(t, "jefe.tovar", user.Username, "username is lower-cased")
		assert.True(t, user.IsSuper())
		assert.Empty(t, user.DeptSlugs)
		assert.NotEqual(t, "Apamate.25x", user.PasswordHash)
	})

	t.Run("creates department-scoped user", func(t *testing.T) {
		user, err := NewAdminUser("carnicero", "s3cret-pass", RoleDeptAdmin, []string{"carnes"})
		require.NoError(t, err)
		assert.False(t, user.IsSuper())
		assert.True(t, user.DeptSlugs.Contains("carnes"))
	})

	t.Run("scoped user needs at least one department", func(t *testing.T) {
		_, err := NewAdminUser("carnicero", "s3cret-pass", RoleDeptAdmin, nil)
		require.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewAdminUser("carnicero", "short", RoleDeptAdmin, []string{"carnes"})
		require.Error(t, err)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		_, err := NewAdminUser("x", "s3cret-pass", RoleSuper, nil)
		require.Error(t, err)

		_, err = NewAdminUser("has spaces", "s3cret-pass", RoleSuper, nil)
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewAdminUser("carnicero", "s3cret-pass", Role("owner"), nil)
		require.Error(t, err)
	})
}

func TestCheckPassword(t *testing.T) {
	user, err := NewAdminUser("carnicero", "s3cret-pass", RoleSuper, nil)
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
}

func TestSetScope(t *testing.T) {
	user, err := NewAdminUser("carnicero", "s3cret-pass", RoleDeptAdmin, []string{"carnes"})
	require.NoError(t, err)

	t.Run("promoting to super clears slugs", func(t *testing.T) {
		require.NoError(t, user.SetScope(RoleSuper, []string{"carnes"}))
		assert.True(t, user.IsSuper())
		assert.Empty(t, user.DeptSlugs)
	})

	t.Run("demoting without slugs fails", func(t *testing.T) {
		assert.Error(t, user.SetScope(RoleDeptAdmin, nil))
	})
}

func TestDeptSlugsRoundTrip(t *testing.T) {
	slugs := DeptSlugs{"carnes", "aves"}

	value, err := slugs.Value()
	require.NoError(t, err)

	var decoded DeptSlugs
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, slugs, decoded)
}

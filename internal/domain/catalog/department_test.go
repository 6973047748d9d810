package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lower-cases", "Carnes", "carnes"},
		{"replaces whitespace with hyphens", "Charcutería y Quesos", "charcutería-y-quesos"},
		{"collapses whitespace runs", "Frutas   y  Verduras", "frutas-y-verduras"},
		{"trims surrounding whitespace", "  Pescados ", "pescados"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestNewDepartment(t *testing.T) {
	t.Run("derives slug from name when empty", func(t *testing.T) {
		dept, err := NewDepartment("Carnes Rojas", "")
		require.NoError(t, err)
		assert.Equal(t, "carnes-rojas", dept.Slug)
		assert.True(t, dept.Active)
	})

	t.Run("normalizes an explicit slug", func(t *testing.T) {
		dept, err := NewDepartment("Aves", "Aves De Corral")
		require.NoError(t, err)
		assert.Equal(t, "aves-de-corral", dept.Slug)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewDepartment("", "carnes")
		require.Error(t, err)
	})
}

func TestDepartmentContact(t *testing.T) {
	dept, err := NewDepartment("Carnes", "carnes")
	require.NoError(t, err)

	require.NoError(t, dept.SetWhatsAppPhone(" 584241112233 "))
	assert.Equal(t, "584241112233", dept.WhatsAppPhone)
}

func TestIsCarrierDepartment(t *testing.T) {
	carriers, err := NewDepartment("Transporte", CarrierDepartmentSlug)
	require.NoError(t, err)
	assert.True(t, carriers.IsCarrierDepartment())
}

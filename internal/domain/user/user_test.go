//go:build unit

package user_test

import (
	"testing"
	"time"

	"gestion-turnos/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		errIs error
	}{
		{name: "lowercased and trimmed", in: "  Ana@Example.COM ", want: "ana@example.com"},
		{name: "plus addressing", in: "ana+turnos@example.com", want: "ana+turnos@example.com"},
		{name: "missing at", in: "ana.example.com", errIs: user.ErrInvalidEmail},
		{name: "missing tld", in: "ana@example", errIs: user.ErrInvalidEmail},
		{name: "empty", in: "", errIs: user.ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := user.NewEmail(tt.in)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Value())
			assert.True(t, got.Matches(tt.in))
		})
	}
}

func TestNewRole(t *testing.T) {
	tests := map[string]user.Role{
		"CLIENT":        user.RoleClient,
		"cliente":       user.RoleClient,
		"ROLE_EMPLEADO": user.RoleEmployee,
		" employee ":    user.RoleEmployee,
		"role_admin":    user.RoleAdmin,
		"Administrador": user.RoleAdmin,
	}
	for in, want := range tests {
		got, err := user.NewRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"SYSTEM", "ROLE_SYSTEM", "", "OWNER"} {
		_, err := user.NewRole(in)
		assert.ErrorIs(t, err, user.ErrInvalidRole, in)
	}
}

func TestRole_IsStaff(t *testing.T) {
	assert.False(t, user.RoleClient.IsStaff())
	assert.True(t, user.RoleEmployee.IsStaff())
	assert.True(t, user.RoleAdmin.IsStaff())
	assert.False(t, user.RoleSystem.IsStaff())
	assert.False(t, user.RoleSystem.IsValid())
}

func TestNewProfile(t *testing.T) {
	p, err := user.NewProfile(" Ana ", " Pérez ", " 555-1234 ")
	require.NoError(t, err)
	assert.Equal(t, user.Profile{FirstName: "Ana", LastName: "Pérez", Phone: "555-1234"}, p)
	assert.Equal(t, "Ana Pérez", p.FullName())

	_, err = user.NewProfile("Ana", "  ", "")
	assert.ErrorIs(t, err, user.ErrEmptyName)
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, user.ValidatePassword("short"), user.ErrPasswordTooWeak)
	assert.NoError(t, user.ValidatePassword("long-enough"))
}

func TestNewUser(t *testing.T) {
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	email, err := user.NewEmail("ana@example.com")
	require.NoError(t, err)
	profile, err := user.NewProfile("Ana", "Pérez", "")
	require.NoError(t, err)

	u, err := user.NewUser(email, "hash", user.RoleClient, profile, now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.True(t, u.IsActive())
	assert.Equal(t, now, u.CreatedAt())
	assert.Equal(t, u.CreatedAt(), u.UpdatedAt())

	_, err = user.NewUser(email, "hash", user.RoleSystem, profile, now)
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/pkg/jwt"
	"gestion-turnos/internal/pkg/password"
	"gestion-turnos/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthCommands(f *fixture) (commands.AuthCommands, *jwt.Service) {
	svc := jwt.NewService("test-secret", time.Hour, f.clock)
	return commands.NewAuthCommands(f.store.Users(), password.NewHasherWithCost(bcrypt.MinCost), svc, f.clock), svc
}

func validRegistration() commands.RegisterInput {
	return commands.RegisterInput{
		Email:     "Nueva@Example.com",
		Password:  "supersecret",
		FirstName: "Nueva",
		LastName:  "Clienta",
		Phone:     "+54 11 5555-5555",
	}
}

func TestAuthCommands_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	auth, svc := newAuthCommands(f)

	registered, err := auth.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, user.RoleClient, registered.Role())
	assert.Equal(t, "nueva@example.com", registered.Email().Value())
	assert.NotEqual(t, "supersecret", registered.PasswordHash())

	result, err := auth.Login(ctx, " nueva@example.com ", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID(), result.User.ID())

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID(), claims.UserID)
	assert.Equal(t, "nueva@example.com", claims.Email)
	assert.Equal(t, "CLIENT", claims.Role)
}

func TestAuthCommands_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *commands.RegisterInput)
		wantErr error
	}{
		{name: "bad email", mutate: func(in *commands.RegisterInput) { in.Email = "nope" }, wantErr: user.ErrInvalidEmail},
		{name: "short password", mutate: func(in *commands.RegisterInput) { in.Password = "1234567" }, wantErr: user.ErrPasswordTooWeak},
		{name: "missing last name", mutate: func(in *commands.RegisterInput) { in.LastName = " " }, wantErr: user.ErrEmptyName},
		{name: "email taken", mutate: func(in *commands.RegisterInput) { in.Email = "ANA@example.com" }, wantErr: commands.ErrEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			auth, _ := newAuthCommands(f)
			in := validRegistration()
			tt.mutate(&in)

			_, err := auth.Register(context.Background(), in)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthCommands_Login_Failures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	auth, _ := newAuthCommands(f)
	_, err := auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = auth.Login(ctx, "nueva@example.com", "wrong-password")
	assert.ErrorIs(t, err, commands.ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nadie@example.com", "supersecret")
	assert.ErrorIs(t, err, commands.ErrInvalidCredentials)

	_, err = auth.Login(ctx, "not-an-email", "supersecret")
	assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
}

func TestAuthCommands_CreateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	auth, _ := newAuthCommands(f)

	_, err := auth.CreateEmployee(ctx, f.employee, validRegistration())
	assert.ErrorIs(t, err, commands.ErrPermissionDenied)

	emp, err := auth.CreateEmployee(ctx, f.admin, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, emp.Role())
}

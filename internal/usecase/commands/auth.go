package commands

import (
	"context"
	"log/slog"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/infra"
	"gestion-turnos/internal/pkg/clock"
	"gestion-turnos/internal/pkg/errs"
	"gestion-turnos/internal/pkg/jwt"
	"gestion-turnos/internal/pkg/password"
	"gestion-turnos/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUserInactive       = errs.New("user inactive")
	ErrEmailTaken         = errs.New("email already registered")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	User        *user.User
	AccessToken string
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

//go:generate mockgen -source=auth.go -destination=../../mock/commands/auth_mock.go -package=commandsmock
type AuthCommands interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Register creates a self-service CLIENT account.
	Register(ctx context.Context, in RegisterInput) (*user.User, error)
	CreateEmployee(ctx context.Context, actor booking.Actor, in RegisterInput) (*user.User, error)
}

type authCommandsImpl struct {
	users      shared.UserRepository
	hasher     *password.Hasher
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(users shared.UserRepository, hasher *password.Hasher, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		hasher:     hasher,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pw string) (*LoginResult, error) {
	parsedEmail, err := user.NewEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := a.users.FindByEmail(ctx, parsedEmail)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Return same error as password mismatch to prevent user enumeration attacks
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := a.hasher.Compare(u.PasswordHash(), pw); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Email().Value(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	slog.Info("user logged in", "user_id", u.ID(), "role", u.Role().String())
	return &LoginResult{User: u, AccessToken: token}, nil
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	return a.createUser(ctx, in, user.RoleClient)
}

func (a *authCommandsImpl) CreateEmployee(ctx context.Context, actor booking.Actor, in RegisterInput) (*user.User, error) {
	if actor.Role != user.RoleAdmin {
		return nil, ErrPermissionDenied
	}
	return a.createUser(ctx, in, user.RoleEmployee)
}

func (a *authCommandsImpl) createUser(ctx context.Context, in RegisterInput, role user.Role) (*user.User, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := user.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	profile, err := user.NewProfile(in.FirstName, in.LastName, in.Phone)
	if err != nil {
		return nil, err
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(email, hash, role, profile, a.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := a.users.Create(ctx, u); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Info("user registered", "user_id", u.ID(), "role", role.String())
	return u, nil
}

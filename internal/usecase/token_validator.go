package usecase

import (
	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/pkg/jwt"

	"github.com/google/uuid"
)

type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	// SYSTEM is never issued, so NewRole rejects it here too
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}

	return Identity{UserID: claims.UserID, Email: claims.Email, Role: role}, nil
}

package response

import (
	"time"

	"gestion-turnos/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

func FromUser(u *user.User) *UserResponse {
	profile := u.Profile()
	return &UserResponse{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Role:      u.Role().String(),
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Phone:     profile.Phone,
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}

package queries

import (
	"context"

	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/pkg/errs"
	"gestion-turnos/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

//go:generate mockgen -source=user.go -destination=../../mock/queries/user_mock.go -package=queriesmock
type UserQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type userQueriesImpl struct {
	users shared.UserRepository
}

func NewUserQueries(users shared.UserRepository) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := q.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}
	return u, nil
}

package repository

import (
	"context"
	"time"

	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/infra"

	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, role, first_name, last_name, phone, is_active, created_at, updated_at`

const (
	insertUserSQL = `INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	findUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	findUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	p := u.Profile()
	_, err := r.db.Exec(ctx, insertUserSQL,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		p.FirstName,
		p.LastName,
		p.Phone,
		u.IsActive(),
		u.CreatedAt(),
		u.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, findUserByEmailSQL, email.Value()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, findUserByIDSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func scanUser(row scanner) (*user.User, error) {
	var (
		id           uuid.UUID
		email        string
		passwordHash string
		role         string
		profile      user.Profile
		isActive     bool
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(
		&id, &email, &passwordHash, &role,
		&profile.FirstName, &profile.LastName, &profile.Phone,
		&isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedEmail, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	parsedRole, err := user.NewRole(role)
	if err != nil {
		return nil, err
	}

	return user.ReconstructUser(id, parsedEmail, passwordHash, parsedRole, profile, isActive, createdAt, updatedAt), nil
}

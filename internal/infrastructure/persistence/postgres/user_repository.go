package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/persistence/dbx"
)

const (
	userColumns = `id, name, email, password_hash, role, created_at, updated_at`

	insertUserSQL = `INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	userByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	userByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	listUsersSQL   = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	updateRoleSQL  = `UPDATE users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns
)

type UserRepository struct {
	db dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	err := r.db.QueryRowContext(ctx, insertUserSQL, user.Name, user.Email, user.PasswordHash, string(user.Role)).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domerrors.ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, userByEmailSQL, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return r.getOne(ctx, userByIDSQL, int64(id))
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id domain.UserID, role domain.Role) (*domain.User, error) {
	return r.getOne(ctx, updateRoleSQL, string(role), int64(id))
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)

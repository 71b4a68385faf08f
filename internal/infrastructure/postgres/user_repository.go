package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inventa-shop/unlock-survey-api/internal/domain"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de usuários. Aceita pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, coalesce(name, ''), password_hash, role, show_index, show_assessment, last_login_at, created_at, updated_at`

// Create persiste um novo usuário e preenche ID e timestamps.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const q = `
		INSERT INTO users (email, name, password_hash, role, show_index, show_assessment)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, q,
		user.Email, user.Name, user.PasswordHash, user.Role, user.ShowIndex, user.ShowAssessment,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID devolve o usuário por id, ou nil, nil se não existir.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, q, id))
}

// GetByEmail busca por e-mail case-insensitive. Devolve nil, nil se não existir.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanOne(r.q.QueryRow(ctx, q, email))
}

// TouchLastLogin carimba o último acesso com now().
func (r *UserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	const q = `UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("touch last_login_at: %w", err)
	}
	return nil
}

// UpdatePasswordByEmail troca o hash de senha (e-mail case-insensitive).
func (r *UserRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $2, updated_at = now() WHERE lower(email) = lower($1)`
	tag, err := r.q.Exec(ctx, q, email, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateRoleByEmail troca o role do usuário (e-mail case-insensitive).
func (r *UserRepo) UpdateRoleByEmail(ctx context.Context, email, role string) error {
	const q = `UPDATE users SET role = $2, updated_at = now() WHERE lower(email) = lower($1)`
	tag, err := r.q.Exec(ctx, q, email, role)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetCardVisibility alterna a visibilidade de um card da home do seller.
func (r *UserRepo) SetCardVisibility(ctx context.Context, sellerID int64, card int, visible bool) error {
	column := "show_index"
	if card == 2 {
		column = "show_assessment"
	}
	// column vem de um switch fechado, nunca de entrada do usuário.
	q := fmt.Sprintf(`UPDATE users SET %s = $2, updated_at = now() WHERE id = $1`, column)
	tag, err := r.q.Exec(ctx, q, sellerID, visible)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.ShowIndex, &u.ShowAssessment, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

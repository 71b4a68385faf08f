package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

var _ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)

// PasswordResetRepo tokens de redefinição de senha sobre PostgreSQL.
type PasswordResetRepo struct {
	q Querier
}

// NewPasswordResetRepository constrói o adaptador de tokens. Aceita pool ou tx (Querier).
func NewPasswordResetRepository(q Querier) *PasswordResetRepo {
	return &PasswordResetRepo{q: q}
}

// Create grava um token novo e preenche o ID.
func (r *PasswordResetRepo) Create(ctx context.Context, t *entity.PasswordResetToken) error {
	const q = `
		INSERT INTO password_reset_tokens (email, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, q, t.Email, t.TokenHash, t.ExpiresAt).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// GetByHash devolve o token pelo hash, ou nil, nil se não existir.
func (r *PasswordResetRepo) GetByHash(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error) {
	const q = `
		SELECT id, email, token_hash, expires_at, used_at, created_at
		FROM password_reset_tokens WHERE token_hash = $1`
	var t entity.PasswordResetToken
	err := r.q.QueryRow(ctx, q, tokenHash).Scan(
		&t.ID, &t.Email, &t.TokenHash, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select reset token: %w", err)
	}
	return &t, nil
}

// MarkUsed carimba o uso do token.
func (r *PasswordResetRepo) MarkUsed(ctx context.Context, id int64, usedAt time.Time) error {
	const q = `UPDATE password_reset_tokens SET used_at = $2 WHERE id = $1`
	if _, err := r.q.Exec(ctx, q, id, usedAt); err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	return nil
}

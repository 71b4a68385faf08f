package repository

import (
	"context"
	"time"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// AssessmentRepository persistência do assessment de negócio (um blob por seller).
type AssessmentRepository interface {
	// Get devolve o assessment do seller ou nil, nil se não existir.
	Get(ctx context.Context, sellerID int64) (*entity.SellerAssessment, error)
	// GetStatus devolve o status atual ("" se não existir linha).
	GetStatus(ctx context.Context, sellerID int64) (string, error)
	// UpsertDraft grava o blob com status draft; conflito sobrescreve o data.
	UpsertDraft(ctx context.Context, sellerID int64, data entity.AssessmentData) error
	// UpsertSubmitted grava o blob com status submitted e carimba submitted_at.
	UpsertSubmitted(ctx context.Context, sellerID int64, data entity.AssessmentData, submittedAt time.Time) error
}

// PasswordResetRepository tokens de redefinição de senha (hash SHA-256, uso único).
type PasswordResetRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	// GetByHash devolve o token pelo hash ou nil, nil se não existir.
	GetByHash(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64, usedAt time.Time) error
}

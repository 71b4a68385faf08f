package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

var _ repository.AssessmentRepository = (*AssessmentRepo)(nil)

// AssessmentRepo assessment de negócio (blob JSONB por seller) sobre PostgreSQL.
type AssessmentRepo struct {
	q Querier
}

// NewAssessmentRepository constrói o adaptador do assessment. Aceita pool ou tx (Querier).
func NewAssessmentRepository(q Querier) *AssessmentRepo {
	return &AssessmentRepo{q: q}
}

// Get devolve o assessment do seller, ou nil, nil se não existir.
func (r *AssessmentRepo) Get(ctx context.Context, sellerID int64) (*entity.SellerAssessment, error) {
	const q = `
		SELECT seller_id, status, data, submitted_at, created_at, updated_at
		FROM seller_assessments WHERE seller_id = $1`
	var (
		a   entity.SellerAssessment
		raw []byte
	)
	err := r.q.QueryRow(ctx, q, sellerID).Scan(
		&a.SellerID, &a.Status, &raw, &a.SubmittedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select assessment: %w", err)
	}
	if err := json.Unmarshal(raw, &a.Data); err != nil {
		return nil, fmt.Errorf("decode assessment data: %w", err)
	}
	return &a, nil
}

// GetStatus devolve o status atual ("" se não existir linha).
func (r *AssessmentRepo) GetStatus(ctx context.Context, sellerID int64) (string, error) {
	const q = `SELECT status FROM seller_assessments WHERE seller_id = $1`
	var status string
	err := r.q.QueryRow(ctx, q, sellerID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("select status: %w", err)
	}
	return status, nil
}

// UpsertDraft grava o blob como draft; conflito sobrescreve o data.
func (r *AssessmentRepo) UpsertDraft(ctx context.Context, sellerID int64, data entity.AssessmentData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode assessment data: %w", err)
	}
	const q = `
		INSERT INTO seller_assessments (seller_id, status, data)
		VALUES ($1, 'draft', $2)
		ON CONFLICT (seller_id) DO UPDATE SET
			status = 'draft',
			data = excluded.data,
			updated_at = now()`
	if _, err := r.q.Exec(ctx, q, sellerID, raw); err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

// UpsertSubmitted grava o blob como submitted e carimba submitted_at.
func (r *AssessmentRepo) UpsertSubmitted(ctx context.Context, sellerID int64, data entity.AssessmentData, submittedAt time.Time) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode assessment data: %w", err)
	}
	const q = `
		INSERT INTO seller_assessments (seller_id, status, data, submitted_at)
		VALUES ($1, 'submitted', $2, $3)
		ON CONFLICT (seller_id) DO UPDATE SET
			status = 'submitted',
			data = excluded.data,
			submitted_at = excluded.submitted_at,
			updated_at = now()`
	if _, err := r.q.Exec(ctx, q, sellerID, raw, submittedAt); err != nil {
		return fmt.Errorf("upsert submitted: %w", err)
	}
	return nil
}

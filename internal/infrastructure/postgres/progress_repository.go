package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

var _ repository.ProgressRepository = (*ProgressRepo)(nil)

// ProgressRepo avanço do seller no wizard sobre PostgreSQL.
type ProgressRepo struct {
	q Querier
}

// NewProgressRepository constrói o adaptador de progresso. Aceita pool ou tx (Querier).
func NewProgressRepository(q Querier) *ProgressRepo {
	return &ProgressRepo{q: q}
}

// Get devolve o progresso do seller, ou nil, nil se não existir linha.
func (r *ProgressRepo) Get(ctx context.Context, sellerID int64) (*entity.SellerProgress, error) {
	const q = `
		SELECT seller_id, last_step_id, last_step_order,
		       reached_final_step, reached_final_step_at,
		       received_return, received_return_marked_at, received_return_marked_by,
		       created_at, updated_at
		FROM seller_progress WHERE seller_id = $1`
	var p entity.SellerProgress
	err := r.q.QueryRow(ctx, q, sellerID).Scan(
		&p.SellerID, &p.LastStepID, &p.LastStepOrder,
		&p.ReachedFinalStep, &p.ReachedFinalStepAt,
		&p.ReceivedReturn, &p.ReceivedReturnMarkedAt, &p.ReceivedReturnMarkedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select progress: %w", err)
	}
	return &p, nil
}

// AdvanceStep upsert do progresso. O GREATEST no conflito garante que
// last_step_order nunca regride, mesmo com dois envios concorrentes do mesmo
// seller — a decisão fica no banco, não numa leitura prévia.
func (r *ProgressRepo) AdvanceStep(ctx context.Context, sellerID, stepID int64, stepOrder int) error {
	const q = `
		INSERT INTO seller_progress (seller_id, last_step_id, last_step_order)
		VALUES ($1, $2, $3)
		ON CONFLICT (seller_id) DO UPDATE SET
			last_step_id = CASE
				WHEN excluded.last_step_order >= seller_progress.last_step_order
				THEN excluded.last_step_id
				ELSE seller_progress.last_step_id
			END,
			last_step_order = GREATEST(seller_progress.last_step_order, excluded.last_step_order),
			updated_at = now()`
	if _, err := r.q.Exec(ctx, q, sellerID, stepID, stepOrder); err != nil {
		return fmt.Errorf("advance step: %w", err)
	}
	return nil
}

// MarkReachedFinal marca a chegada ao passo final. Monotônico: reexecutar não
// mexe no carimbo original.
func (r *ProgressRepo) MarkReachedFinal(ctx context.Context, sellerID int64, finalStepOrder int) error {
	const q = `
		INSERT INTO seller_progress (seller_id, last_step_order, reached_final_step, reached_final_step_at)
		VALUES ($1, $2, true, now())
		ON CONFLICT (seller_id) DO UPDATE SET
			last_step_order = GREATEST(seller_progress.last_step_order, excluded.last_step_order),
			reached_final_step = true,
			reached_final_step_at = coalesce(seller_progress.reached_final_step_at, now()),
			updated_at = now()`
	if _, err := r.q.Exec(ctx, q, sellerID, finalStepOrder); err != nil {
		return fmt.Errorf("mark reached final: %w", err)
	}
	return nil
}

// SetReceivedReturn marca/desmarca a devolutiva. Desmarcar limpa os metadados.
func (r *ProgressRepo) SetReceivedReturn(ctx context.Context, sellerID int64, received bool, markedBy *int64) error {
	const q = `
		INSERT INTO seller_progress (seller_id, received_return, received_return_marked_at, received_return_marked_by)
		VALUES ($1, $2, CASE WHEN $2 THEN now() END, $3)
		ON CONFLICT (seller_id) DO UPDATE SET
			received_return = excluded.received_return,
			received_return_marked_at = CASE WHEN excluded.received_return THEN now() END,
			received_return_marked_by = excluded.received_return_marked_by,
			updated_at = now()`
	if _, err := r.q.Exec(ctx, q, sellerID, received, markedBy); err != nil {
		return fmt.Errorf("set received_return: %w", err)
	}
	return nil
}

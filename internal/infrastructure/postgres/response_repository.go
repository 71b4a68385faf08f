package postgres

import (
	"context"
	"fmt"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

var _ repository.ResponseRepository = (*ResponseRepo)(nil)

// ResponseRepo respostas do questionário de maturidade sobre PostgreSQL.
type ResponseRepo struct {
	q Querier
}

// NewResponseRepository constrói o adaptador de respostas. Aceita pool ou tx (Querier).
func NewResponseRepository(q Querier) *ResponseRepo {
	return &ResponseRepo{q: q}
}

// BulkUpsert grava as respostas; conflito em (seller_id, question_id)
// sobrescreve a opção. A constraint única garante uma resposta por pergunta
// mesmo sob envios concorrentes.
func (r *ResponseRepo) BulkUpsert(ctx context.Context, responses []*entity.QuestionResponse) error {
	const q = `
		INSERT INTO question_responses (seller_id, question_id, option_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (seller_id, question_id) DO UPDATE SET
			option_id = excluded.option_id,
			updated_at = now()`
	for _, resp := range responses {
		if _, err := r.q.Exec(ctx, q, resp.SellerID, resp.QuestionID, resp.OptionID); err != nil {
			return fmt.Errorf("upsert response (question %d): %w", resp.QuestionID, err)
		}
	}
	return nil
}

// ListBySellerAndQuestions respostas existentes do seller para as perguntas dadas.
func (r *ResponseRepo) ListBySellerAndQuestions(ctx context.Context, sellerID int64, questionIDs []int64) ([]*entity.QuestionResponse, error) {
	const q = `
		SELECT id, seller_id, question_id, option_id, created_at, updated_at
		FROM question_responses
		WHERE seller_id = $1 AND question_id = ANY($2)`
	rows, err := r.q.Query(ctx, q, sellerID, int64Slice(questionIDs))
	if err != nil {
		return nil, fmt.Errorf("select responses: %w", err)
	}
	defer rows.Close()

	var out []*entity.QuestionResponse
	for rows.Next() {
		var resp entity.QuestionResponse
		if err := rows.Scan(&resp.ID, &resp.SellerID, &resp.QuestionID, &resp.OptionID, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, &resp)
	}
	return out, rows.Err()
}

// StepAverages média de score por passo sobre as perguntas respondidas.
// AVG sai como NUMERIC e chega como decimal via codec do pool — sem float no meio.
func (r *ResponseRepo) StepAverages(ctx context.Context, sellerID int64, stepIDs []int64) (map[int64]repository.StepAverage, error) {
	const q = `
		SELECT sq.step_id, avg(qo.score)::numeric, count(*)
		FROM question_responses qr
		JOIN question_options qo ON qo.id = qr.option_id
		JOIN step_questions sq ON sq.question_id = qr.question_id
		WHERE qr.seller_id = $1 AND sq.step_id = ANY($2)
		GROUP BY sq.step_id`
	rows, err := r.q.Query(ctx, q, sellerID, int64Slice(stepIDs))
	if err != nil {
		return nil, fmt.Errorf("step averages: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]repository.StepAverage)
	for rows.Next() {
		var stepID int64
		var agg repository.StepAverage
		if err := rows.Scan(&stepID, &agg.Avg, &agg.Answered); err != nil {
			return nil, fmt.Errorf("scan average: %w", err)
		}
		out[stepID] = agg
	}
	return out, rows.Err()
}

// AnsweredCounts contagem de respostas por (seller, passo), para o dashboard.
func (r *ResponseRepo) AnsweredCounts(ctx context.Context, sellerIDs, stepIDs []int64) (map[repository.SellerStep]int, error) {
	const q = `
		SELECT qr.seller_id, sq.step_id, count(*)
		FROM question_responses qr
		JOIN step_questions sq ON sq.question_id = qr.question_id
		WHERE qr.seller_id = ANY($1) AND sq.step_id = ANY($2)
		GROUP BY qr.seller_id, sq.step_id`
	rows, err := r.q.Query(ctx, q, int64Slice(sellerIDs), int64Slice(stepIDs))
	if err != nil {
		return nil, fmt.Errorf("answered counts: %w", err)
	}
	defer rows.Close()

	out := make(map[repository.SellerStep]int)
	for rows.Next() {
		var key repository.SellerStep
		var n int
		if err := rows.Scan(&key.SellerID, &key.StepID, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[key] = n
	}
	return out, rows.Err()
}

// ListAnswerExportRows linhas do answers.csv: toda pergunta de passo ativo,
// com left join na resposta do seller.
func (r *ResponseRepo) ListAnswerExportRows(ctx context.Context, sellerID int64) ([]repository.AnswerExportRow, error) {
	const q = `
		SELECT s."order", s.key, s.title,
		       sq."order", qu.key, qu.label,
		       coalesce(qo.value, ''), coalesce(qo.label, ''), qo.score, qr.updated_at
		FROM step_questions sq
		JOIN survey_steps s ON s.id = sq.step_id
		JOIN questions qu ON qu.id = sq.question_id
		LEFT JOIN question_responses qr
			ON qr.question_id = qu.id AND qr.seller_id = $1
		LEFT JOIN question_options qo ON qo.id = qr.option_id
		WHERE s.is_active = true
		ORDER BY s."order", sq."order"`
	rows, err := r.q.Query(ctx, q, sellerID)
	if err != nil {
		return nil, fmt.Errorf("export rows: %w", err)
	}
	defer rows.Close()

	var out []repository.AnswerExportRow
	for rows.Next() {
		var row repository.AnswerExportRow
		if err := rows.Scan(
			&row.StepOrder, &row.StepKey, &row.StepTitle,
			&row.QuestionOrder, &row.QuestionKey, &row.QuestionLabel,
			&row.OptionValue, &row.OptionLabel, &row.OptionScore, &row.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

var _ repository.SurveyRepository = (*SurveyRepo)(nil)

// SurveyRepo catálogo do questionário (passos, perguntas, opções) sobre PostgreSQL.
type SurveyRepo struct {
	q Querier
}

// NewSurveyRepository constrói o adaptador do catálogo. Aceita pool ou tx (Querier).
func NewSurveyRepository(q Querier) *SurveyRepo {
	return &SurveyRepo{q: q}
}

// GetStepByKey devolve o passo pela chave, ou nil, nil se não existir.
func (r *SurveyRepo) GetStepByKey(ctx context.Context, key string) (*entity.SurveyStep, error) {
	const q = `
		SELECT id, key, title, coalesce(description, ''), "order", is_active, created_at, updated_at
		FROM survey_steps WHERE key = $1`
	var s entity.SurveyStep
	err := r.q.QueryRow(ctx, q, key).Scan(
		&s.ID, &s.Key, &s.Title, &s.Description, &s.Order, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select step: %w", err)
	}
	return &s, nil
}

// ListActiveSteps passos ativos que têm ao menos uma pergunta, em ordem.
func (r *SurveyRepo) ListActiveSteps(ctx context.Context) ([]*entity.SurveyStep, error) {
	const q = `
		SELECT DISTINCT s.id, s.key, s.title, coalesce(s.description, ''), s."order", s.is_active, s.created_at, s.updated_at
		FROM survey_steps s
		JOIN step_questions sq ON sq.step_id = s.id
		WHERE s.is_active = true
		ORDER BY s."order"`
	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select active steps: %w", err)
	}
	defer rows.Close()

	var steps []*entity.SurveyStep
	for rows.Next() {
		var s entity.SurveyStep
		if err := rows.Scan(&s.ID, &s.Key, &s.Title, &s.Description, &s.Order, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, &s)
	}
	return steps, rows.Err()
}

// ListStepQuestions perguntas do passo na ordem definida pelo passo.
func (r *SurveyRepo) ListStepQuestions(ctx context.Context, stepID int64) ([]repository.StepQuestionRow, error) {
	const q = `
		SELECT q.id, q.key, q.label, sq."order", sq.required
		FROM step_questions sq
		JOIN questions q ON q.id = sq.question_id
		WHERE sq.step_id = $1
		ORDER BY sq."order"`
	rows, err := r.q.Query(ctx, q, stepID)
	if err != nil {
		return nil, fmt.Errorf("select step questions: %w", err)
	}
	defer rows.Close()

	var out []repository.StepQuestionRow
	for rows.Next() {
		var row repository.StepQuestionRow
		if err := rows.Scan(&row.QuestionID, &row.QuestionKey, &row.QuestionLabel, &row.Order, &row.Required); err != nil {
			return nil, fmt.Errorf("scan step question: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListOptionsByQuestions opções das perguntas dadas, ordenadas por pergunta e ordem.
func (r *SurveyRepo) ListOptionsByQuestions(ctx context.Context, questionIDs []int64) ([]*entity.QuestionOption, error) {
	const q = `
		SELECT id, question_id, value, label, "order", score, is_active
		FROM question_options
		WHERE question_id = ANY($1)
		ORDER BY question_id, "order"`
	rows, err := r.q.Query(ctx, q, int64Slice(questionIDs))
	if err != nil {
		return nil, fmt.Errorf("select options: %w", err)
	}
	defer rows.Close()

	var out []*entity.QuestionOption
	for rows.Next() {
		var o entity.QuestionOption
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Value, &o.Label, &o.Order, &o.Score, &o.IsActive); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// CountQuestionsByStep total de perguntas de cada passo.
func (r *SurveyRepo) CountQuestionsByStep(ctx context.Context, stepIDs []int64) (map[int64]int, error) {
	const q = `
		SELECT step_id, count(*)
		FROM step_questions
		WHERE step_id = ANY($1)
		GROUP BY step_id`
	rows, err := r.q.Query(ctx, q, int64Slice(stepIDs))
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int)
	for rows.Next() {
		var stepID int64
		var n int
		if err := rows.Scan(&stepID, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[stepID] = n
	}
	return out, rows.Err()
}

// MaxScoreByStep maior score entre as opções das perguntas de cada passo.
func (r *SurveyRepo) MaxScoreByStep(ctx context.Context, stepIDs []int64) (map[int64]int, error) {
	const q = `
		SELECT sq.step_id, max(qo.score)
		FROM step_questions sq
		JOIN question_options qo ON qo.question_id = sq.question_id
		WHERE sq.step_id = ANY($1)
		GROUP BY sq.step_id`
	rows, err := r.q.Query(ctx, q, int64Slice(stepIDs))
	if err != nil {
		return nil, fmt.Errorf("max score: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int)
	for rows.Next() {
		var stepID int64
		var score int
		if err := rows.Scan(&stepID, &score); err != nil {
			return nil, fmt.Errorf("scan max score: %w", err)
		}
		out[stepID] = score
	}
	return out, rows.Err()
}

// UpsertStep insere ou atualiza um passo pela chave (seed).
func (r *SurveyRepo) UpsertStep(ctx context.Context, s *entity.SurveyStep) error {
	const q = `
		INSERT INTO survey_steps (key, title, description, "order", is_active)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		ON CONFLICT (key) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			"order" = excluded."order",
			is_active = excluded.is_active,
			updated_at = now()
		RETURNING id`
	if err := r.q.QueryRow(ctx, q, s.Key, s.Title, s.Description, s.Order, s.IsActive).Scan(&s.ID); err != nil {
		return fmt.Errorf("upsert step: %w", err)
	}
	return nil
}

// UpsertQuestion insere ou atualiza uma pergunta pela chave (seed).
func (r *SurveyRepo) UpsertQuestion(ctx context.Context, qu *entity.Question) error {
	const q = `
		INSERT INTO questions (key, label, help_text, is_active)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (key) DO UPDATE SET
			label = excluded.label,
			help_text = excluded.help_text,
			is_active = excluded.is_active,
			updated_at = now()
		RETURNING id`
	if err := r.q.QueryRow(ctx, q, qu.Key, qu.Label, qu.HelpText, qu.IsActive).Scan(&qu.ID); err != nil {
		return fmt.Errorf("upsert question: %w", err)
	}
	return nil
}

// UpsertOption insere ou atualiza uma opção por (pergunta, valor) (seed).
func (r *SurveyRepo) UpsertOption(ctx context.Context, o *entity.QuestionOption) error {
	const q = `
		INSERT INTO question_options (question_id, value, label, "order", score, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (question_id, value) DO UPDATE SET
			label = excluded.label,
			"order" = excluded."order",
			score = excluded.score,
			is_active = excluded.is_active
		RETURNING id`
	if err := r.q.QueryRow(ctx, q, o.QuestionID, o.Value, o.Label, o.Order, o.Score, o.IsActive).Scan(&o.ID); err != nil {
		return fmt.Errorf("upsert option: %w", err)
	}
	return nil
}

// UpsertStepQuestion associa pergunta a passo com ordem própria (seed).
func (r *SurveyRepo) UpsertStepQuestion(ctx context.Context, sq *entity.StepQuestion) error {
	const q = `
		INSERT INTO step_questions (step_id, question_id, "order", required)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (step_id, question_id) DO UPDATE SET
			"order" = excluded."order",
			required = excluded.required,
			updated_at = now()
		RETURNING id`
	if err := r.q.QueryRow(ctx, q, sq.StepID, sq.QuestionID, sq.Order, sq.Required).Scan(&sq.ID); err != nil {
		return fmt.Errorf("upsert step_question: %w", err)
	}
	return nil
}

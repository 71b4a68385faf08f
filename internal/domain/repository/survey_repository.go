package repository

import (
	"context"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// StepQuestionRow pergunta de um passo com a ordem definida pelo passo.
type StepQuestionRow struct {
	QuestionID    int64
	QuestionKey   string
	QuestionLabel string
	Order         int
	Required      bool
}

// SurveyRepository leitura da estrutura do questionário e upserts de seed.
type SurveyRepository interface {
	// GetStepByKey devolve o passo pela chave, ativo ou não. nil, nil se não existir.
	GetStepByKey(ctx context.Context, key string) (*entity.SurveyStep, error)
	// ListActiveSteps devolve os passos ativos que têm ao menos uma pergunta,
	// ordenados por "order".
	ListActiveSteps(ctx context.Context) ([]*entity.SurveyStep, error)
	// ListStepQuestions devolve as perguntas do passo na ordem do passo.
	ListStepQuestions(ctx context.Context, stepID int64) ([]StepQuestionRow, error)
	// ListOptionsByQuestions devolve as opções das perguntas, ordenadas por
	// (question_id, order).
	ListOptionsByQuestions(ctx context.Context, questionIDs []int64) ([]*entity.QuestionOption, error)
	// CountQuestionsByStep total de perguntas por passo.
	CountQuestionsByStep(ctx context.Context, stepIDs []int64) (map[int64]int, error)
	// MaxScoreByStep maior score atingível entre as opções das perguntas de cada
	// passo. Passos sem opções não aparecem no mapa.
	MaxScoreByStep(ctx context.Context, stepIDs []int64) (map[int64]int, error)

	// Upserts usados pelo seed CSV (cmd/seed_survey). Preenchem o ID da
	// entidade no retorno do banco.
	UpsertStep(ctx context.Context, step *entity.SurveyStep) error
	UpsertQuestion(ctx context.Context, q *entity.Question) error
	UpsertOption(ctx context.Context, o *entity.QuestionOption) error
	UpsertStepQuestion(ctx context.Context, sq *entity.StepQuestion) error
}

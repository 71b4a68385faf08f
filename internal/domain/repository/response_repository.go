package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// StepAverage média dos scores das perguntas respondidas de um passo.
// Perguntas não respondidas ficam fora do denominador.
type StepAverage struct {
	Avg      decimal.Decimal
	Answered int
}

// SellerStep chave composta para contagens por seller e passo.
type SellerStep struct {
	SellerID int64
	StepID   int64
}

// AnswerExportRow linha do answers.csv: uma por pergunta de passo ativo,
// com left join na resposta do seller (campos de opção vazios se não respondida).
type AnswerExportRow struct {
	StepOrder     int
	StepKey       string
	StepTitle     string
	QuestionOrder int
	QuestionKey   string
	QuestionLabel string
	OptionValue   string
	OptionLabel   string
	OptionScore   *int
	AnsweredAt    *time.Time
}

// ResponseRepository persistência das respostas do questionário de maturidade.
type ResponseRepository interface {
	// BulkUpsert grava as respostas em lote; conflito em (seller_id, question_id)
	// sobrescreve a opção escolhida.
	BulkUpsert(ctx context.Context, responses []*entity.QuestionResponse) error
	// ListBySellerAndQuestions respostas existentes do seller para as perguntas dadas.
	ListBySellerAndQuestions(ctx context.Context, sellerID int64, questionIDs []int64) ([]*entity.QuestionResponse, error)
	// StepAverages média de score por passo sobre as perguntas respondidas pelo
	// seller (AVG em SQL, NUMERIC → decimal).
	StepAverages(ctx context.Context, sellerID int64, stepIDs []int64) (map[int64]StepAverage, error)
	// AnsweredCounts contagem de respostas por (seller, passo) para o dashboard.
	AnsweredCounts(ctx context.Context, sellerIDs, stepIDs []int64) (map[SellerStep]int, error)
	// ListAnswerExportRows linhas do answers.csv na ordem (passo, pergunta).
	ListAnswerExportRows(ctx context.Context, sellerID int64) ([]AnswerExportRow, error)
}

package repository

import (
	"context"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// ProgressRepository persistência do avanço do seller no wizard.
type ProgressRepository interface {
	// Get devolve o progresso do seller ou nil, nil se ainda não existir linha.
	Get(ctx context.Context, sellerID int64) (*entity.SellerProgress, error)
	// AdvanceStep upsert do progresso: last_step_order só cresce
	// (GREATEST no conflito), nunca regride.
	AdvanceStep(ctx context.Context, sellerID, stepID int64, stepOrder int) error
	// MarkReachedFinal marca a chegada ao passo final. Monotônico: nunca desfaz.
	MarkReachedFinal(ctx context.Context, sellerID int64, finalStepOrder int) error
	// SetReceivedReturn marca/desmarca a devolutiva recebida. markedBy é o usuário
	// da plataforma que marcou; ao desmarcar os metadados são limpos.
	SetReceivedReturn(ctx context.Context, sellerID int64, received bool, markedBy *int64) error
}

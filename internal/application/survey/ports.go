package survey

import (
	"context"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

// Repos repositórios atados à transação do seller.
type Repos struct {
	Survey    repository.SurveyRepository
	Responses repository.ResponseRepository
	Progress  repository.ProgressRepository
}

// TxRunner executa fn em uma transação com escopo do seller: as GUCs de RLS
// (app.role = seller, app.user_id) valem só dentro da transação, então duas
// requisições de sellers diferentes nunca enxergam as linhas uma da outra.
type TxRunner interface {
	AsSeller(ctx context.Context, sellerID int64, fn func(r Repos) error) error
}

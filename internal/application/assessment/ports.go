package assessment

import (
	"context"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

// Repos repositórios atados à transação do seller.
type Repos struct {
	Assessments repository.AssessmentRepository
}

// TxRunner executa fn em uma transação com escopo do seller (GUCs de RLS).
type TxRunner interface {
	AsSeller(ctx context.Context, sellerID int64, fn func(r Repos) error) error
}

package platform

import (
	"context"

	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

// Repos repositórios atados à transação com escopo da plataforma
// (app.role = platform enxerga todas as linhas).
type Repos struct {
	Users       repository.UserRepository
	Survey      repository.SurveyRepository
	Responses   repository.ResponseRepository
	Progress    repository.ProgressRepository
	Assessments repository.AssessmentRepository
	Listing     repository.SellerListingRepository
}

// TxRunner executa fn em uma transação com as GUCs de RLS da plataforma.
type TxRunner interface {
	AsPlatform(ctx context.Context, userID int64, fn func(r Repos) error) error
}

// ReportRenderer gera o PDF de resultados de um seller.
type ReportRenderer interface {
	Render(sellerEmail string, results *dto.ResultsResponse) ([]byte, error)
}

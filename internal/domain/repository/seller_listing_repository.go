package repository

import (
	"context"
	"time"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// SellerCursor posição de paginação: valor de ordenação + id da última linha da
// página anterior. O predicado é estritamente "menor que".
type SellerCursor struct {
	TS time.Time
	ID int64
}

// SellerListFilter filtros do dashboard da plataforma.
// Ponteiros nil significam "não filtrar".
type SellerListFilter struct {
	EmailQuery        string // substring case-insensitive no e-mail
	IndexDone         bool   // somente quem chegou ao passo final
	AssessmentSent    *bool  // true = só submitted; false = só não submitted
	Stale30           bool   // último acesso há mais de 30 dias ou nunca
	IndexVisible      *bool
	AssessmentVisible *bool
	Cursor            *SellerCursor
	Limit             int
}

// SellerListRow linha do dashboard com os joins de progresso e assessment.
type SellerListRow struct {
	ID                     int64
	Email                  string
	CreatedAt              time.Time
	LastLoginAt            *time.Time
	ShowIndex              bool
	ShowAssessment         bool
	ReachedFinalStep       bool
	ReachedFinalStepAt     *time.Time
	ReceivedReturn         bool
	ReceivedReturnMarkedAt *time.Time
	ReceivedReturnMarkedBy *int64
	AssessmentStatus       string // "" quando não há assessment
	AssessmentSubmittedAt  *time.Time
	AssessmentData         *entity.AssessmentData
}

// SellerListingRepository consulta de listagem paginada do dashboard.
type SellerListingRepository interface {
	// ListSellers devolve até Limit+1 linhas ordenadas por
	// coalesce(last_login_at, created_at) DESC, id DESC — a sobra indica hasMore.
	ListSellers(ctx context.Context, filter SellerListFilter) ([]SellerListRow, error)
}

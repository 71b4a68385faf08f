package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/inventa-shop/unlock-survey-api/internal/application/assessment"
	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/application/survey"
	"github.com/inventa-shop/unlock-survey-api/internal/domain"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
	"github.com/inventa-shop/unlock-survey-api/pkg/logger"
)

// Tamanho fixo da página do dashboard.
const pageSize = 25

// UseCase operações do time da plataforma: dashboard paginado, resultados de
// qualquer seller, marcações administrativas e exports.
type UseCase struct {
	tx  TxRunner
	pdf ReportRenderer
	log *logger.Logger
}

// NewUseCase constrói o caso de uso da plataforma.
func NewUseCase(tx TxRunner, pdf ReportRenderer, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, pdf: pdf, log: log}
}

// ListSellers página do dashboard: até 25 sellers ordenados pelo último acesso
// (quem nunca entrou ordena pela criação), com os agregados de avanço de cada
// um. O cursor devolvido abre a página seguinte; ausente na última página.
func (uc *UseCase) ListSellers(ctx context.Context, actorID int64, in dto.ListSellersRequest) (*dto.ListSellersResponse, error) {
	filter := repository.SellerListFilter{
		EmailQuery: in.Q,
		IndexDone:  in.IndexDone == "1",
		Stale30:    in.Stale30 == "1",
		Cursor:     DecodeCursor(in.Cursor),
		Limit:      pageSize,
	}
	if v := parseFlag(in.AssessmentSent); v != nil {
		filter.AssessmentSent = v
	}
	if v := parseFlag(in.IndexVisible); v != nil {
		filter.IndexVisible = v
	}
	if v := parseFlag(in.AssessmentVisible); v != nil {
		filter.AssessmentVisible = v
	}

	var out *dto.ListSellersResponse
	err := uc.tx.AsPlatform(ctx, actorID, func(r Repos) error {
		rows, err := r.Listing.ListSellers(ctx, filter)
		if err != nil {
			return fmt.Errorf("listar sellers: %w", err)
		}

		hasMore := len(rows) > pageSize
		if hasMore {
			rows = rows[:pageSize]
		}

		steps, err := r.Survey.ListActiveSteps(ctx)
		if err != nil {
			return fmt.Errorf("listar passos ativos: %w", err)
		}
		stepIDs := make([]int64, 0, len(steps))
		for _, s := range steps {
			stepIDs = append(stepIDs, s.ID)
		}
		totals, err := r.Survey.CountQuestionsByStep(ctx, stepIDs)
		if err != nil {
			return fmt.Errorf("contar perguntas: %w", err)
		}
		indexTotal := 0
		for _, n := range totals {
			indexTotal += n
		}

		sellerIDs := make([]int64, 0, len(rows))
		for _, row := range rows {
			sellerIDs = append(sellerIDs, row.ID)
		}
		counts, err := r.Responses.AnsweredCounts(ctx, sellerIDs, stepIDs)
		if err != nil {
			return fmt.Errorf("contar respostas: %w", err)
		}
		answeredBySeller := make(map[int64]int, len(rows))
		for key, n := range counts {
			answeredBySeller[key.SellerID] += n
		}

		sellers := make([]dto.SellerSummary, 0, len(rows))
		for _, row := range rows {
			s := dto.SellerSummary{
				ID:                    row.ID,
				Email:                 row.Email,
				LastLoginAt:           row.LastLoginAt,
				ShowIndex:             row.ShowIndex,
				ShowAssessment:        row.ShowAssessment,
				ReachedResultsAt:      row.ReachedFinalStepAt,
				ReceivedReturn:        row.ReceivedReturn,
				IndexAnswered:         answeredBySeller[row.ID],
				IndexTotal:            indexTotal,
				AssessmentTotal:       assessment.TotalRequiredFields,
				AssessmentStatus:      row.AssessmentStatus,
				AssessmentSubmittedAt: row.AssessmentSubmittedAt,
			}
			if row.AssessmentData != nil {
				s.AssessmentAnswered = assessment.CountAnsweredFields(*row.AssessmentData)
			}
			sellers = append(sellers, s)
		}

		out = &dto.ListSellersResponse{Sellers: sellers, Limit: pageSize}
		if hasMore {
			last := rows[len(rows)-1]
			out.NextCursor = EncodeCursor(sortTimestamp(last), last.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SellerResults agregação por dimensão de um seller qualquer, com o índice
// geral — a mesma conta que o próprio seller vê, sob o escopo da plataforma.
func (uc *UseCase) SellerResults(ctx context.Context, actorID, sellerID int64) (*dto.ResultsResponse, error) {
	var out *dto.ResultsResponse
	err := uc.tx.AsPlatform(ctx, actorID, func(r Repos) error {
		if _, err := uc.requireSeller(ctx, r, sellerID); err != nil {
			return err
		}
		dims, err := survey.AggregateDimensions(ctx, r.Survey, r.Responses, sellerID)
		if err != nil {
			return err
		}
		out = &dto.ResultsResponse{Dimensions: dims, GeneralIndex: survey.GeneralIndex(dims)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetReceivedReturn marca ou desmarca a devolutiva recebida de um seller,
// registrando quem marcou. Desmarcar limpa os metadados.
func (uc *UseCase) SetReceivedReturn(ctx context.Context, actorID, sellerID int64, received bool) error {
	return uc.tx.AsPlatform(ctx, actorID, func(r Repos) error {
		if _, err := uc.requireSeller(ctx, r, sellerID); err != nil {
			return err
		}
		var markedBy *int64
		if received {
			markedBy = &actorID
		}
		if err := r.Progress.SetReceivedReturn(ctx, sellerID, received, markedBy); err != nil {
			return err
		}
		uc.log.Info().
			Int64("seller_id", sellerID).
			Int64("actor_id", actorID).
			Bool("received", received).
			Msg("devolutiva atualizada")
		return nil
	})
}

// SetHomeCardVisibility alterna a visibilidade dos cards da home do seller:
// card 1 = índice de maturidade, card 2 = assessment.
func (uc *UseCase) SetHomeCardVisibility(ctx context.Context, actorID, sellerID int64, card int, visible bool) error {
	if card != 1 && card != 2 {
		return domain.NewSurveyError(domain.CodeInvalidInput, "card deve ser 1 (índice) ou 2 (assessment)")
	}
	return uc.tx.AsPlatform(ctx, actorID, func(r Repos) error {
		if _, err := uc.requireSeller(ctx, r, sellerID); err != nil {
			return err
		}
		if err := r.Users.SetCardVisibility(ctx, sellerID, card, visible); err != nil {
			return err
		}
		uc.log.Info().
			Int64("seller_id", sellerID).
			Int64("actor_id", actorID).
			Int("card", card).
			Bool("visible", visible).
			Msg("visibilidade de card atualizada")
		return nil
	})
}

// ResultsPDF gera o relatório de resultados do seller em PDF.
// Devolve o nome do arquivo e o conteúdo.
func (uc *UseCase) ResultsPDF(ctx context.Context, actorID, sellerID int64) (string, []byte, error) {
	var (
		email string
		out   *dto.ResultsResponse
	)
	err := uc.tx.AsPlatform(ctx, actorID, func(r Repos) error {
		seller, err := uc.requireSeller(ctx, r, sellerID)
		if err != nil {
			return err
		}
		email = seller.Email
		dims, err := survey.AggregateDimensions(ctx, r.Survey, r.Responses, sellerID)
		if err != nil {
			return err
		}
		out = &dto.ResultsResponse{Dimensions: dims, GeneralIndex: survey.GeneralIndex(dims)}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	pdf, err := uc.pdf.Render(email, out)
	if err != nil {
		return "", nil, fmt.Errorf("gerar relatório: %w", err)
	}
	return fmt.Sprintf("report-%d.pdf", sellerID), pdf, nil
}

// requireSeller resolve o seller por id ou devolve ErrUserNotFound.
func (uc *UseCase) requireSeller(ctx context.Context, r Repos, sellerID int64) (*entity.User, error) {
	if sellerID <= 0 {
		return nil, domain.ErrUserNotFound
	}
	u, err := r.Users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("buscar seller %d: %w", sellerID, err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// sortTimestamp valor de ordenação da listagem: último acesso, ou criação para
// quem nunca entrou.
func sortTimestamp(row repository.SellerListRow) time.Time {
	if row.LastLoginAt != nil {
		return *row.LastLoginAt
	}
	return row.CreatedAt
}

// parseFlag converte "1"/"0" em ponteiro; qualquer outro valor não filtra.
func parseFlag(s string) *bool {
	switch s {
	case "1":
		v := true
		return &v
	case "0":
		v := false
		return &v
	}
	return nil
}

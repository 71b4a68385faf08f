package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventa-shop/unlock-survey-api/internal/application/assessment"
	"github.com/inventa-shop/unlock-survey-api/internal/application/platform"
	"github.com/inventa-shop/unlock-survey-api/internal/application/survey"
)

// Garantias de que os runners implementam os portos de transação das camadas de aplicação.
var (
	_ survey.TxRunner     = (*TxRunner)(nil)
	_ platform.TxRunner   = (*TxRunner)(nil)
	_ assessment.TxRunner = (*AssessmentTxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL com as GUCs
// de RLS do chamador. As policies filtram por current_setting('app.role') e
// current_setting('app.user_id'); como as GUCs são locais à transação
// (set_config com is_local = true), conexões devolvidas ao pool voltam limpas.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// AsSeller roda fn com escopo de um seller: as policies só deixam ver e
// escrever as linhas do próprio seller.
func (r *TxRunner) AsSeller(ctx context.Context, sellerID int64, fn func(repos survey.Repos) error) error {
	return r.run(ctx, "seller", sellerID, func(q Querier) error {
		return fn(survey.Repos{
			Survey:    NewSurveyRepository(q),
			Responses: NewResponseRepository(q),
			Progress:  NewProgressRepository(q),
		})
	})
}

// AssessmentTxRunner expõe o escopo de seller com os repositórios do
// assessment. Tipo separado porque o porto do assessment também chama o
// método AsSeller, com outra assinatura.
type AssessmentTxRunner struct {
	inner *TxRunner
}

// Assessment devolve o runner no formato do porto do assessment.
func (r *TxRunner) Assessment() *AssessmentTxRunner {
	return &AssessmentTxRunner{inner: r}
}

// AsSeller roda fn com escopo de um seller sobre o repositório de assessment.
func (a *AssessmentTxRunner) AsSeller(ctx context.Context, sellerID int64, fn func(repos assessment.Repos) error) error {
	return a.inner.run(ctx, "seller", sellerID, func(q Querier) error {
		return fn(assessment.Repos{Assessments: NewAssessmentRepository(q)})
	})
}

// AsPlatform roda fn com escopo da plataforma: visão completa das linhas.
func (r *TxRunner) AsPlatform(ctx context.Context, userID int64, fn func(repos platform.Repos) error) error {
	return r.run(ctx, "platform", userID, func(q Querier) error {
		return fn(platform.Repos{
			Users:       NewUserRepository(q),
			Survey:      NewSurveyRepository(q),
			Responses:   NewResponseRepository(q),
			Progress:    NewProgressRepository(q),
			Assessments: NewAssessmentRepository(q),
			Listing:     NewSellerListingRepository(q),
		})
	})
}

func (r *TxRunner) run(ctx context.Context, role string, userID int64, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT set_config('app.role', $1, true)`, role); err != nil {
		return fmt.Errorf("set app.role: %w", err)
	}
	if _, err := tx.Exec(ctx, `SELECT set_config('app.user_id', $1, true)`, strconv.FormatInt(userID, 10)); err != nil {
		return fmt.Errorf("set app.user_id: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package assessment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventa-shop/unlock-survey-api/internal/application/assessment"
	"github.com/inventa-shop/unlock-survey-api/internal/domain"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake em memória do repositório de assessment + txrunner passthrough.
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssessmentRepo struct {
	bySeller map[int64]*entity.SellerAssessment
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{bySeller: make(map[int64]*entity.SellerAssessment)}
}

func (f *fakeAssessmentRepo) Get(_ context.Context, sellerID int64) (*entity.SellerAssessment, error) {
	return f.bySeller[sellerID], nil
}

func (f *fakeAssessmentRepo) GetStatus(_ context.Context, sellerID int64) (string, error) {
	if a, ok := f.bySeller[sellerID]; ok {
		return a.Status, nil
	}
	return "", nil
}

func (f *fakeAssessmentRepo) UpsertDraft(_ context.Context, sellerID int64, data entity.AssessmentData) error {
	f.bySeller[sellerID] = &entity.SellerAssessment{
		SellerID:  sellerID,
		Status:    entity.AssessmentDraft,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (f *fakeAssessmentRepo) UpsertSubmitted(_ context.Context, sellerID int64, data entity.AssessmentData, submittedAt time.Time) error {
	f.bySeller[sellerID] = &entity.SellerAssessment{
		SellerID:    sellerID,
		Status:      entity.AssessmentSubmitted,
		Data:        data,
		SubmittedAt: &submittedAt,
		UpdatedAt:   submittedAt,
	}
	return nil
}

type fakeTxRunner struct {
	repos assessment.Repos
}

func (f *fakeTxRunner) AsSeller(_ context.Context, _ int64, fn func(assessment.Repos) error) error {
	return fn(f.repos)
}

const sellerID = int64(7)

func buildUseCase() (*assessment.UseCase, *fakeAssessmentRepo) {
	repo := newFakeAssessmentRepo()
	uc := assessment.NewUseCase(&fakeTxRunner{repos: assessment.Repos{Assessments: repo}})
	return uc, repo
}

func fp(v float64) *float64 { return &v }

// validData blob que passa no checklist inteiro.
func validData() entity.AssessmentData {
	return entity.AssessmentData{
		Solution: "unlock_full_service",
		VendaPorRegiao: &entity.RegionalSales{
			Sul: fp(10), Sudeste: fp(50), Norte: fp(5), Nordeste: fp(20), CentroOeste: fp(15),
		},
		ModeloFiscal:          &entity.FiscalModel{CompraEVenda: true},
		VolumeMensalPedidos:   fp(1200),
		ItensPorPedido:        fp(1.8),
		SKUs:                  fp(350),
		TicketMedio:           fp(189.9),
		Canais:                "site próprio, Mercado Livre",
		GMVFlagshipMensal:     fp(200000),
		GMVMarketplacesMensal: fp(80000),
		MesesCoberturaEstoque: fp(2.5),
		PerfilProduto:         "Eletrônicos de médio valor",
		PesoMedioKg:           fp(0.6),
		DimensoesCm:           &entity.Dimensions{C: fp(20), L: fp(15), A: fp(8)},
		ReversaPercent:        fp(3),
		ProjetosEspeciais:     "Kits de datas sazonais",
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var se *domain.SurveyError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, code, se.Code)
}

func TestSaveDraft_GravaEPermiteReescrever(t *testing.T) {
	uc, repo := buildUseCase()
	ctx := context.Background()

	d1 := entity.AssessmentData{Canais: "só site"}
	require.NoError(t, uc.SaveDraft(ctx, sellerID, d1))

	d2 := entity.AssessmentData{Canais: "site e marketplaces"}
	require.NoError(t, uc.SaveDraft(ctx, sellerID, d2))

	a := repo.bySeller[sellerID]
	require.NotNil(t, a)
	assert.Equal(t, entity.AssessmentDraft, a.Status)
	assert.Equal(t, "site e marketplaces", a.Data.Canais, "o rascunho mais recente deve prevalecer")
}

func TestSaveDraft_RascunhoIncompletoEhAceito(t *testing.T) {
	uc, _ := buildUseCase()
	// Rascunho não passa pelo checklist: blob vazio é válido.
	require.NoError(t, uc.SaveDraft(context.Background(), sellerID, entity.AssessmentData{}))
}

func TestSaveDraft_BloqueadoAposEnvio(t *testing.T) {
	uc, _ := buildUseCase()
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, sellerID, validData()))

	err := uc.SaveDraft(ctx, sellerID, entity.AssessmentData{Canais: "tentativa tardia"})
	requireCode(t, err, domain.CodeAlreadySubmitted)
}

func TestSubmit_GravaComCarimbo(t *testing.T) {
	uc, repo := buildUseCase()

	require.NoError(t, uc.Submit(context.Background(), sellerID, validData()))

	a := repo.bySeller[sellerID]
	require.NotNil(t, a)
	assert.Equal(t, entity.AssessmentSubmitted, a.Status)
	require.NotNil(t, a.SubmittedAt)
	assert.WithinDuration(t, time.Now(), *a.SubmittedAt, time.Minute)
}

func TestSubmit_ReenvioBloqueado(t *testing.T) {
	uc, _ := buildUseCase()
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, sellerID, validData()))
	err := uc.Submit(ctx, sellerID, validData())
	requireCode(t, err, domain.CodeAlreadySubmitted)
}

func TestSubmit_PrimeiraFalhaVence(t *testing.T) {
	uc, repo := buildUseCase()
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*entity.AssessmentData)
		message string
	}{
		{
			name:    "solução inválida",
			mutate:  func(d *entity.AssessmentData) { d.Solution = "unlock_magico" },
			message: "Selecione uma solução",
		},
		{
			name:    "região faltando",
			mutate:  func(d *entity.AssessmentData) { d.VendaPorRegiao.Nordeste = nil },
			message: "Preencha venda para a região: nordeste",
		},
		{
			name:    "região negativa",
			mutate:  func(d *entity.AssessmentData) { d.VendaPorRegiao.Sul = fp(-1) },
			message: "Preencha venda para a região: sul",
		},
		{
			name:    "nenhum modelo fiscal",
			mutate:  func(d *entity.AssessmentData) { d.ModeloFiscal = &entity.FiscalModel{} },
			message: "Selecione pelo menos um modelo fiscal",
		},
		{
			name:    "itens por pedido zero",
			mutate:  func(d *entity.AssessmentData) { d.ItensPorPedido = fp(0) },
			message: "Informe o número médio de itens por pedido",
		},
		{
			name:    "canais em branco",
			mutate:  func(d *entity.AssessmentData) { d.Canais = "   " },
			message: "Informe os canais de vendas",
		},
		{
			name:    "dimensão faltando",
			mutate:  func(d *entity.AssessmentData) { d.DimensoesCm.A = nil },
			message: "Informe dimensões C, L, A (cm)",
		},
		{
			name:    "reversa acima de 100",
			mutate:  func(d *entity.AssessmentData) { d.ReversaPercent = fp(101) },
			message: "Informe % de logística reversa (0–100)",
		},
		{
			name:    "projetos especiais em branco",
			mutate:  func(d *entity.AssessmentData) { d.ProjetosEspeciais = "" },
			message: "Descreva projetos especiais",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := validData()
			tc.mutate(&data)

			err := uc.Submit(ctx, sellerID, data)
			var se *domain.SurveyError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, domain.CodeValidationError, se.Code)
			assert.Equal(t, tc.message, se.Message)
		})
	}

	assert.Empty(t, repo.bySeller, "nenhum envio inválido deve ser persistido")
}

func TestSubmit_SolucaoInvalidaVenceOutrasFalhas(t *testing.T) {
	uc, _ := buildUseCase()

	// Blob com várias falhas: a mensagem é sempre a da primeira do checklist.
	err := uc.Submit(context.Background(), sellerID, entity.AssessmentData{})
	var se *domain.SurveyError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Selecione uma solução", se.Message)
}

func TestSubmit_ComentariosOpcional(t *testing.T) {
	uc, _ := buildUseCase()

	data := validData()
	data.Comentarios = ""
	require.NoError(t, uc.Submit(context.Background(), sellerID, data))
}

func TestGet_InexistenteDevolveNil(t *testing.T) {
	uc, _ := buildUseCase()

	out, err := uc.Get(context.Background(), sellerID)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGet_DevolveBlobAtual(t *testing.T) {
	uc, _ := buildUseCase()
	ctx := context.Background()

	require.NoError(t, uc.Submit(ctx, sellerID, validData()))

	out, err := uc.Get(ctx, sellerID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.AssessmentSubmitted, out.Status)
	assert.Equal(t, "unlock_full_service", out.Data.Solution)
	assert.NotNil(t, out.SubmittedAt)
}

func TestCountAnsweredFields(t *testing.T) {
	assert.Equal(t, 0, assessment.CountAnsweredFields(entity.AssessmentData{}))
	assert.Equal(t, assessment.TotalRequiredFields, assessment.CountAnsweredFields(validData()))

	parcial := entity.AssessmentData{
		Solution: "unlock_response",
		Canais:   "marketplaces",
		SKUs:     fp(10),
	}
	assert.Equal(t, 3, assessment.CountAnsweredFields(parcial))
}

package survey_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/application/survey"
	"github.com/inventa-shop/unlock-survey-api/internal/domain"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
	"github.com/inventa-shop/unlock-survey-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cenário padrão: dois passos ativos, cada um com duas perguntas e as quatro
// opções fixas {0,1,3,5}. IDs de opção = questionID*10 + (índice da opção),
// para facilitar asserções.
// ──────────────────────────────────────────────────────────────────────────────

const sellerID = int64(42)

func buildFixture() (*fakeSurveyRepo, *fakeResponseRepo, *fakeProgressRepo) {
	sr := &fakeSurveyRepo{
		steps: []*entity.SurveyStep{
			{ID: 1, Key: "pagamentos", Title: "Pagamentos", Order: 1, IsActive: true},
			{ID: 2, Key: "logistica", Title: "Logística", Order: 2, IsActive: true},
		},
		questions: map[int64][]repository.StepQuestionRow{
			1: {
				{QuestionID: 10, QuestionKey: "pix", QuestionLabel: "Aceita Pix?", Order: 1, Required: true},
				{QuestionID: 11, QuestionKey: "boleto", QuestionLabel: "Aceita boleto?", Order: 2, Required: true},
			},
			2: {
				{QuestionID: 20, QuestionKey: "frete", QuestionLabel: "Frete próprio?", Order: 1, Required: true},
				{QuestionID: 21, QuestionKey: "reversa", QuestionLabel: "Tem logística reversa?", Order: 2, Required: true},
			},
		},
	}
	for _, qs := range sr.questions {
		for _, q := range qs {
			for i, v := range entity.OptionValues {
				score := map[string]int{"0": 0, "1": 1, "3": 3, "5": 5}[v]
				sr.options = append(sr.options, &entity.QuestionOption{
					ID:         q.QuestionID*10 + int64(i),
					QuestionID: q.QuestionID,
					Value:      v,
					Label:      "Opção " + v,
					Order:      i + 1,
					Score:      score,
					IsActive:   true,
				})
			}
		}
	}
	return sr, newFakeResponseRepo(sr), newFakeProgressRepo()
}

func buildUseCase(sr *fakeSurveyRepo, rr *fakeResponseRepo, pr *fakeProgressRepo) *survey.UseCase {
	tx := &fakeTxRunner{repos: survey.Repos{Survey: sr, Responses: rr, Progress: pr}}
	return survey.NewUseCase(tx, config.SurveyConfig{LockResultsNav: true, FinalStepOrder: 8})
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var se *domain.SurveyError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, code, se.Code)
}

func TestSaveStepAnswers_GravaEAvancaProgresso(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)

	err := uc.SaveStepAnswers(context.Background(), sellerID, "pagamentos", dto.SaveStepAnswersRequest{
		Answers: []dto.StepAnswer{
			{QuestionKey: "pix", OptionValue: "5"},
			{QuestionKey: "boleto", OptionValue: "3"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, rr.byKey, 2, "as duas respostas devem ser gravadas")
	p, _ := pr.Get(context.Background(), sellerID)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.LastStepOrder)
}

func TestSaveStepAnswers_ReenvioSobrescreveOpcao(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)

	req := func(v string) dto.SaveStepAnswersRequest {
		return dto.SaveStepAnswersRequest{Answers: []dto.StepAnswer{{QuestionKey: "pix", OptionValue: v}}}
	}
	require.NoError(t, uc.SaveStepAnswers(context.Background(), sellerID, "pagamentos", req("1")))
	require.NoError(t, uc.SaveStepAnswers(context.Background(), sellerID, "pagamentos", req("5")))

	assert.Len(t, rr.byKey, 1, "reenvio não deve duplicar a resposta")
	r := rr.byKey[responseKey{sellerID, 10}]
	require.NotNil(t, r)
	assert.Equal(t, 5, rr.scoreByOption[r.OptionID], "a última opção enviada deve prevalecer")
}

func TestSaveStepAnswers_ProgressoNuncaRegride(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)

	ans := func(key, v string) dto.SaveStepAnswersRequest {
		return dto.SaveStepAnswersRequest{Answers: []dto.StepAnswer{{QuestionKey: key, OptionValue: v}}}
	}
	require.NoError(t, uc.SaveStepAnswers(context.Background(), sellerID, "logistica", ans("frete", "3")))
	require.NoError(t, uc.SaveStepAnswers(context.Background(), sellerID, "pagamentos", ans("pix", "3")))

	p, _ := pr.Get(context.Background(), sellerID)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.LastStepOrder, "voltar a um passo anterior não deve reduzir last_step_order")
}

func TestSaveStepAnswers_Validacoes(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)
	ctx := context.Background()

	t.Run("entrada vazia", func(t *testing.T) {
		err := uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{})
		requireCode(t, err, domain.CodeInvalidInput)
	})

	t.Run("valor fora de {0,1,3,5}", func(t *testing.T) {
		err := uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{
			Answers: []dto.StepAnswer{{QuestionKey: "pix", OptionValue: "2"}},
		})
		requireCode(t, err, domain.CodeInvalidInput)
	})

	t.Run("passo inexistente", func(t *testing.T) {
		err := uc.SaveStepAnswers(ctx, sellerID, "nao-existe", dto.SaveStepAnswersRequest{
			Answers: []dto.StepAnswer{{QuestionKey: "pix", OptionValue: "5"}},
		})
		requireCode(t, err, domain.CodeStepNotFound)
	})

	t.Run("pergunta de outro passo", func(t *testing.T) {
		err := uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{
			Answers: []dto.StepAnswer{{QuestionKey: "frete", OptionValue: "5"}},
		})
		requireCode(t, err, domain.CodeQuestionNotInStep)
	})

	assert.Empty(t, rr.byKey, "nenhuma validação falha deve deixar resposta gravada")
}

func TestSaveStepAnswers_BloqueadoAposConcluir(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)
	ctx := context.Background()

	require.NoError(t, uc.MarkReachedFinalStep(ctx, sellerID))

	err := uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{
		Answers: []dto.StepAnswer{{QuestionKey: "pix", OptionValue: "5"}},
	})
	requireCode(t, err, domain.CodeSurveyCompleted)
	assert.Empty(t, rr.byKey)
}

func TestSaveStepAnswers_TravaDesligadaPermiteReenvio(t *testing.T) {
	sr, rr, pr := buildFixture()
	tx := &fakeTxRunner{repos: survey.Repos{Survey: sr, Responses: rr, Progress: pr}}
	uc := survey.NewUseCase(tx, config.SurveyConfig{LockResultsNav: false, FinalStepOrder: 8})
	ctx := context.Background()

	// Sem trava, MarkReachedFinalStep é no-op e o reenvio continua aceito.
	require.NoError(t, uc.MarkReachedFinalStep(ctx, sellerID))
	p, _ := pr.Get(ctx, sellerID)
	assert.Nil(t, p, "sem trava a conclusão não deve ser persistida")

	err := uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{
		Answers: []dto.StepAnswer{{QuestionKey: "pix", OptionValue: "5"}},
	})
	require.NoError(t, err)
}

func TestGetStepWithQuestions_DevolveSelecaoPrevia(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)
	ctx := context.Background()

	require.NoError(t, uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{
		Answers: []dto.StepAnswer{{QuestionKey: "pix", OptionValue: "3"}},
	}))

	out, err := uc.GetStepWithQuestions(ctx, sellerID, "pagamentos")
	require.NoError(t, err)

	assert.Equal(t, "pagamentos", out.Step.Key)
	require.Len(t, out.Questions, 2)
	assert.Equal(t, "3", out.Questions[0].Selected, "pix foi respondida com 3")
	assert.Empty(t, out.Questions[1].Selected, "boleto ainda não foi respondida")
	require.Len(t, out.Questions[0].Options, 4)
	assert.Equal(t, "0", out.Questions[0].Options[0].Value)
}

func TestGetStepWithQuestions_PassoInativo(t *testing.T) {
	sr, rr, pr := buildFixture()
	sr.steps[0].IsActive = false
	uc := buildUseCase(sr, rr, pr)

	_, err := uc.GetStepWithQuestions(context.Background(), sellerID, "pagamentos")
	requireCode(t, err, domain.CodeStepNotFound)
}

func TestResultsByDimension_MediasEIndiceGeral(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)
	ctx := context.Background()

	// Passo 1: respostas 5 e 3 → média 4.00. Passo 2: sem respostas → 0.
	require.NoError(t, uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{
		Answers: []dto.StepAnswer{
			{QuestionKey: "pix", OptionValue: "5"},
			{QuestionKey: "boleto", OptionValue: "3"},
		},
	}))

	out, err := uc.ResultsByDimension(ctx, sellerID)
	require.NoError(t, err)
	require.Len(t, out.Dimensions, 2)

	pagamentos, logistica := out.Dimensions[0], out.Dimensions[1]
	assert.Equal(t, 4.0, pagamentos.AverageScore)
	assert.Equal(t, 2, pagamentos.AnsweredCount)
	assert.Equal(t, 2, pagamentos.QuestionCount)
	assert.Equal(t, 5, pagamentos.MaxScore)

	assert.Equal(t, 0.0, logistica.AverageScore, "passo sem respostas entra com média zero")
	assert.Equal(t, 0, logistica.AnsweredCount)

	// Índice geral: (4.00 + 0) / 2 = 2.0 — passo não respondido pesa no índice.
	assert.Equal(t, 2.0, out.GeneralIndex)
}

func TestResultsByDimension_MediaIgnoraNaoRespondidasDentroDoPasso(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)
	ctx := context.Background()

	// Só uma das duas perguntas do passo respondida: a média divide por 1, não 2.
	require.NoError(t, uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{
		Answers: []dto.StepAnswer{{QuestionKey: "pix", OptionValue: "5"}},
	}))

	out, err := uc.ResultsByDimension(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Dimensions[0].AverageScore)
	assert.Equal(t, 1, out.Dimensions[0].AnsweredCount)
	// (5.00 + 0) / 2 = 2.5
	assert.Equal(t, 2.5, out.GeneralIndex)
}

func TestResultsByDimension_ArredondamentoDuasCasasUmaCasa(t *testing.T) {
	sr, rr, pr := buildFixture()
	uc := buildUseCase(sr, rr, pr)
	ctx := context.Background()

	// Passo 1: 1 e 0 → 0.50. Passo 2: 5 e 3 → 4.00. Geral: 4.5/2 = 2.25 → 2.3.
	require.NoError(t, uc.SaveStepAnswers(ctx, sellerID, "pagamentos", dto.SaveStepAnswersRequest{
		Answers: []dto.StepAnswer{
			{QuestionKey: "pix", OptionValue: "1"},
			{QuestionKey: "boleto", OptionValue: "0"},
		},
	}))
	require.NoError(t, uc.SaveStepAnswers(ctx, sellerID, "logistica", dto.SaveStepAnswersRequest{
		Answers: []dto.StepAnswer{
			{QuestionKey: "frete", OptionValue: "5"},
			{QuestionKey: "reversa", OptionValue: "3"},
		},
	}))

	out, err := uc.ResultsByDimension(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, out.Dimensions[0].AverageScore)
	assert.Equal(t, 4.0, out.Dimensions[1].AverageScore)
	assert.Equal(t, 2.3, out.GeneralIndex)
}

func TestGeneralIndex_SemDimensoes(t *testing.T) {
	assert.Equal(t, 0.0, survey.GeneralIndex(nil))
	assert.Equal(t, 0.0, survey.GeneralIndex([]dto.DimensionResult{}))
}

package survey

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/domain"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
	"github.com/inventa-shop/unlock-survey-api/pkg/config"
)

// UseCase fluxos do wizard de maturidade: gravação de respostas por passo,
// leitura de passo com seleções prévias e agregação de resultados.
type UseCase struct {
	tx  TxRunner
	cfg config.SurveyConfig
}

// NewUseCase constrói o caso de uso do questionário.
func NewUseCase(tx TxRunner, cfg config.SurveyConfig) *UseCase {
	return &UseCase{tx: tx, cfg: cfg}
}

// SaveStepAnswers grava as respostas de um passo em uma única transação:
// valida o passo, a pertinência das perguntas e as opções; faz upsert em lote
// das respostas e avança o progresso (last_step_order nunca regride).
// Com a trava de navegação ligada, um seller que já chegou ao passo final
// recebe SURVEY_COMPLETED e nada é gravado.
func (uc *UseCase) SaveStepAnswers(ctx context.Context, sellerID int64, stepKey string, in dto.SaveStepAnswersRequest) error {
	if stepKey == "" || len(in.Answers) == 0 {
		return domain.NewSurveyError(domain.CodeInvalidInput, "stepKey e answers não vazios são obrigatórios")
	}
	for _, a := range in.Answers {
		if a.QuestionKey == "" || !entity.IsOptionValue(a.OptionValue) {
			return domain.NewSurveyError(domain.CodeInvalidInput, "cada resposta precisa de question_key e option_value em {0,1,3,5}")
		}
	}

	return uc.tx.AsSeller(ctx, sellerID, func(r Repos) error {
		if err := uc.guardCompleted(ctx, r.Progress, sellerID); err != nil {
			return err
		}

		step, err := r.Survey.GetStepByKey(ctx, stepKey)
		if err != nil {
			return fmt.Errorf("buscar passo %q: %w", stepKey, err)
		}
		if step == nil || !step.IsActive {
			return domain.NewSurveyError(domain.CodeStepNotFound, "passo não encontrado ou inativo")
		}

		stepQuestions, err := r.Survey.ListStepQuestions(ctx, step.ID)
		if err != nil {
			return fmt.Errorf("listar perguntas do passo: %w", err)
		}
		idByKey := make(map[string]int64, len(stepQuestions))
		for _, q := range stepQuestions {
			idByKey[q.QuestionKey] = q.QuestionID
		}
		questionIDs := make([]int64, 0, len(in.Answers))
		for _, a := range in.Answers {
			qID, ok := idByKey[a.QuestionKey]
			if !ok {
				return domain.NewSurveyError(domain.CodeQuestionNotInStep,
					fmt.Sprintf("a pergunta %s não pertence ao passo %s", a.QuestionKey, stepKey))
			}
			questionIDs = append(questionIDs, qID)
		}

		options, err := r.Survey.ListOptionsByQuestions(ctx, questionIDs)
		if err != nil {
			return fmt.Errorf("listar opções: %w", err)
		}
		optionID := make(map[string]int64, len(options))
		for _, o := range options {
			optionID[optionKey(o.QuestionID, o.Value)] = o.ID
		}

		responses := make([]*entity.QuestionResponse, 0, len(in.Answers))
		for _, a := range in.Answers {
			qID := idByKey[a.QuestionKey]
			oID, ok := optionID[optionKey(qID, a.OptionValue)]
			if !ok {
				return domain.NewSurveyError(domain.CodeOptionNotFound, "opção não encontrada")
			}
			responses = append(responses, &entity.QuestionResponse{
				SellerID:   sellerID,
				QuestionID: qID,
				OptionID:   oID,
			})
		}

		if err := r.Responses.BulkUpsert(ctx, responses); err != nil {
			return fmt.Errorf("gravar respostas: %w", err)
		}
		if err := r.Progress.AdvanceStep(ctx, sellerID, step.ID, step.Order); err != nil {
			return fmt.Errorf("avançar progresso: %w", err)
		}
		return nil
	})
}

// GetStepWithQuestions devolve o passo com perguntas e opções na ordem definida
// e o valor já selecionado pelo seller em cada pergunta. Sem efeitos colaterais.
// Mesmo guard de conclusão do SaveStepAnswers.
func (uc *UseCase) GetStepWithQuestions(ctx context.Context, sellerID int64, stepKey string) (*dto.StepWithQuestionsResponse, error) {
	if stepKey == "" {
		return nil, domain.NewSurveyError(domain.CodeInvalidInput, "stepKey é obrigatório")
	}

	var out *dto.StepWithQuestionsResponse
	err := uc.tx.AsSeller(ctx, sellerID, func(r Repos) error {
		if err := uc.guardCompleted(ctx, r.Progress, sellerID); err != nil {
			return err
		}

		step, err := r.Survey.GetStepByKey(ctx, stepKey)
		if err != nil {
			return fmt.Errorf("buscar passo %q: %w", stepKey, err)
		}
		if step == nil || !step.IsActive {
			return domain.NewSurveyError(domain.CodeStepNotFound, "passo não encontrado ou inativo")
		}

		questions, err := r.Survey.ListStepQuestions(ctx, step.ID)
		if err != nil {
			return fmt.Errorf("listar perguntas do passo: %w", err)
		}
		questionIDs := make([]int64, 0, len(questions))
		for _, q := range questions {
			questionIDs = append(questionIDs, q.QuestionID)
		}

		options, err := r.Survey.ListOptionsByQuestions(ctx, questionIDs)
		if err != nil {
			return fmt.Errorf("listar opções: %w", err)
		}
		optionsByQuestion := make(map[int64][]dto.QuestionOption)
		valueByOptionID := make(map[int64]string, len(options))
		for _, o := range options {
			if !entity.IsOptionValue(o.Value) {
				continue
			}
			optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], dto.QuestionOption{
				Value: o.Value,
				Label: o.Label,
				Order: o.Order,
			})
			valueByOptionID[o.ID] = o.Value
		}

		responses, err := r.Responses.ListBySellerAndQuestions(ctx, sellerID, questionIDs)
		if err != nil {
			return fmt.Errorf("listar respostas: %w", err)
		}
		selectedOption := make(map[int64]int64, len(responses))
		for _, resp := range responses {
			selectedOption[resp.QuestionID] = resp.OptionID
		}

		items := make([]dto.StepQuestion, 0, len(questions))
		for _, q := range questions {
			item := dto.StepQuestion{
				Key:     q.QuestionKey,
				Label:   q.QuestionLabel,
				Order:   q.Order,
				Options: optionsByQuestion[q.QuestionID],
			}
			if oID, ok := selectedOption[q.QuestionID]; ok {
				item.Selected = valueByOptionID[oID]
			}
			items = append(items, item)
		}

		out = &dto.StepWithQuestionsResponse{
			Step:      dto.StepInfo{Key: step.Key, Title: step.Title, Order: step.Order},
			Questions: items,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkReachedFinalStep marca a chegada ao passo final, travando a navegação
// para trás. Com a flag desligada é um no-op: a conclusão não é persistida.
func (uc *UseCase) MarkReachedFinalStep(ctx context.Context, sellerID int64) error {
	if !uc.cfg.LockResultsNav {
		return nil
	}
	return uc.tx.AsSeller(ctx, sellerID, func(r Repos) error {
		return r.Progress.MarkReachedFinal(ctx, sellerID, uc.cfg.FinalStepOrder)
	})
}

// GetProgress devolve o progresso atual do seller, ou nil se nunca gravou nada.
// Alimenta a home do seller junto com a visibilidade dos cards.
func (uc *UseCase) GetProgress(ctx context.Context, sellerID int64) (*entity.SellerProgress, error) {
	var out *entity.SellerProgress
	err := uc.tx.AsSeller(ctx, sellerID, func(r Repos) error {
		p, err := r.Progress.Get(ctx, sellerID)
		if err != nil {
			return fmt.Errorf("buscar progresso: %w", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResultsByDimension agrega os resultados do seller por passo ativo com pergunta:
// média só sobre as perguntas respondidas (2 casas), maior score atingível
// (5 por omissão) e contagens. O índice geral é a média simples dessas médias,
// com passos não respondidos entrando como zero, arredondada a 1 casa.
func (uc *UseCase) ResultsByDimension(ctx context.Context, sellerID int64) (*dto.ResultsResponse, error) {
	var out *dto.ResultsResponse
	err := uc.tx.AsSeller(ctx, sellerID, func(r Repos) error {
		dims, err := AggregateDimensions(ctx, r.Survey, r.Responses, sellerID)
		if err != nil {
			return err
		}
		out = &dto.ResultsResponse{
			Dimensions:   dims,
			GeneralIndex: GeneralIndex(dims),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AggregateDimensions monta os agregados por dimensão para um seller qualquer.
// Compartilhado com o dashboard da plataforma, que roda com escopo próprio.
func AggregateDimensions(ctx context.Context, surveyRepo repository.SurveyRepository, respRepo repository.ResponseRepository, sellerID int64) ([]dto.DimensionResult, error) {
	steps, err := surveyRepo.ListActiveSteps(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar passos ativos: %w", err)
	}
	if len(steps) == 0 {
		return []dto.DimensionResult{}, nil
	}

	stepIDs := make([]int64, 0, len(steps))
	for _, s := range steps {
		stepIDs = append(stepIDs, s.ID)
	}

	totals, err := surveyRepo.CountQuestionsByStep(ctx, stepIDs)
	if err != nil {
		return nil, fmt.Errorf("contar perguntas por passo: %w", err)
	}
	maxScores, err := surveyRepo.MaxScoreByStep(ctx, stepIDs)
	if err != nil {
		return nil, fmt.Errorf("max score por passo: %w", err)
	}
	averages, err := respRepo.StepAverages(ctx, sellerID, stepIDs)
	if err != nil {
		return nil, fmt.Errorf("médias por passo: %w", err)
	}

	dims := make([]dto.DimensionResult, 0, len(steps))
	for _, s := range steps {
		avg := decimal.Zero
		answered := 0
		if agg, ok := averages[s.ID]; ok {
			avg = agg.Avg
			answered = agg.Answered
		}
		maxScore, ok := maxScores[s.ID]
		if !ok || maxScore == 0 {
			maxScore = 5
		}
		dims = append(dims, dto.DimensionResult{
			Key:           s.Key,
			Title:         s.Title,
			Order:         s.Order,
			AverageScore:  avg.Round(2).InexactFloat64(),
			MaxScore:      maxScore,
			QuestionCount: totals[s.ID],
			AnsweredCount: answered,
		})
	}
	return dims, nil
}

// GeneralIndex média simples (não ponderada pelo tamanho do passo) das médias
// por dimensão, arredondada a 1 casa. Essa assimetria — a média do passo ignora
// perguntas não respondidas, mas o índice geral pesa cada passo igualmente —
// é regra de produto, não estatística derivada.
func GeneralIndex(dims []dto.DimensionResult) float64 {
	if len(dims) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, d := range dims {
		sum = sum.Add(decimal.NewFromFloat(d.AverageScore))
	}
	return sum.Div(decimal.NewFromInt(int64(len(dims)))).Round(1).InexactFloat64()
}

// guardCompleted devolve SURVEY_COMPLETED se a trava está ligada e o seller já
// chegou ao passo final.
func (uc *UseCase) guardCompleted(ctx context.Context, progressRepo repository.ProgressRepository, sellerID int64) error {
	if !uc.cfg.LockResultsNav {
		return nil
	}
	progress, err := progressRepo.Get(ctx, sellerID)
	if err != nil {
		return fmt.Errorf("buscar progresso: %w", err)
	}
	if progress == nil {
		return nil
	}
	if progress.Completed(uc.cfg.FinalStepOrder) {
		return domain.NewSurveyError(domain.CodeSurveyCompleted, "questionário já concluído")
	}
	return nil
}

func optionKey(questionID int64, value string) string {
	return fmt.Sprintf("%d:%s", questionID, value)
}

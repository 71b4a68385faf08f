package survey_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/inventa-shop/unlock-survey-api/internal/application/survey"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos repositórios do questionário. Implementam só o que os
// casos de uso exercitam; as operações de seed devolvem nil sem efeito.
// ──────────────────────────────────────────────────────────────────────────────

type fakeSurveyRepo struct {
	steps     []*entity.SurveyStep
	questions map[int64][]repository.StepQuestionRow // stepID -> perguntas
	options   []*entity.QuestionOption
}

func (f *fakeSurveyRepo) GetStepByKey(_ context.Context, key string) (*entity.SurveyStep, error) {
	for _, s := range f.steps {
		if s.Key == key {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSurveyRepo) ListActiveSteps(_ context.Context) ([]*entity.SurveyStep, error) {
	var out []*entity.SurveyStep
	for _, s := range f.steps {
		if s.IsActive && len(f.questions[s.ID]) > 0 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeSurveyRepo) ListStepQuestions(_ context.Context, stepID int64) ([]repository.StepQuestionRow, error) {
	return f.questions[stepID], nil
}

func (f *fakeSurveyRepo) ListOptionsByQuestions(_ context.Context, questionIDs []int64) ([]*entity.QuestionOption, error) {
	want := make(map[int64]bool, len(questionIDs))
	for _, id := range questionIDs {
		want[id] = true
	}
	var out []*entity.QuestionOption
	for _, o := range f.options {
		if want[o.QuestionID] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeSurveyRepo) CountQuestionsByStep(_ context.Context, stepIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int)
	for _, id := range stepIDs {
		out[id] = len(f.questions[id])
	}
	return out, nil
}

func (f *fakeSurveyRepo) MaxScoreByStep(_ context.Context, stepIDs []int64) (map[int64]int, error) {
	questionStep := make(map[int64]int64)
	for stepID, qs := range f.questions {
		for _, q := range qs {
			questionStep[q.QuestionID] = stepID
		}
	}
	out := make(map[int64]int)
	for _, o := range f.options {
		stepID := questionStep[o.QuestionID]
		if o.Score > out[stepID] {
			out[stepID] = o.Score
		}
	}
	return out, nil
}

func (f *fakeSurveyRepo) UpsertStep(context.Context, *entity.SurveyStep) error { return nil }
func (f *fakeSurveyRepo) UpsertQuestion(context.Context, *entity.Question) error {
	return nil
}
func (f *fakeSurveyRepo) UpsertOption(context.Context, *entity.QuestionOption) error { return nil }
func (f *fakeSurveyRepo) UpsertStepQuestion(context.Context, *entity.StepQuestion) error {
	return nil
}

type responseKey struct {
	sellerID   int64
	questionID int64
}

type fakeResponseRepo struct {
	byKey map[responseKey]*entity.QuestionResponse
	// scoreByOption deixa o fake calcular StepAverages sem SQL.
	scoreByOption map[int64]int
	questionStep  map[int64]int64
}

func newFakeResponseRepo(sr *fakeSurveyRepo) *fakeResponseRepo {
	f := &fakeResponseRepo{
		byKey:         make(map[responseKey]*entity.QuestionResponse),
		scoreByOption: make(map[int64]int),
		questionStep:  make(map[int64]int64),
	}
	for _, o := range sr.options {
		f.scoreByOption[o.ID] = o.Score
	}
	for stepID, qs := range sr.questions {
		for _, q := range qs {
			f.questionStep[q.QuestionID] = stepID
		}
	}
	return f
}

func (f *fakeResponseRepo) BulkUpsert(_ context.Context, responses []*entity.QuestionResponse) error {
	for _, r := range responses {
		f.byKey[responseKey{r.SellerID, r.QuestionID}] = r
	}
	return nil
}

func (f *fakeResponseRepo) ListBySellerAndQuestions(_ context.Context, sellerID int64, questionIDs []int64) ([]*entity.QuestionResponse, error) {
	var out []*entity.QuestionResponse
	for _, qID := range questionIDs {
		if r, ok := f.byKey[responseKey{sellerID, qID}]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) StepAverages(_ context.Context, sellerID int64, stepIDs []int64) (map[int64]repository.StepAverage, error) {
	sums := make(map[int64]int)
	counts := make(map[int64]int)
	for key, r := range f.byKey {
		if key.sellerID != sellerID {
			continue
		}
		stepID := f.questionStep[key.questionID]
		sums[stepID] += f.scoreByOption[r.OptionID]
		counts[stepID]++
	}
	out := make(map[int64]repository.StepAverage)
	for _, stepID := range stepIDs {
		if counts[stepID] == 0 {
			continue
		}
		out[stepID] = repository.StepAverage{
			Avg:      decimal.NewFromInt(int64(sums[stepID])).Div(decimal.NewFromInt(int64(counts[stepID]))),
			Answered: counts[stepID],
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) AnsweredCounts(_ context.Context, sellerIDs, stepIDs []int64) (map[repository.SellerStep]int, error) {
	out := make(map[repository.SellerStep]int)
	for key := range f.byKey {
		stepID := f.questionStep[key.questionID]
		out[repository.SellerStep{SellerID: key.sellerID, StepID: stepID}]++
	}
	return out, nil
}

func (f *fakeResponseRepo) ListAnswerExportRows(context.Context, int64) ([]repository.AnswerExportRow, error) {
	return nil, nil
}

type fakeProgressRepo struct {
	bySeller map[int64]*entity.SellerProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{bySeller: make(map[int64]*entity.SellerProgress)}
}

func (f *fakeProgressRepo) Get(_ context.Context, sellerID int64) (*entity.SellerProgress, error) {
	return f.bySeller[sellerID], nil
}

func (f *fakeProgressRepo) AdvanceStep(_ context.Context, sellerID, stepID int64, stepOrder int) error {
	p, ok := f.bySeller[sellerID]
	if !ok {
		p = &entity.SellerProgress{SellerID: sellerID}
		f.bySeller[sellerID] = p
	}
	if stepOrder >= p.LastStepOrder {
		p.LastStepID = &stepID
		p.LastStepOrder = stepOrder
	}
	return nil
}

func (f *fakeProgressRepo) MarkReachedFinal(_ context.Context, sellerID int64, finalOrder int) error {
	p, ok := f.bySeller[sellerID]
	if !ok {
		p = &entity.SellerProgress{SellerID: sellerID}
		f.bySeller[sellerID] = p
	}
	p.ReachedFinalStep = true
	if p.LastStepOrder < finalOrder {
		p.LastStepOrder = finalOrder
	}
	return nil
}

func (f *fakeProgressRepo) SetReceivedReturn(_ context.Context, sellerID int64, received bool, markedBy *int64) error {
	p, ok := f.bySeller[sellerID]
	if !ok {
		p = &entity.SellerProgress{SellerID: sellerID}
		f.bySeller[sellerID] = p
	}
	p.ReceivedReturn = received
	return nil
}

// fakeTxRunner executa o callback direto sobre os fakes, sem transação.
type fakeTxRunner struct {
	repos survey.Repos
}

func (f *fakeTxRunner) AsSeller(_ context.Context, _ int64, fn func(survey.Repos) error) error {
	return fn(f.repos)
}

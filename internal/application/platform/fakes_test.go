package platform_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/application/platform"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos repositórios que o caso de uso da plataforma exercita.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID       map[int64]*entity.User
	visibility []visibilityCall
}

type visibilityCall struct {
	sellerID int64
	card     int
	visible  bool
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return f.byID[id], nil
}
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) TouchLastLogin(context.Context, int64) error              { return nil }
func (f *fakeUserRepo) UpdatePasswordByEmail(context.Context, string, string) error {
	return nil
}
func (f *fakeUserRepo) UpdateRoleByEmail(context.Context, string, string) error { return nil }
func (f *fakeUserRepo) SetCardVisibility(_ context.Context, sellerID int64, card int, visible bool) error {
	f.visibility = append(f.visibility, visibilityCall{sellerID, card, visible})
	return nil
}

type fakeSurveyRepo struct {
	steps  []*entity.SurveyStep
	totals map[int64]int
	maxes  map[int64]int
}

func (f *fakeSurveyRepo) GetStepByKey(context.Context, string) (*entity.SurveyStep, error) {
	return nil, nil
}
func (f *fakeSurveyRepo) ListActiveSteps(context.Context) ([]*entity.SurveyStep, error) {
	return f.steps, nil
}
func (f *fakeSurveyRepo) ListStepQuestions(context.Context, int64) ([]repository.StepQuestionRow, error) {
	return nil, nil
}
func (f *fakeSurveyRepo) ListOptionsByQuestions(context.Context, []int64) ([]*entity.QuestionOption, error) {
	return nil, nil
}
func (f *fakeSurveyRepo) CountQuestionsByStep(_ context.Context, stepIDs []int64) (map[int64]int, error) {
	return f.totals, nil
}
func (f *fakeSurveyRepo) MaxScoreByStep(_ context.Context, stepIDs []int64) (map[int64]int, error) {
	return f.maxes, nil
}
func (f *fakeSurveyRepo) UpsertStep(context.Context, *entity.SurveyStep) error       { return nil }
func (f *fakeSurveyRepo) UpsertQuestion(context.Context, *entity.Question) error     { return nil }
func (f *fakeSurveyRepo) UpsertOption(context.Context, *entity.QuestionOption) error { return nil }
func (f *fakeSurveyRepo) UpsertStepQuestion(context.Context, *entity.StepQuestion) error {
	return nil
}

type fakeResponseRepo struct {
	counts     map[repository.SellerStep]int
	averages   map[int64]repository.StepAverage
	exportRows []repository.AnswerExportRow
}

func (f *fakeResponseRepo) BulkUpsert(context.Context, []*entity.QuestionResponse) error {
	return nil
}
func (f *fakeResponseRepo) ListBySellerAndQuestions(context.Context, int64, []int64) ([]*entity.QuestionResponse, error) {
	return nil, nil
}
func (f *fakeResponseRepo) StepAverages(context.Context, int64, []int64) (map[int64]repository.StepAverage, error) {
	return f.averages, nil
}
func (f *fakeResponseRepo) AnsweredCounts(context.Context, []int64, []int64) (map[repository.SellerStep]int, error) {
	return f.counts, nil
}
func (f *fakeResponseRepo) ListAnswerExportRows(context.Context, int64) ([]repository.AnswerExportRow, error) {
	return f.exportRows, nil
}

type fakeProgressRepo struct {
	returnCalls []returnCall
}

type returnCall struct {
	sellerID int64
	received bool
	markedBy *int64
}

func (f *fakeProgressRepo) Get(context.Context, int64) (*entity.SellerProgress, error) {
	return nil, nil
}
func (f *fakeProgressRepo) AdvanceStep(context.Context, int64, int64, int) error { return nil }
func (f *fakeProgressRepo) MarkReachedFinal(context.Context, int64, int) error   { return nil }
func (f *fakeProgressRepo) SetReceivedReturn(_ context.Context, sellerID int64, received bool, markedBy *int64) error {
	f.returnCalls = append(f.returnCalls, returnCall{sellerID, received, markedBy})
	return nil
}

type fakeAssessmentRepo struct {
	bySeller map[int64]*entity.SellerAssessment
}

func (f *fakeAssessmentRepo) Get(_ context.Context, sellerID int64) (*entity.SellerAssessment, error) {
	return f.bySeller[sellerID], nil
}
func (f *fakeAssessmentRepo) GetStatus(context.Context, int64) (string, error) { return "", nil }
func (f *fakeAssessmentRepo) UpsertDraft(context.Context, int64, entity.AssessmentData) error {
	return nil
}
func (f *fakeAssessmentRepo) UpsertSubmitted(context.Context, int64, entity.AssessmentData, time.Time) error {
	return nil
}

type fakeListingRepo struct {
	rows       []repository.SellerListRow
	lastFilter repository.SellerListFilter
}

func (f *fakeListingRepo) ListSellers(_ context.Context, filter repository.SellerListFilter) ([]repository.SellerListRow, error) {
	f.lastFilter = filter
	// Emula o LIMIT n+1 do SQL.
	if len(f.rows) > filter.Limit+1 {
		return f.rows[:filter.Limit+1], nil
	}
	return f.rows, nil
}

type fakeRenderer struct {
	lastEmail string
}

func (f *fakeRenderer) Render(email string, _ *dto.ResultsResponse) ([]byte, error) {
	f.lastEmail = email
	return []byte("%PDF-1.4 fake"), nil
}

type fakeTxRunner struct {
	repos platform.Repos
}

func (f *fakeTxRunner) AsPlatform(_ context.Context, _ int64, fn func(platform.Repos) error) error {
	return fn(f.repos)
}

func decAvg(v float64, answered int) repository.StepAverage {
	return repository.StepAverage{Avg: decimal.NewFromFloat(v), Answered: answered}
}

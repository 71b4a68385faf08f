package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inventa-shop/unlock-survey-api/internal/application/assessment"
	"github.com/inventa-shop/unlock-survey-api/internal/application/auth"
	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/application/survey"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// SellerHandler trata o wizard do questionário, os resultados e o assessment
// do seller autenticado.
type SellerHandler struct {
	surveyUC     *survey.UseCase
	assessmentUC *assessment.UseCase
	authUC       *auth.UseCase
}

// NewSellerHandler constrói o handler do seller.
func NewSellerHandler(surveyUC *survey.UseCase, assessmentUC *assessment.UseCase, authUC *auth.UseCase) *SellerHandler {
	return &SellerHandler{surveyUC: surveyUC, assessmentUC: assessmentUC, authUC: authUC}
}

// Home godoc
// @Summary      Home do seller: cards visíveis + resumo de avanço
// @Tags         seller
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SellerHomeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/seller/home [get]
func (h *SellerHandler) Home(c *fiber.Ctx) error {
	sellerID := GetUserID(c)

	user, err := h.authUC.GetUser(c.Context(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	progress, err := h.surveyUC.GetProgress(c.Context(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	current, err := h.assessmentUC.Get(c.Context(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	out := dto.SellerHomeResponse{
		ShowIndex:      user.ShowIndex,
		ShowAssessment: user.ShowAssessment,
	}
	if progress != nil {
		out.LastStepOrder = progress.LastStepOrder
		out.ReachedFinalStep = progress.ReachedFinalStep
	}
	if current != nil {
		out.AssessmentStatus = current.Status
	}
	return c.JSON(out)
}

// GetStep godoc
// @Summary      Passo do wizard com perguntas, opções e seleção prévia
// @Tags         seller
// @Produce      json
// @Security     BearerAuth
// @Param        key  path  string  true  "chave do passo"
// @Success      200  {object}  dto.StepWithQuestionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/seller/steps/{key} [get]
func (h *SellerHandler) GetStep(c *fiber.Ctx) error {
	out, err := h.surveyUC.GetStepWithQuestions(c.Context(), GetUserID(c), c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveStepAnswers godoc
// @Summary      Gravar respostas de um passo e avançar o progresso
// @Tags         seller
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path  string                     true  "chave do passo"
// @Param        body  body  dto.SaveStepAnswersRequest true  "respostas"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/seller/steps/{key}/answers [post]
func (h *SellerHandler) SaveStepAnswers(c *fiber.Ctx) error {
	var in dto.SaveStepAnswersRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.surveyUC.SaveStepAnswers(c.Context(), GetUserID(c), c.Params("key"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// CompleteProgress godoc
// @Summary      Registrar chegada ao passo final do wizard
// @Tags         seller
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]bool
// @Router       /api/seller/progress/complete [post]
func (h *SellerHandler) CompleteProgress(c *fiber.Ctx) error {
	if err := h.surveyUC.MarkReachedFinalStep(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Results godoc
// @Summary      Resultados por dimensão + índice geral
// @Tags         seller
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ResultsResponse
// @Router       /api/seller/results [get]
func (h *SellerHandler) Results(c *fiber.Ctx) error {
	out, err := h.surveyUC.ResultsByDimension(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetAssessment godoc
// @Summary      Assessment atual do seller (ou vazio se nunca gravado)
// @Tags         seller
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AssessmentResponse
// @Router       /api/seller/assessment [get]
func (h *SellerHandler) GetAssessment(c *fiber.Ctx) error {
	out, err := h.assessmentUC.Get(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.JSON(dto.AssessmentResponse{Data: entity.AssessmentData{}})
	}
	return c.JSON(out)
}

// SaveAssessmentDraft godoc
// @Summary      Gravar rascunho do assessment (sem validação de obrigatórios)
// @Tags         seller
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AssessmentRequest  true  "blob do formulário"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/seller/assessment [put]
func (h *SellerHandler) SaveAssessmentDraft(c *fiber.Ctx) error {
	var in dto.AssessmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.assessmentUC.SaveDraft(c.Context(), GetUserID(c), in.Data); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// SubmitAssessment godoc
// @Summary      Enviar o assessment (valida obrigatórios e congela o blob)
// @Tags         seller
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AssessmentRequest  true  "blob do formulário"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/seller/assessment/submit [post]
func (h *SellerHandler) SubmitAssessment(c *fiber.Ctx) error {
	var in dto.AssessmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.assessmentUC.Submit(c.Context(), GetUserID(c), in.Data); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

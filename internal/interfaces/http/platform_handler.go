package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/application/platform"
)

// PlatformHandler trata o dashboard da plataforma: listagem de sellers,
// resultados, devolutiva, visibilidade de cards e exportações.
type PlatformHandler struct {
	uc *platform.UseCase
}

// NewPlatformHandler constrói o handler da plataforma.
func NewPlatformHandler(uc *platform.UseCase) *PlatformHandler {
	return &PlatformHandler{uc: uc}
}

// ListSellers godoc
// @Summary      Listar sellers com filtros e paginação por cursor
// @Tags         platform
// @Produce      json
// @Security     BearerAuth
// @Param        q                query  string  false  "busca por e-mail"
// @Param        cursor           query  string  false  "cursor da página anterior"
// @Param        f_index_done     query  string  false  "1 = índice concluído, 0 = não"
// @Param        f_assess_sent    query  string  false  "1 = assessment enviado, 0 = não"
// @Param        f_stale30        query  string  false  "1 = sem login há 30 dias"
// @Param        f_index_visible  query  string  false  "1/0 card do índice visível"
// @Param        f_assess_visible query  string  false  "1/0 card do assessment visível"
// @Success      200  {object}  dto.ListSellersResponse
// @Router       /api/platform/sellers [get]
func (h *PlatformHandler) ListSellers(c *fiber.Ctx) error {
	var in dto.ListSellersRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListSellers(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SellerResults godoc
// @Summary      Resultados de um seller visto pela plataforma
// @Tags         platform
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "id do seller"
// @Success      200  {object}  dto.ResultsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/platform/sellers/{id}/results [get]
func (h *PlatformHandler) SellerResults(c *fiber.Ctx) error {
	sellerID, ok := sellerIDParam(c)
	if !ok {
		return nil
	}
	out, err := h.uc.SellerResults(c.Context(), GetUserID(c), sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetReceivedReturn godoc
// @Summary      Marcar/desmarcar devolutiva recebida
// @Tags         platform
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                           true  "id do seller"
// @Param        body  body  dto.SetReceivedReturnRequest  true  "received"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/platform/sellers/{id}/received-return [patch]
func (h *PlatformHandler) SetReceivedReturn(c *fiber.Ctx) error {
	sellerID, ok := sellerIDParam(c)
	if !ok {
		return nil
	}
	var in dto.SetReceivedReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.SetReceivedReturn(c.Context(), GetUserID(c), sellerID, in.Received); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// SetVisibility godoc
// @Summary      Alternar visibilidade de um card da home do seller
// @Tags         platform
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                       true  "id do seller"
// @Param        body  body  dto.SetVisibilityRequest  true  "card (1=índice, 2=assessment) e visible"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/platform/sellers/{id}/visibility [patch]
func (h *PlatformHandler) SetVisibility(c *fiber.Ctx) error {
	sellerID, ok := sellerIDParam(c)
	if !ok {
		return nil
	}
	var in dto.SetVisibilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.SetHomeCardVisibility(c.Context(), GetUserID(c), sellerID, in.Card, in.Visible); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// AnswersCSV godoc
// @Summary      Exportar respostas do índice em CSV
// @Tags         platform
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id  path  int  true  "id do seller"
// @Success      200  {string}  string  "arquivo CSV"
// @Router       /api/platform/sellers/{id}/answers.csv [get]
func (h *PlatformHandler) AnswersCSV(c *fiber.Ctx) error {
	sellerID, ok := sellerIDParam(c)
	if !ok {
		return nil
	}
	name, data, err := h.uc.AnswersCSV(c.Context(), GetUserID(c), sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, name, "text/csv; charset=utf-8", data)
}

// AssessmentCSV godoc
// @Summary      Exportar assessment em CSV de colunas fixas
// @Tags         platform
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id  path  int  true  "id do seller"
// @Success      200  {string}  string  "arquivo CSV"
// @Router       /api/platform/sellers/{id}/assessment.csv [get]
func (h *PlatformHandler) AssessmentCSV(c *fiber.Ctx) error {
	sellerID, ok := sellerIDParam(c)
	if !ok {
		return nil
	}
	name, data, err := h.uc.AssessmentCSV(c.Context(), GetUserID(c), sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, name, "text/csv; charset=utf-8", data)
}

// ResultsPDF godoc
// @Summary      Relatório de resultados em PDF
// @Tags         platform
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  int  true  "id do seller"
// @Success      200  {string}  string  "arquivo PDF"
// @Router       /api/platform/sellers/{id}/report.pdf [get]
func (h *PlatformHandler) ResultsPDF(c *fiber.Ctx) error {
	sellerID, ok := sellerIDParam(c)
	if !ok {
		return nil
	}
	name, data, err := h.uc.ResultsPDF(c.Context(), GetUserID(c), sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, name, "application/pdf", data)
}

// sellerIDParam lê e valida o :id da rota. Quando inválido, já escreve a
// resposta 400 e devolve ok=false.
func sellerIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
		return 0, false
	}
	return id, true
}

// sendAttachment entrega bytes como download com o nome de arquivo dado.
func sendAttachment(c *fiber.Ctx, name, contentType string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

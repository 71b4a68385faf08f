package assessment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/domain"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// UseCase ciclo de vida do assessment de negócio: rascunho livre enquanto
// draft, checklist completo no envio, imutável depois de submitted.
type UseCase struct {
	tx TxRunner
}

// NewUseCase constrói o caso de uso do assessment.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// Get devolve o blob atual do seller, ou nil se nunca gravou nada.
func (uc *UseCase) Get(ctx context.Context, sellerID int64) (*dto.AssessmentResponse, error) {
	var out *dto.AssessmentResponse
	err := uc.tx.AsSeller(ctx, sellerID, func(r Repos) error {
		a, err := r.Assessments.Get(ctx, sellerID)
		if err != nil {
			return fmt.Errorf("buscar assessment: %w", err)
		}
		if a == nil {
			return nil
		}
		updatedAt := a.UpdatedAt
		out = &dto.AssessmentResponse{
			Status:      a.Status,
			Data:        a.Data,
			SubmittedAt: a.SubmittedAt,
			UpdatedAt:   &updatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveDraft upsert do rascunho. Depois do envio o blob é imutável:
// qualquer nova gravação devolve ALREADY_SUBMITTED.
func (uc *UseCase) SaveDraft(ctx context.Context, sellerID int64, data entity.AssessmentData) error {
	return uc.tx.AsSeller(ctx, sellerID, func(r Repos) error {
		status, err := r.Assessments.GetStatus(ctx, sellerID)
		if err != nil {
			return fmt.Errorf("consultar status: %w", err)
		}
		if status == entity.AssessmentSubmitted {
			return domain.NewSurveyError(domain.CodeAlreadySubmitted,
				"Assessment já enviado e não pode ser alterado.")
		}
		return r.Assessments.UpsertDraft(ctx, sellerID, data)
	})
}

// Submit valida o checklist completo e grava o blob como submitted.
// A validação roda antes de qualquer leitura; a primeira falha encerra.
func (uc *UseCase) Submit(ctx context.Context, sellerID int64, data entity.AssessmentData) error {
	if msg := validateRequiredFields(data); msg != "" {
		return domain.NewSurveyError(domain.CodeValidationError, msg)
	}
	return uc.tx.AsSeller(ctx, sellerID, func(r Repos) error {
		status, err := r.Assessments.GetStatus(ctx, sellerID)
		if err != nil {
			return fmt.Errorf("consultar status: %w", err)
		}
		if status == entity.AssessmentSubmitted {
			return domain.NewSurveyError(domain.CodeAlreadySubmitted,
				"Assessment já enviado e não pode ser reenviado.")
		}
		return r.Assessments.UpsertSubmitted(ctx, sellerID, data, time.Now())
	})
}

// validateRequiredFields checklist do envio, na ordem do formulário.
// Devolve a mensagem da primeira falha, ou "" se tudo ok. As mensagens são
// exibidas ao seller, por isso em português e sem jargão.
func validateRequiredFields(data entity.AssessmentData) string {
	if !entity.IsAssessmentSolution(data.Solution) {
		return "Selecione uma solução"
	}

	v := data.VendaPorRegiao
	if v == nil {
		v = &entity.RegionalSales{}
	}
	// As chaves aparecem na mensagem exatamente como no formulário.
	regions := []struct {
		key   string
		value *float64
	}{
		{"sul", v.Sul},
		{"sudeste", v.Sudeste},
		{"norte", v.Norte},
		{"nordeste", v.Nordeste},
		{"centroOeste", v.CentroOeste},
	}
	for _, r := range regions {
		if !nonNegative(r.value) {
			return "Preencha venda para a região: " + r.key
		}
	}

	mf := data.ModeloFiscal
	if mf == nil || (!mf.CompraEVenda && !mf.Filial && !mf.RemessaArmazemGeral) {
		return "Selecione pelo menos um modelo fiscal"
	}

	if !nonNegative(data.VolumeMensalPedidos) {
		return "Informe o volume mensal de pedidos"
	}
	if data.ItensPorPedido == nil || *data.ItensPorPedido <= 0 {
		return "Informe o número médio de itens por pedido"
	}
	if !nonNegative(data.SKUs) {
		return "Informe a quantidade de SKUs"
	}
	if !nonNegative(data.TicketMedio) {
		return "Informe o ticket médio"
	}
	if strings.TrimSpace(data.Canais) == "" {
		return "Informe os canais de vendas"
	}
	if !nonNegative(data.GMVFlagshipMensal) {
		return "Informe o GMV Flagship mensal"
	}
	if !nonNegative(data.GMVMarketplacesMensal) {
		return "Informe o GMV Marketplaces mensal"
	}
	if !nonNegative(data.MesesCoberturaEstoque) {
		return "Informe os meses de cobertura de estoque"
	}
	if strings.TrimSpace(data.PerfilProduto) == "" {
		return "Descreva o perfil de produto"
	}
	if !nonNegative(data.PesoMedioKg) {
		return "Informe o peso médio (kg)"
	}
	d := data.DimensoesCm
	if d == nil || !nonNegative(d.C) || !nonNegative(d.L) || !nonNegative(d.A) {
		return "Informe dimensões C, L, A (cm)"
	}
	if data.ReversaPercent == nil || *data.ReversaPercent < 0 || *data.ReversaPercent > 100 {
		return "Informe % de logística reversa (0–100)"
	}
	if strings.TrimSpace(data.ProjetosEspeciais) == "" {
		return "Descreva projetos especiais"
	}
	// comentarios é opcional.
	return ""
}

func nonNegative(v *float64) bool {
	return v != nil && *v >= 0
}

// CountAnsweredFields quantos dos 16 campos obrigatórios estão preenchidos,
// pelas mesmas regras do envio. Alimenta a coluna "assessment X/16" do
// dashboard da plataforma.
func CountAnsweredFields(data entity.AssessmentData) int {
	n := 0
	if entity.IsAssessmentSolution(data.Solution) {
		n++
	}
	if v := data.VendaPorRegiao; v != nil &&
		nonNegative(v.Sul) && nonNegative(v.Sudeste) && nonNegative(v.Norte) &&
		nonNegative(v.Nordeste) && nonNegative(v.CentroOeste) {
		n++
	}
	if mf := data.ModeloFiscal; mf != nil && (mf.CompraEVenda || mf.Filial || mf.RemessaArmazemGeral) {
		n++
	}
	if nonNegative(data.VolumeMensalPedidos) {
		n++
	}
	if data.ItensPorPedido != nil && *data.ItensPorPedido > 0 {
		n++
	}
	if nonNegative(data.SKUs) {
		n++
	}
	if nonNegative(data.TicketMedio) {
		n++
	}
	if strings.TrimSpace(data.Canais) != "" {
		n++
	}
	if nonNegative(data.GMVFlagshipMensal) {
		n++
	}
	if nonNegative(data.GMVMarketplacesMensal) {
		n++
	}
	if nonNegative(data.MesesCoberturaEstoque) {
		n++
	}
	if strings.TrimSpace(data.PerfilProduto) != "" {
		n++
	}
	if nonNegative(data.PesoMedioKg) {
		n++
	}
	if d := data.DimensoesCm; d != nil && nonNegative(d.C) && nonNegative(d.L) && nonNegative(d.A) {
		n++
	}
	if data.ReversaPercent != nil && *data.ReversaPercent >= 0 && *data.ReversaPercent <= 100 {
		n++
	}
	if strings.TrimSpace(data.ProjetosEspeciais) != "" {
		n++
	}
	return n
}

// TotalRequiredFields tamanho do checklist do envio.
const TotalRequiredFields = 16

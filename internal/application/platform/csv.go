package platform

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

// Cabeçalhos fixos dos exports. A ordem é contrato com as planilhas do time
// comercial: acrescentar coluna só no final.
var (
	answersCSVHeader = []string{
		"sellerId", "sellerEmail",
		"stepOrder", "stepKey", "stepTitle",
		"questionOrder", "questionKey", "questionLabel",
		"optionValue", "optionLabel", "optionScore", "answeredAt",
	}
	assessmentCSVHeader = []string{
		"sellerId", "sellerEmail", "status", "submittedAt", "updatedAt",
		"solution",
		"venda_sul", "venda_sudeste", "venda_norte", "venda_nordeste", "venda_centro_oeste",
		"modelo_compra_e_venda", "modelo_filial", "modelo_remessa_armazem_geral",
		"volumeMensalPedidos", "itensPorPedido", "skus", "ticketMedio", "canais",
		"gmvFlagshipMensal", "gmvMarketplacesMensal", "mesesCoberturaEstoque",
		"perfilProduto", "pesoMedioKg",
		"dimensao_c", "dimensao_l", "dimensao_a",
		"reversaPercent", "projetosEspeciais", "comentarios",
	}
)

// AnswersCSV exporta as respostas do questionário de maturidade de um seller:
// uma linha por pergunta de passo ativo, inclusive as não respondidas (células
// de opção vazias). Devolve o nome do arquivo e o conteúdo.
func (uc *UseCase) AnswersCSV(ctx context.Context, actorID, sellerID int64) (string, []byte, error) {
	var (
		seller *entity.User
		rows   []repository.AnswerExportRow
	)
	err := uc.tx.AsPlatform(ctx, actorID, func(r Repos) error {
		s, err := uc.requireSeller(ctx, r, sellerID)
		if err != nil {
			return err
		}
		seller = s
		rows, err = r.Responses.ListAnswerExportRows(ctx, sellerID)
		if err != nil {
			return fmt.Errorf("listar linhas do export: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(answersCSVHeader)
	for _, row := range rows {
		score := ""
		if row.OptionScore != nil {
			score = strconv.Itoa(*row.OptionScore)
		}
		_ = w.Write([]string{
			strconv.FormatInt(seller.ID, 10),
			seller.Email,
			strconv.Itoa(row.StepOrder),
			row.StepKey,
			row.StepTitle,
			strconv.Itoa(row.QuestionOrder),
			row.QuestionKey,
			row.QuestionLabel,
			row.OptionValue,
			row.OptionLabel,
			score,
			isoTime(row.AnsweredAt),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("escrever csv: %w", err)
	}
	return fmt.Sprintf("answers-%d.csv", seller.ID), buf.Bytes(), nil
}

// AssessmentCSV exporta o assessment de um seller em uma única linha de dados.
// Seller sem assessment ainda gera a linha, com as colunas de conteúdo vazias.
func (uc *UseCase) AssessmentCSV(ctx context.Context, actorID, sellerID int64) (string, []byte, error) {
	var (
		seller *entity.User
		assess *entity.SellerAssessment
	)
	err := uc.tx.AsPlatform(ctx, actorID, func(r Repos) error {
		s, err := uc.requireSeller(ctx, r, sellerID)
		if err != nil {
			return err
		}
		seller = s
		assess, err = r.Assessments.Get(ctx, sellerID)
		if err != nil {
			return fmt.Errorf("buscar assessment: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	record := make([]string, 0, len(assessmentCSVHeader))
	record = append(record, strconv.FormatInt(seller.ID, 10), seller.Email)
	if assess == nil {
		for len(record) < len(assessmentCSVHeader) {
			record = append(record, "")
		}
	} else {
		d := assess.Data
		venda := d.VendaPorRegiao
		if venda == nil {
			venda = &entity.RegionalSales{}
		}
		modelo := d.ModeloFiscal
		if modelo == nil {
			modelo = &entity.FiscalModel{}
		}
		dim := d.DimensoesCm
		if dim == nil {
			dim = &entity.Dimensions{}
		}
		updatedAt := assess.UpdatedAt
		record = append(record,
			assess.Status,
			isoTime(assess.SubmittedAt),
			isoTime(&updatedAt),
			d.Solution,
			num(venda.Sul), num(venda.Sudeste), num(venda.Norte), num(venda.Nordeste), num(venda.CentroOeste),
			strconv.FormatBool(modelo.CompraEVenda),
			strconv.FormatBool(modelo.Filial),
			strconv.FormatBool(modelo.RemessaArmazemGeral),
			num(d.VolumeMensalPedidos),
			num(d.ItensPorPedido),
			num(d.SKUs),
			num(d.TicketMedio),
			d.Canais,
			num(d.GMVFlagshipMensal),
			num(d.GMVMarketplacesMensal),
			num(d.MesesCoberturaEstoque),
			d.PerfilProduto,
			num(d.PesoMedioKg),
			num(dim.C), num(dim.L), num(dim.A),
			num(d.ReversaPercent),
			d.ProjetosEspeciais,
			d.Comentarios,
		)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(assessmentCSVHeader)
	_ = w.Write(record)
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("escrever csv: %w", err)
	}
	return fmt.Sprintf("assessment-%d.csv", seller.ID), buf.Bytes(), nil
}

func isoTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// num formata um número do blob sem zeros à direita ("2.5", "1200").
func num(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Package pdf gera o relatório de resultados do Unlock Index em A4.
//
// Layout da página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Unlock Index  │  e-mail do seller + data           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Dimensão | Respondidas | Média | Máximo            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÍNDICE GERAL: nota destacada                                │
//	│  FOOTER: legenda da escala 0/1/3/5                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/application/platform"
)

var _ platform.ReportRenderer = (*MarotoReportRenderer)(nil)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 15, Green: 44, Blue: 89}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa platform.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer constrói o renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// Render gera o PDF de resultados e devolve seus bytes.
func (r *MarotoReportRenderer) Render(sellerEmail string, results *dto.ResultsResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório Unlock Index", true).
		Build()

	m := maroto.New(cfg)

	// Cabeçalho
	m.AddRows(headerRow(sellerEmail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabela de dimensões
	m.AddRows(tableHeaderRow())
	for _, d := range results.Dimensions {
		m.AddRows(dimensionRow(d))
	}

	// Índice geral
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(generalIndexRow(results.GeneralIndex))

	// Legenda da escala
	m.AddRows(line.NewRow(3))
	m.AddRows(scaleFooterRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: título do relatório (esq) e e-mail do seller + data (dir).
func headerRow(sellerEmail string) core.Row {
	data := time.Now().Format("02/01/2006")

	return row.New(16).Add(
		col.New(6).Add(
			text.New("Unlock Index", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Diagnóstico de maturidade comercial", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(sellerEmail, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Gerado em: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de dimensões.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Dimensão", 6, align.Left),
		h("Respondidas", 2, align.Center),
		h("Média", 2, align.Right),
		h("Máximo", 2, align.Right),
	)
}

// dimensionRow: uma linha por dimensão do questionário.
func dimensionRow(d dto.DimensionResult) core.Row {
	answered := fmt.Sprintf("%d/%d", d.AnsweredCount, d.QuestionCount)

	return row.New(7).Add(
		col.New(6).Add(text.New(
			d.Title,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			answered,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			formatScore(d.AverageScore),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			strconv.Itoa(d.MaxScore),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// generalIndexRow: nota geral destacada, alinhada à direita.
func generalIndexRow(index float64) core.Row {
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			text.New("ÍNDICE GERAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 4, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New(formatScore(index), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 1,
			}),
		),
	)
}

// scaleFooterRow: legenda da escala de respostas.
func scaleFooterRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Escala das respostas: 0 = não faz, 1 = faz de forma incipiente, "+
				"3 = faz com processo definido, 5 = faz de forma madura e mensurada. "+
				"A média de cada dimensão considera apenas perguntas respondidas.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatScore imprime a nota com vírgula decimal e sem zeros à direita.
// Ex: 2.5 → "2,5", 4 → "4"
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	out := []byte(s)
	for i, c := range out {
		if c == '.' {
			out[i] = ','
		}
	}
	return string(out)
}

package entity

import "time"

// Status do assessment. Uma vez submitted o blob é imutável.
const (
	AssessmentDraft     = "draft"
	AssessmentSubmitted = "submitted"
)

// Soluções comerciais oferecidas.
var AssessmentSolutions = []string{"unlock_full_service", "unlock_response", "unlock_fulfillment"}

// IsAssessmentSolution verifica se s é uma solução válida.
func IsAssessmentSolution(s string) bool {
	for _, v := range AssessmentSolutions {
		if s == v {
			return true
		}
	}
	return false
}

// RegionalSales distribuição percentual/valor de venda por região do Brasil.
type RegionalSales struct {
	Sul         *float64 `json:"sul,omitempty"`
	Sudeste     *float64 `json:"sudeste,omitempty"`
	Norte       *float64 `json:"norte,omitempty"`
	Nordeste    *float64 `json:"nordeste,omitempty"`
	CentroOeste *float64 `json:"centroOeste,omitempty"`
}

// FiscalModel modelos fiscais de operação; ao menos um deve estar marcado no envio.
type FiscalModel struct {
	CompraEVenda       bool `json:"compraEVenda,omitempty"`
	Filial             bool `json:"filial,omitempty"`
	RemessaArmazemGeral bool `json:"remessaArmazemGeral,omitempty"`
}

// Dimensions dimensões médias do produto em centímetros (C × L × A).
type Dimensions struct {
	C *float64 `json:"c,omitempty"`
	L *float64 `json:"l,omitempty"`
	A *float64 `json:"a,omitempty"`
}

// AssessmentData blob livre do questionário de negócio, persistido como JSONB.
// Campos com ponteiro distinguem "não preenchido" de zero.
// As chaves JSON são contrato com o frontend e com o CSV exportado.
type AssessmentData struct {
	Solution              string         `json:"solution,omitempty"`
	VendaPorRegiao        *RegionalSales `json:"vendaPorRegiao,omitempty"`
	ModeloFiscal          *FiscalModel   `json:"modeloFiscal,omitempty"`
	VolumeMensalPedidos   *float64       `json:"volumeMensalPedidos,omitempty"`
	ItensPorPedido        *float64       `json:"itensPorPedido,omitempty"`
	SKUs                  *float64       `json:"skus,omitempty"`
	TicketMedio           *float64       `json:"ticketMedio,omitempty"`
	Canais                string         `json:"canais,omitempty"`
	GMVFlagshipMensal     *float64       `json:"gmvFlagshipMensal,omitempty"`
	GMVMarketplacesMensal *float64       `json:"gmvMarketplacesMensal,omitempty"`
	MesesCoberturaEstoque *float64       `json:"mesesCoberturaEstoque,omitempty"`
	PerfilProduto         string         `json:"perfilProduto,omitempty"`
	PesoMedioKg           *float64       `json:"pesoMedioKg,omitempty"`
	DimensoesCm           *Dimensions    `json:"dimensoesCm,omitempty"`
	ReversaPercent        *float64       `json:"reversaPercent,omitempty"`
	ProjetosEspeciais     string         `json:"projetosEspeciais,omitempty"`
	Comentarios           string         `json:"comentarios,omitempty"`
}

// SellerAssessment um blob por seller, com ciclo de vida draft → submitted (sem volta).
type SellerAssessment struct {
	SellerID    int64
	Status      string // draft, submitted
	Data        AssessmentData
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

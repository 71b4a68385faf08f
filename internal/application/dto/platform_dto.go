package dto

import "time"

// ListSellersRequest filtros e cursor da listagem do dashboard.
// Os quick-filters chegam como query params: "1"/"0"/vazio.
type ListSellersRequest struct {
	Q                 string `query:"q"`
	Cursor            string `query:"cursor"`
	IndexDone         string `query:"f_index_done"`
	AssessmentSent    string `query:"f_assess_sent"`
	Stale30           string `query:"f_stale30"`
	IndexVisible      string `query:"f_index_visible"`
	AssessmentVisible string `query:"f_assess_visible"`
}

// ListSellersResponse página de sellers + cursor da próxima página.
type ListSellersResponse struct {
	Sellers    []SellerSummary `json:"sellers"`
	NextCursor string          `json:"next_cursor,omitempty"`
	Limit      int             `json:"limit"`
}

// SellerSummary linha do dashboard com progresso agregado.
type SellerSummary struct {
	ID                    int64      `json:"id"`
	Email                 string     `json:"email"`
	LastLoginAt           *time.Time `json:"last_login_at,omitempty"`
	ShowIndex             bool       `json:"show_index"`
	ShowAssessment        bool       `json:"show_assessment"`
	ReachedResultsAt      *time.Time `json:"reached_results_at,omitempty"`
	ReceivedReturn        bool       `json:"received_return"`
	IndexAnswered         int        `json:"index_answered"`
	IndexTotal            int        `json:"index_total"`
	AssessmentAnswered    int        `json:"assessment_answered"`
	AssessmentTotal       int        `json:"assessment_total"`
	AssessmentStatus      string     `json:"assessment_status"`
	AssessmentSubmittedAt *time.Time `json:"assessment_submitted_at,omitempty"`
}

// SetReceivedReturnRequest marca/desmarca devolutiva recebida.
type SetReceivedReturnRequest struct {
	Received bool `json:"received"`
}

// SetVisibilityRequest alterna visibilidade de um card da home do seller.
type SetVisibilityRequest struct {
	Card    int  `json:"card"` // 1 = índice, 2 = assessment
	Visible bool `json:"visible"`
}

// SellerHomeResponse dados da home do seller: cards visíveis + resumo do avanço.
type SellerHomeResponse struct {
	ShowIndex        bool   `json:"show_index"`
	ShowAssessment   bool   `json:"show_assessment"`
	LastStepOrder    int    `json:"last_step_order"`
	ReachedFinalStep bool   `json:"reached_final_step"`
	AssessmentStatus string `json:"assessment_status"`
}

package entity

import "time"

// SellerProgress registro único por seller do avanço no wizard.
// ReachedFinalStep é monotônico: uma vez true nunca volta a false
// (com a trava de navegação ligada, bloqueia novas gravações).
type SellerProgress struct {
	SellerID        int64
	LastStepID      *int64
	LastStepOrder   int
	ReachedFinalStep   bool
	ReachedFinalStepAt *time.Time
	// Marcação exclusiva da plataforma de que o seller recebeu a devolutiva.
	ReceivedReturn         bool
	ReceivedReturnMarkedAt *time.Time
	ReceivedReturnMarkedBy *int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Completed indica se o seller já chegou ao passo final do wizard.
func (p *SellerProgress) Completed(finalStepOrder int) bool {
	if p == nil {
		return false
	}
	return p.ReachedFinalStep || p.LastStepOrder >= finalStepOrder
}

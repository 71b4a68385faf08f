package dto

import (
	"time"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// AssessmentRequest blob do assessment vindo do formulário.
type AssessmentRequest struct {
	Data entity.AssessmentData `json:"data"`
}

// AssessmentResponse blob atual + ciclo de vida.
type AssessmentResponse struct {
	Status      string                `json:"status"`
	Data        entity.AssessmentData `json:"data"`
	SubmittedAt *time.Time            `json:"submitted_at,omitempty"`
	UpdatedAt   *time.Time            `json:"updated_at,omitempty"`
}

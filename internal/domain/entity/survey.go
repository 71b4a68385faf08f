package entity

import "time"

// OptionValues valores fixos de resposta do questionário de maturidade.
// O score de cada opção é igual ao próprio valor.
var OptionValues = []string{"0", "1", "3", "5"}

// IsOptionValue verifica se v é um dos valores fixos {0,1,3,5}.
func IsOptionValue(v string) bool {
	for _, ov := range OptionValues {
		if v == ov {
			return true
		}
	}
	return false
}

// SurveyStep uma seção ordenada do questionário (ex.: "Payments").
type SurveyStep struct {
	ID          int64
	Key         string
	Title       string
	Description string
	Order       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Question pergunta reutilizável; a associação a passos é feita via StepQuestion.
type Question struct {
	ID        int64
	Key       string
	Label     string
	HelpText  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuestionOption uma das quatro opções fixas de uma pergunta.
// Único por (QuestionID, Value).
type QuestionOption struct {
	ID         int64
	QuestionID int64
	Value      string // "0" | "1" | "3" | "5"
	Label      string
	Order      int
	Score      int // igual ao valor numérico de Value
	IsActive   bool
}

// StepQuestion junção passo↔pergunta com ordem própria do passo.
// Único por (StepID, QuestionID).
type StepQuestion struct {
	ID         int64
	StepID     int64
	QuestionID int64
	Order      int
	Required   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuestionResponse resposta escolhida por um seller; no máximo uma por
// (SellerID, QuestionID) — reenvio sobrescreve.
type QuestionResponse struct {
	ID         int64
	SellerID   int64
	QuestionID int64
	OptionID   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrInvalidResetToken  = errors.New("token inválido ou expirado")
)

// Códigos dos fluxos do questionário e do assessment. São expostos 1:1 no corpo
// de erro HTTP, então mudá-los quebra os clientes.
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeStepNotFound      = "STEP_NOT_FOUND"
	CodeQuestionNotInStep = "QUESTION_NOT_IN_STEP"
	CodeOptionNotFound    = "OPTION_NOT_FOUND"
	CodeSurveyCompleted   = "SURVEY_COMPLETED"
	CodeAlreadySubmitted  = "ALREADY_SUBMITTED"
	CodeValidationError   = "VALIDATION_ERROR"
)

// SurveyError erro de workflow com código estável e mensagem voltada ao usuário.
type SurveyError struct {
	Code    string
	Message string
}

func (e *SurveyError) Error() string { return e.Code + ": " + e.Message }

// NewSurveyError constrói um erro de workflow.
func NewSurveyError(code, message string) *SurveyError {
	return &SurveyError{Code: code, Message: message}
}

// AsSurveyError devolve o *SurveyError embrulhado em err, se houver.
func AsSurveyError(err error) (*SurveyError, bool) {
	var se *SurveyError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

package dto

// ErrorResponse corpo de erro HTTP: código estável + mensagem para o usuário.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

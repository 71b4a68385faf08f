package dto

import "time"

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sessão + dados do usuário.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SignupRequest cadastro de um novo seller.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	// Turnstile token do widget Cloudflare (ignorado se a verificação está desativada).
	Turnstile string `json:"turnstile,omitempty"`
}

// UserResponse usuário sem campos sensíveis.
type UserResponse struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name,omitempty"`
	Role           string     `json:"role"`
	ShowIndex      bool       `json:"show_index"`
	ShowAssessment bool       `json:"show_assessment"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ForgotPasswordRequest pedido de link de redefinição.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redefinição com token de uso único.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/inventa-shop/unlock-survey-api/internal/application/auth"
	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
)

// RateLimiter limita tentativas por chave. Um limitador desativado deixa tudo passar.
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// CaptchaVerifier valida o token do desafio anti-bot do cadastro.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// AuthHandler trata cadastro, login e redefinição de senha.
type AuthHandler struct {
	uc      *auth.UseCase
	limiter RateLimiter
	captcha CaptchaVerifier
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.UseCase, limiter RateLimiter, captcha CaptchaVerifier) *AuthHandler {
	return &AuthHandler{uc: uc, limiter: limiter, captcha: captcha}
}

// Signup godoc
// @Summary      Cadastrar seller
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "email, password, name, turnstile"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	if !h.limiter.Allow(c.Context(), "signup:"+in.Email) {
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "Muitas tentativas. Tente mais tarde."})
	}

	ok, err := h.captcha.Verify(c.Context(), in.Turnstile, c.IP())
	if err != nil || !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CAPTCHA_FAILED", Message: "Validação de segurança falhou"})
	}

	user, err := h.uc.RegisterSeller(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sessão
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email e password são obrigatórios"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Solicitar link de redefinição de senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.RequestPasswordReset(c.Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	// Resposta idêntica para e-mail conhecido e desconhecido.
	return c.JSON(fiber.Map{"ok": true})
}

// ResetPassword godoc
// @Summary      Redefinir senha com token de uso único
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, password"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.ResetPassword(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Me godoc
// @Summary      Dados do usuário autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.GetUser(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/inventa-shop/unlock-survey-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes do gate de cadastro
// ──────────────────────────────────────────────────────────────────────────────

type fakeLimiter struct {
	allowed bool
	lastKey string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) bool {
	f.lastKey = key
	return f.allowed
}

type fakeCaptcha struct {
	ok  bool
	err error
}

func (f *fakeCaptcha) Verify(context.Context, string, string) (bool, error) {
	return f.ok, f.err
}

func signupApp(limiter apphttp.RateLimiter, captcha apphttp.CaptchaVerifier) *fiber.App {
	app := fiber.New()
	// UseCase nil de propósito: os casos abaixo param no rate limit ou no
	// captcha, antes de qualquer acesso ao banco.
	h := apphttp.NewAuthHandler(nil, limiter, captcha)
	app.Post("/signup", h.Signup)
	return app
}

func postSignup(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Signup — gate anti-abuso
// ──────────────────────────────────────────────────────────────────────────────

// Estourou a cota de tentativas → 429 com a mensagem do produto.
func TestSignup_RateLimited_Retorna429(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	app := signupApp(limiter, &fakeCaptcha{ok: true})

	resp := postSignup(t, app, `{"email":"a@b.com","password":"12345678"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Muitas tentativas. Tente mais tarde.")
	assert.Equal(t, "signup:a@b.com", limiter.lastKey,
		"a chave do limitador deve ser por e-mail")
}

// Captcha reprovado → 400 CAPTCHA_FAILED.
func TestSignup_CaptchaReprovado_Retorna400(t *testing.T) {
	app := signupApp(&fakeLimiter{allowed: true}, &fakeCaptcha{ok: false})

	resp := postSignup(t, app, `{"email":"a@b.com","password":"12345678","turnstile":"tok"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "CAPTCHA_FAILED")
	assert.Contains(t, string(body), "Validação de segurança falhou")
}

// Erro de rede na verificação do captcha também reprova o cadastro.
func TestSignup_CaptchaComErro_Retorna400(t *testing.T) {
	app := signupApp(&fakeLimiter{allowed: true}, &fakeCaptcha{err: assert.AnError})

	resp := postSignup(t, app, `{"email":"a@b.com","password":"12345678","turnstile":"tok"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Corpo que não é JSON → 400 INVALID_BODY antes de qualquer gate.
func TestSignup_CorpoInvalido_Retorna400(t *testing.T) {
	app := signupApp(&fakeLimiter{allowed: true}, &fakeCaptcha{ok: true})

	resp := postSignup(t, app, `nao-e-json`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_BODY")
}

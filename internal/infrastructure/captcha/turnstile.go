// Package captcha valida tokens do Cloudflare Turnstile no cadastro.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const siteverifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Verifier valida um token de desafio junto à Cloudflare. Com secret vazio a
// verificação fica desativada e todo token passa (ambiente local e testes).
type Verifier struct {
	secret string
	http   *http.Client
}

// NewVerifier constrói o verificador.
func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: secret,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled indica se a verificação está ativa.
func (v *Verifier) Enabled() bool {
	return v.secret != ""
}

// Verify consulta o siteverify e devolve se o token é válido. Erros de rede
// são devolvidos como erro, não como reprovação, para o chamador decidir.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !v.Enabled() {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, siteverifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("turnstile: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("turnstile: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("turnstile: decode: %w", err)
	}
	return body.Success, nil
}

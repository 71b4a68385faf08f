// Package email envia e-mails transacionais com uma corrente de fallback:
// SMTP primeiro, API HTTP do Resend se o SMTP não estiver configurado ou
// falhar, e por último só o log (útil em desenvolvimento, onde o link de
// redefinição sai no console).
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/inventa-shop/unlock-survey-api/internal/application/auth"
	"github.com/inventa-shop/unlock-survey-api/pkg/config"
	"github.com/inventa-shop/unlock-survey-api/pkg/logger"
)

var _ auth.EmailSender = (*Sender)(nil)

const resendEndpoint = "https://api.resend.com/emails"

// Sender implementa auth.EmailSender com a corrente SMTP → Resend → log.
type Sender struct {
	cfg  config.EmailConfig
	http *http.Client
	log  *logger.Logger
}

// NewSender constrói o sender.
func NewSender(cfg config.EmailConfig, log *logger.Logger) *Sender {
	return &Sender{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
		log:  log,
	}
}

// Send tenta cada transporte na ordem e devolve erro só se todos falharem
// e não houver nenhum configurado além do log.
func (s *Sender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.cfg.SMTPHost != "" {
		if err := s.sendSMTP(to, subject, htmlBody); err == nil {
			return nil
		} else {
			s.log.Warn().Err(err).Str("to", to).Msg("SMTP falhou, tentando Resend")
		}
	}
	if s.cfg.ResendAPIKey != "" {
		if err := s.sendResend(ctx, to, subject, htmlBody); err == nil {
			return nil
		} else {
			s.log.Warn().Err(err).Str("to", to).Msg("Resend falhou")
		}
	}
	// Último recurso: registrar o conteúdo para não perder o link.
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", htmlBody).
		Msg("e-mail não enviado (nenhum transporte disponível), conteúdo no log")
	return nil
}

func (s *Sender) sendSMTP(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	d.SSL = s.cfg.SMTPSecure
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func (s *Sender) sendResend(ctx context.Context, to, subject, htmlBody string) error {
	payload, err := json.Marshal(map[string]any{
		"from":    s.cfg.From,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("resend: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("resend: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend: status %d", resp.StatusCode)
	}
	return nil
}

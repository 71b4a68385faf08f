package auth

import "context"

// EmailSender envia e-mails transacionais. A implementação decide o transporte
// (SMTP, HTTP, log) e nunca deve bloquear um fluxo de negócio por falha.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

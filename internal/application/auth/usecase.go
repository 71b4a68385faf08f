package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inventa-shop/unlock-survey-api/internal/application/dto"
	"github.com/inventa-shop/unlock-survey-api/internal/domain"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
	"github.com/inventa-shop/unlock-survey-api/pkg/config"
	"github.com/inventa-shop/unlock-survey-api/pkg/jwt"
	"github.com/inventa-shop/unlock-survey-api/pkg/logger"
)

const (
	bcryptCost     = 10
	minPasswordLen = 8
	resetTokenTTL  = 30 * time.Minute
)

// Domínios de e-mail descartável barrados no cadastro. Checagem por sufixo,
// então subdomínios também caem.
var disposableDomains = []string{
	"mailinator.com", "guerrillamail.com", "trashmail.com", "tempmail.com", "yopmail.com",
}

// UseCase autenticação e ciclo de vida de credenciais: login, cadastro de
// seller e redefinição de senha. Opera fora do escopo RLS por seller — o
// usuário ainda não está autenticado nestes fluxos.
type UseCase struct {
	users  repository.UserRepository
	resets repository.PasswordResetRepository
	email  EmailSender
	cfg    *config.Config
	log    *logger.Logger
}

// NewUseCase constrói o caso de uso de autenticação.
func NewUseCase(users repository.UserRepository, resets repository.PasswordResetRepository, email EmailSender, cfg *config.Config, log *logger.Logger) *UseCase {
	return &UseCase{users: users, resets: resets, email: email, cfg: cfg, log: log}
}

// Login valida as credenciais e devolve um JWT com id, e-mail e role.
// A mesma resposta ErrUnauthorized cobre e-mail inexistente e senha errada.
// O carimbo de último acesso é best-effort: falha nele não derruba o login.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuário: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(
		uc.cfg.JWT.Secret,
		strconv.FormatInt(user.ID, 10),
		user.Email,
		user.Role,
		uc.cfg.JWT.Issuer,
		uc.cfg.JWT.Expiration,
	)
	if err != nil {
		return nil, fmt.Errorf("gerar token: %w", err)
	}

	if err := uc.users.TouchLastLogin(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("falha ao carimbar último acesso")
	}

	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// RegisterSeller cadastra um novo seller com os dois cards da home visíveis.
// O rate limit e o Turnstile ficam no handler; aqui valem as regras de dado:
// e-mail normalizado e não descartável, senha mínima, unicidade case-insensitive.
func (uc *UseCase) RegisterSeller(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") || len(in.Password) < minPasswordLen {
		return nil, domain.NewSurveyError(domain.CodeInvalidInput, "Dados inválidos")
	}
	if isDisposableEmail(email) {
		return nil, domain.NewSurveyError(domain.CodeInvalidInput, "Use um e-mail válido")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("gerar hash de senha: %w", err)
	}

	user := &entity.User{
		Email:          email,
		Name:           strings.TrimSpace(in.Name),
		PasswordHash:   string(hash),
		Role:           entity.RoleSeller,
		ShowIndex:      true,
		ShowAssessment: true,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Int64("user_id", user.ID).Msg("seller cadastrado")
	resp := toUserResponse(user)
	return &resp, nil
}

// RequestPasswordReset cria um token de redefinição e envia o link por e-mail.
// Sempre devolve sucesso: a resposta não pode revelar se a conta existe.
func (uc *UseCase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.NewSurveyError(domain.CodeInvalidInput, "Informe o e-mail")
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("buscar usuário: %w", err)
	}
	if user == nil {
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("gerar token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	err = uc.resets.Create(ctx, &entity.PasswordResetToken{
		Email:     email,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	})
	if err != nil {
		return fmt.Errorf("gravar token: %w", err)
	}

	link := uc.cfg.App.BaseURL + "/reset-password?token=" + url.QueryEscape(token)
	body := `<p>Use o link para redefinir sua senha:</p>` +
		`<p><a href="` + link + `">` + link + `</a></p>` +
		`<p>O link expira em 30 minutos.</p>`
	if err := uc.email.Send(ctx, email, "Redefinir senha", body); err != nil {
		// O token já está gravado; o envio pode ser repetido.
		uc.log.Warn().Err(err).Str("email", email).Msg("falha ao enviar e-mail de redefinição")
	}
	return nil
}

// ResetPassword troca a senha a partir de um token de uso único.
// Token desconhecido, usado ou vencido devolve sempre ErrInvalidResetToken.
func (uc *UseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	token := strings.TrimSpace(in.Token)
	if token == "" || len(in.Password) < minPasswordLen {
		return domain.NewSurveyError(domain.CodeInvalidInput, "Dados inválidos")
	}

	row, err := uc.resets.GetByHash(ctx, hashToken(token))
	if err != nil {
		return fmt.Errorf("buscar token: %w", err)
	}
	now := time.Now()
	if !row.Usable(now) {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("gerar hash de senha: %w", err)
	}
	if err := uc.users.UpdatePasswordByEmail(ctx, row.Email, string(hash)); err != nil {
		return fmt.Errorf("atualizar senha: %w", err)
	}
	if err := uc.resets.MarkUsed(ctx, row.ID, now); err != nil {
		return fmt.Errorf("marcar token usado: %w", err)
	}

	uc.log.Info().Str("email", row.Email).Msg("senha redefinida")
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isDisposableEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domainPart := email[at+1:]
	for _, d := range disposableDomains {
		if strings.HasSuffix(domainPart, d) {
			return true
		}
	}
	return false
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		ShowIndex:      u.ShowIndex,
		ShowAssessment: u.ShowAssessment,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}

// GetUser devolve o usuário por id, para a home do seller e o /me.
func (uc *UseCase) GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("buscar usuário: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(u)
	return &resp, nil
}

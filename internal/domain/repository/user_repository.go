package repository

import (
	"context"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// UserRepository define o porto de persistência para User (DIP).
type UserRepository interface {
	// Create persiste um novo usuário. Devolve domain.ErrEmailAlreadyExists se o
	// e-mail já existir (case-insensitive).
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail busca por e-mail case-insensitive. Devolve nil, nil se não existir.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// TouchLastLogin atualiza last_login_at para agora. Efeito colateral
	// best-effort do login.
	TouchLastLogin(ctx context.Context, id int64) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	UpdateRoleByEmail(ctx context.Context, email, role string) error
	// SetCardVisibility alterna a visibilidade de um dos dois cards da home
	// do seller: card 1 = índice, card 2 = assessment.
	SetCardVisibility(ctx context.Context, sellerID int64, card int, visible bool) error
}

package entity

import "time"

// Roles válidos para User.
const (
	RolePlatform = "platform"
	RoleSeller   = "seller"
)

// User representa um usuário do sistema (staff da plataforma ou seller).
// ShowIndex e ShowAssessment controlam a visibilidade dos dois cards da home do seller.
type User struct {
	ID             int64
	Email          string
	Name           string
	PasswordHash   string // bcrypt hash, nunca em claro no domínio depois de persistir
	Role           string // platform, seller
	ShowIndex      bool
	ShowAssessment bool
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

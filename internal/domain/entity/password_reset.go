package entity

import "time"

// PasswordResetToken token de redefinição de senha, armazenado apenas como hash
// SHA-256 hex. Uso único: UsedAt é carimbado na primeira redefinição.
type PasswordResetToken struct {
	ID        int64
	Email     string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable indica se o token ainda pode redefinir uma senha.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	if t == nil {
		return false
	}
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

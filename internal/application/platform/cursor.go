package platform

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

// cursorPayload formato do cursor na query string: base64url de um JSON
// {ts, id}. O ts é o valor de ordenação (coalesce(last_login_at, created_at))
// da última linha da página, em ISO-8601.
type cursorPayload struct {
	TS string `json:"ts"`
	ID int64  `json:"id"`
}

// EncodeCursor serializa a posição de paginação para a query string.
func EncodeCursor(ts time.Time, id int64) string {
	raw, _ := json.Marshal(cursorPayload{TS: ts.UTC().Format(time.RFC3339Nano), ID: id})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor desfaz EncodeCursor. Cursor ilegível devolve nil (primeira
// página), nunca erro: um cursor velho colado na URL não deve quebrar a tela.
func DecodeCursor(s string) *repository.SellerCursor {
	if s == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		// Tolerância a cursores com padding.
		raw, err = base64.URLEncoding.DecodeString(s)
		if err != nil {
			return nil
		}
	}
	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	ts, err := time.Parse(time.RFC3339Nano, p.TS)
	if err != nil || p.ID <= 0 {
		return nil
	}
	return &repository.SellerCursor{TS: ts, ID: p.ID}
}

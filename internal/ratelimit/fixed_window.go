// Package ratelimit limita tentativas por chave em janelas fixas, com estado
// no Redis para funcionar igual em várias réplicas da API.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inventa-shop/unlock-survey-api/pkg/logger"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// FixedWindowLimiter conta tentativas por chave numa janela fixa.
//
// O limitador protege o cadastro contra abuso, não é controle de acesso:
// se o Redis estiver indisponível (ou nem configurado), a tentativa passa
// e o incidente vai para o log. Um limitador nil também passa tudo.
type FixedWindowLimiter struct {
	limit  int
	window time.Duration

	client *redis.Client
	prefix string
	log    *logger.Logger
}

// NewFixedWindowLimiter cria o limitador. Addr vazio devolve nil, que o
// chamador usa como "desativado".
func NewFixedWindowLimiter(addr, password string, limit int, window time.Duration, log *logger.Logger) *FixedWindowLimiter {
	addr = strings.TrimSpace(addr)
	if addr == "" || limit <= 0 || window <= 0 {
		return nil
	}
	return &FixedWindowLimiter{
		limit:  limit,
		window: window,
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: "unlock:ratelimit",
		log:    log,
	}
}

// Allow informa se a chave ainda está dentro da cota da janela atual.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}

	windowMs := l.window.Milliseconds()
	slot := time.Now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		if l.log != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("rate limit indisponível, liberando tentativa")
		}
		return true
	}
	return count <= int64(l.limit)
}

// update_user_role promove ou rebaixa um usuário entre os papéis
// seller e platform.
//
// Uso: go run ./cmd/update_user_role -email <email> -role <platform|seller>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/inventa-shop/unlock-survey-api/internal/domain"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/infrastructure/postgres"
	"github.com/inventa-shop/unlock-survey-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "e-mail do usuário")
	role := flag.String("role", "", "novo papel: platform ou seller")
	flag.Parse()

	if *email == "" || (*role != entity.RolePlatform && *role != entity.RoleSeller) {
		fmt.Fprintln(os.Stderr, "Uso: update_user_role -email <email> -role <platform|seller>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("carregar configuração: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexão ao PostgreSQL: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)
	if err := repo.UpdateRoleByEmail(ctx, *email, *role); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			fail("Usuário não encontrado: %s", *email)
		}
		fail("atualizar papel: %v", err)
	}

	fmt.Printf("Papel atualizado: email=%s role=%s\n", *email, *role)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// check_credentials verifica se um par e-mail/senha confere com o hash
// gravado no banco. Ferramenta de suporte, não altera nada.
//
// Uso: go run ./cmd/check_credentials -email <email> -password <senha>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/inventa-shop/unlock-survey-api/internal/infrastructure/postgres"
	"github.com/inventa-shop/unlock-survey-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "e-mail do usuário")
	password := flag.String("password", "", "senha a verificar")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Uso: check_credentials -email <email> -password <senha>")
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
	user, err := repo.GetByEmail(ctx, *email)
	if err != nil {
		fail("buscar usuário: %v", err)
	}
	if user == nil {
		fmt.Println("Usuário não encontrado")
		return
	}

	matches := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*password)) == nil
	hashPrefix := user.PasswordHash
	if len(hashPrefix) > 4 {
		hashPrefix = hashPrefix[:4]
	}
	fmt.Printf("encontrado=true email=%s role=%s senha_confere=%t hash_prefixo=%s\n",
		user.Email, user.Role, matches, hashPrefix)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

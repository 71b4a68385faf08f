//go:build tools

// Fixa a versão das ferramentas de build no go.mod.
// swag gera docs/swagger.json a partir das anotações dos handlers:
//
//	go run github.com/swaggo/swag/cmd/swag init -g cmd/api/main.go -o docs --ot json
package tools

import (
	_ "github.com/swaggo/swag/cmd/swag"
)

package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica se um erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// int64Slice converte ids para o formato aceito pelo pgx em cláusulas = ANY($1).
func int64Slice(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

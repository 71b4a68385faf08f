package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/repository"
)

var _ repository.SellerListingRepository = (*SellerListingRepo)(nil)

// SellerListingRepo consulta de listagem do dashboard sobre PostgreSQL.
type SellerListingRepo struct {
	q Querier
}

// NewSellerListingRepository constrói o adaptador da listagem. Aceita pool ou tx (Querier).
func NewSellerListingRepository(q Querier) *SellerListingRepo {
	return &SellerListingRepo{q: q}
}

// ListSellers devolve até Limit+1 linhas ordenadas por
// coalesce(last_login_at, created_at) DESC, id DESC. O predicado do cursor é
// estritamente menor que a posição anterior, comparando a tupla inteira para
// desempatar timestamps iguais pelo id.
func (r *SellerListingRepo) ListSellers(ctx context.Context, filter repository.SellerListFilter) ([]repository.SellerListRow, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where = append(where, "u.role = 'seller'")
	if filter.EmailQuery != "" {
		where = append(where, fmt.Sprintf("u.email ILIKE %s", arg("%"+filter.EmailQuery+"%")))
	}
	if filter.IndexDone {
		where = append(where, "coalesce(p.reached_final_step, false) = true")
	}
	if filter.AssessmentSent != nil {
		if *filter.AssessmentSent {
			where = append(where, "a.status = 'submitted'")
		} else {
			where = append(where, "(a.status IS NULL OR a.status <> 'submitted')")
		}
	}
	if filter.Stale30 {
		where = append(where, "(u.last_login_at IS NULL OR u.last_login_at < now() - interval '30 days')")
	}
	if filter.IndexVisible != nil {
		where = append(where, fmt.Sprintf("u.show_index = %s", arg(*filter.IndexVisible)))
	}
	if filter.AssessmentVisible != nil {
		where = append(where, fmt.Sprintf("u.show_assessment = %s", arg(*filter.AssessmentVisible)))
	}
	if filter.Cursor != nil {
		where = append(where, fmt.Sprintf(
			"(coalesce(u.last_login_at, u.created_at), u.id) < (%s, %s)",
			arg(filter.Cursor.TS), arg(filter.Cursor.ID),
		))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 25
	}

	q := fmt.Sprintf(`
		SELECT u.id, u.email, u.created_at, u.last_login_at, u.show_index, u.show_assessment,
		       coalesce(p.reached_final_step, false), p.reached_final_step_at,
		       coalesce(p.received_return, false), p.received_return_marked_at, p.received_return_marked_by,
		       coalesce(a.status, ''), a.submitted_at, a.data
		FROM users u
		LEFT JOIN seller_progress p ON p.seller_id = u.id
		LEFT JOIN seller_assessments a ON a.seller_id = u.id
		WHERE %s
		ORDER BY coalesce(u.last_login_at, u.created_at) DESC, u.id DESC
		LIMIT %d`, strings.Join(where, " AND "), limit+1)

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	var out []repository.SellerListRow
	for rows.Next() {
		var (
			row repository.SellerListRow
			raw []byte
		)
		if err := rows.Scan(
			&row.ID, &row.Email, &row.CreatedAt, &row.LastLoginAt, &row.ShowIndex, &row.ShowAssessment,
			&row.ReachedFinalStep, &row.ReachedFinalStepAt,
			&row.ReceivedReturn, &row.ReceivedReturnMarkedAt, &row.ReceivedReturnMarkedBy,
			&row.AssessmentStatus, &row.AssessmentSubmittedAt, &raw,
		); err != nil {
			return nil, fmt.Errorf("scan seller row: %w", err)
		}
		if len(raw) > 0 {
			var data entity.AssessmentData
			if err := json.Unmarshal(raw, &data); err != nil {
				return nil, fmt.Errorf("decode assessment data (seller %d): %w", row.ID, err)
			}
			row.AssessmentData = &data
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

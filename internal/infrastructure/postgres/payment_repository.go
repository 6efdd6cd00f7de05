package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, payment_code, movement_id, amount, payment_method_id, COALESCE(notes, ''), status,
	created_by_id, created_at, updated_at`

// Create persiste un pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, payment_code, movement_id, amount, payment_method_id, notes, status,
			created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.PaymentCode, p.MovementID, p.Amount, p.PaymentMethodID, p.Notes, string(p.Status),
		p.CreatedByID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pago %s", domain.ErrDuplicate, p.PaymentCode)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago (sin asientos).
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

// GetForUpdate obtiene el pago bloqueando la fila.
func (r *PaymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)
}

// CompareAndSetStatus UPDATE condicionado al estado actual; 0 filas significa que otro lo cambió.
func (r *PaymentRepo) CompareAndSetStatus(ctx context.Context, id string, from, to entity.PaymentStatus) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE payments SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByMovement pagos de una venta (o todos si movementID es vacío), más recientes primero.
func (r *PaymentRepo) ListByMovement(ctx context.Context, movementID string, limit, offset int) ([]*entity.Payment, int, error) {
	cond, args := "", []any{}
	if movementID != "" {
		cond, args = " WHERE movement_id = $1", append(args, movementID)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payments`+cond, args...).Scan(&total); err != nil {
		if isNoRows(err) {
			return []*entity.Payment{}, 0, nil
		}
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM payments%s ORDER BY created_at DESC, payment_code DESC LIMIT $%d OFFSET $%d`,
		paymentColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// CountByMovement cantidad de pagos (en cualquier estado) de un movimiento.
func (r *PaymentRepo) CountByMovement(ctx context.Context, movementID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE movement_id = $1`, movementID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (r *PaymentRepo) getOne(ctx context.Context, query, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var (
		p      entity.Payment
		status string
	)
	err := row.Scan(&p.ID, &p.PaymentCode, &p.MovementID, &p.Amount, &p.PaymentMethodID, &p.Notes, &status,
		&p.CreatedByID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = entity.PaymentStatus(status)
	return &p, nil
}

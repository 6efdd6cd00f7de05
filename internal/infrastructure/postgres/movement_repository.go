package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos y líneas sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, stock_movement_code, movement_date, movement_type, operation_id,
	COALESCE(contact_id::text, ''), COALESCE(notes, ''), total_amount, paid_amount, balance_amount, status,
	COALESCE(converted_from_id::text, ''), COALESCE(converted_to_id::text, ''),
	created_by_id, updated_by_id, created_at, updated_at`

// Create inserta la cabecera del movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO movements (id, stock_movement_code, movement_date, movement_type, operation_id, contact_id, notes,
			total_amount, paid_amount, balance_amount, status, converted_from_id, converted_to_id,
			created_by_id, updated_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.ID, m.StockMovementCode, m.MovementDate, string(m.MovementType), m.OperationID, nullable(m.ContactID), m.Notes,
		m.TotalAmount, m.PaidAmount, m.BalanceAmount, string(m.Status), nullable(m.ConvertedFromID), nullable(m.ConvertedToID),
		m.CreatedByID, m.UpdatedByID, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, m.StockMovementCode)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera (sin líneas).
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id)
}

// GetForUpdate obtiene la cabecera bloqueando la fila (SELECT ... FOR UPDATE).
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1 FOR UPDATE`, id)
}

// Update reescribe los campos mutables de la cabecera.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE movements SET movement_date = $2, contact_id = $3, notes = $4, total_amount = $5, paid_amount = $6,
			balance_amount = $7, status = $8, converted_from_id = $9, converted_to_id = $10, updated_by_id = $11, updated_at = $12
		WHERE id = $1`,
		m.ID, m.MovementDate, nullable(m.ContactID), m.Notes, m.TotalAmount, m.PaidAmount,
		m.BalanceAmount, string(m.Status), nullable(m.ConvertedFromID), nullable(m.ConvertedToID), m.UpdatedByID, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, m.ID)
	}
	return nil
}

// Delete elimina el movimiento; las líneas caen por ON DELETE CASCADE.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// List movimientos filtrados, del más reciente al más antiguo, con el total sin paginar.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != "" {
		args = append(args, string(f.Type))
		where = append(where, fmt.Sprintf("movement_type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM movements%s ORDER BY created_at DESC, stock_movement_code DESC LIMIT $%d OFFSET $%d`,
		movementColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// CreateLines inserta las líneas en un solo batch cuando el Querier lo soporta.
func (r *MovementRepo) CreateLines(ctx context.Context, movementID string, lines []*entity.MovementLine) error {
	const insertLine = `
		INSERT INTO movement_lines (id, movement_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`

	sender, ok := r.q.(batchSender)
	if !ok {
		for _, l := range lines {
			if _, err := r.q.Exec(ctx, insertLine, l.ID, movementID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal); err != nil {
				return fmt.Errorf("insert movement line: %w", err)
			}
		}
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(insertLine, l.ID, movementID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal)
	}
	if err := sender.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert movement lines: %w", err)
	}
	return nil
}

// DeleteLines borra todas las líneas del movimiento.
func (r *MovementRepo) DeleteLines(ctx context.Context, movementID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movement_lines WHERE movement_id = $1`, movementID); err != nil {
		return fmt.Errorf("delete movement lines: %w", err)
	}
	return nil
}

// ListLines líneas en orden de inserción.
func (r *MovementRepo) ListLines(ctx context.Context, movementID string) ([]*entity.MovementLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, movement_id, product_id, quantity, unit_price, subtotal
		FROM movement_lines WHERE movement_id = $1 ORDER BY line_no`, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementLine
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ID, &l.MovementID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *MovementRepo) getOne(ctx context.Context, query, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m          entity.Movement
		mt, status string
	)
	err := row.Scan(&m.ID, &m.StockMovementCode, &m.MovementDate, &mt, &m.OperationID,
		&m.ContactID, &m.Notes, &m.TotalAmount, &m.PaidAmount, &m.BalanceAmount, &status,
		&m.ConvertedFromID, &m.ConvertedToID,
		&m.CreatedByID, &m.UpdatedByID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.MovementType = entity.MovementType(mt)
	m.Status = entity.MovementStatus(status)
	return &m, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var (
	_ repository.OperationRepository     = (*OperationRepo)(nil)
	_ repository.ContactRepository       = (*ContactRepo)(nil)
	_ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)
)

// OperationRepo operaciones sobre PostgreSQL.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador.
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = `id, name, operation_code, operation_type, change_inventory, has_finance, created_at, updated_at`

// Create persiste una operación.
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO operations (`+operationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		op.ID, op.Name, op.OperationCode, string(op.OperationType), op.ChangeInventory, op.HasFinance, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: operación %s", domain.ErrDuplicate, op.OperationCode)
		}
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// GetByID obtiene una operación.
func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	return r.getOne(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1`, id)
}

// GetByCode obtiene una operación por código.
func (r *OperationRepo) GetByCode(ctx context.Context, code string) (*entity.Operation, error) {
	return r.getOne(ctx, `SELECT `+operationColumns+` FROM operations WHERE operation_code = $1`, code)
}

// FirstByType primera operación del tipo por código.
func (r *OperationRepo) FirstByType(ctx context.Context, t entity.MovementType) (*entity.Operation, error) {
	return r.getOne(ctx, `SELECT `+operationColumns+` FROM operations WHERE operation_type = $1 ORDER BY operation_code LIMIT 1`, string(t))
}

// List todas las operaciones.
func (r *OperationRepo) List(ctx context.Context) ([]*entity.Operation, error) {
	rows, err := r.q.Query(ctx, `SELECT `+operationColumns+` FROM operations ORDER BY operation_code`)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, op)
	}
	return list, rows.Err()
}

func (r *OperationRepo) getOne(ctx context.Context, query string, arg any) (*entity.Operation, error) {
	op, err := scanOperation(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return op, nil
}

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var (
		op entity.Operation
		t  string
	)
	if err := row.Scan(&op.ID, &op.Name, &op.OperationCode, &t, &op.ChangeInventory, &op.HasFinance, &op.CreatedAt, &op.UpdatedAt); err != nil {
		return nil, err
	}
	op.OperationType = entity.MovementType(t)
	return &op, nil
}

// ContactRepo contactos sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactColumns = `id, name, email, COALESCE(phone, ''), COALESCE(seller_id::text, ''), created_at, updated_at`

// Create persiste un contacto.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contacts (id, name, email, phone, seller_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, nullable(c.Phone), nullable(c.SellerID), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: contacto con email %s", domain.ErrDuplicate, c.Email)
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	return r.getOne(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
}

// GetByEmail obtiene un contacto por email.
func (r *ContactRepo) GetByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	return r.getOne(ctx, `SELECT `+contactColumns+` FROM contacts WHERE email = $1`, email)
}

// List contactos por nombre con paginación.
func (r *ContactRepo) List(ctx context.Context, limit, offset int) ([]*entity.Contact, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ContactRepo) getOne(ctx context.Context, query string, arg any) (*entity.Contact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var c entity.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.SellerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// PaymentMethodRepo medios de pago sobre PostgreSQL.
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository construye el adaptador.
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

// GetByID obtiene un medio de pago.
func (r *PaymentMethodRepo) GetByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	var m entity.PaymentMethod
	err := r.q.QueryRow(ctx, `SELECT id, name, COALESCE(description, '') FROM payment_methods WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Description)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &m, nil
}

// List medios de pago por nombre.
func (r *PaymentMethodRepo) List(ctx context.Context) ([]*entity.PaymentMethod, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, COALESCE(description, '') FROM payment_methods ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		var m entity.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

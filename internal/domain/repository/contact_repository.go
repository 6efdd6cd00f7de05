package repository

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// ContactRepository puerto de persistencia para contactos.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	GetByEmail(ctx context.Context, email string) (*entity.Contact, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Contact, error)
}

package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ttacon/libphonenumber"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// ContactUseCase alta y consulta de contactos.
type ContactUseCase struct {
	repo        repository.ContactRepository
	phoneRegion string
}

// NewContactUseCase construye el caso de uso. phoneRegion es la región por defecto (ej. "CO")
// para teléfonos sin prefijo internacional.
func NewContactUseCase(repo repository.ContactRepository, phoneRegion string) *ContactUseCase {
	if phoneRegion == "" {
		phoneRegion = "CO"
	}
	return &ContactUseCase{repo: repo, phoneRegion: phoneRegion}
}

// Create registra un contacto con email único y teléfono normalizado a E.164.
func (uc *ContactUseCase) Create(ctx context.Context, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: contacto con email %s", domain.ErrDuplicate, email)
	}
	phone, err := NormalizePhone(in.Phone, uc.phoneRegion)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Contact{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Phone:     phone,
		SellerID:  in.SellerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.ToContactResponse(c)
	return &out, nil
}

// GetByID obtiene un contacto.
func (uc *ContactUseCase) GetByID(ctx context.Context, id string) (*dto.ContactResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: contacto %s", domain.ErrNotFound, id)
	}
	out := dto.ToContactResponse(c)
	return &out, nil
}

// List lista contactos con paginación.
func (uc *ContactUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ContactListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ToContactResponse(c))
	}
	return &dto.ContactListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit},
	}, nil
}

// NormalizePhone valida el número para la región y lo devuelve en E.164. Vacío se acepta tal cual.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	p, err := libphonenumber.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: teléfono %q: %v", domain.ErrValidation, raw, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("%w: teléfono %q no es válido", domain.ErrValidation, raw)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}

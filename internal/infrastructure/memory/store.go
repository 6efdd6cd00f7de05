// Package memory implementa los puertos de repositorio en memoria. Cada Run toma un candado
// global, trabaja sobre el estado vivo y lo restaura desde una copia si fn falla, de modo que
// las transacciones quedan serializadas y son atómicas. Se usa en pruebas y con DB_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Comercial-api/internal/application/ports"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	products   map[string]*entity.Product
	operations map[string]*entity.Operation
	contacts   map[string]*entity.Contact
	movements  map[string]*entity.Movement
	lines      map[string][]*entity.MovementLine
	payments   map[string]*entity.Payment
	methods    map[string]*entity.PaymentMethod
	accounts   map[string]*entity.Account
	entries    []*entity.AccountEntry
}

func newState() *state {
	return &state{
		products:   map[string]*entity.Product{},
		operations: map[string]*entity.Operation{},
		contacts:   map[string]*entity.Contact{},
		movements:  map[string]*entity.Movement{},
		lines:      map[string][]*entity.MovementLine{},
		payments:   map[string]*entity.Payment{},
		methods:    map[string]*entity.PaymentMethod{},
		accounts:   map[string]*entity.Account{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = cloneProduct(v)
	}
	for k, v := range s.operations {
		c.operations[k] = cloneOperation(v)
	}
	for k, v := range s.contacts {
		c.contacts[k] = cloneContact(v)
	}
	for k, v := range s.movements {
		c.movements[k] = cloneMovement(v)
	}
	for k, v := range s.lines {
		c.lines[k] = cloneLines(v)
	}
	for k, v := range s.payments {
		c.payments[k] = clonePayment(v)
	}
	for k, v := range s.methods {
		m := *v
		c.methods[k] = &m
	}
	for k, v := range s.accounts {
		c.accounts[k] = cloneAccount(v)
	}
	c.entries = make([]*entity.AccountEntry, 0, len(s.entries))
	for _, e := range s.entries {
		c.entries = append(c.entries, cloneEntry(e))
	}
	return c
}

// Store base de datos en memoria.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Repositories devuelve repositorios fuera de transacción; cada llamada toma el candado.
func (s *Store) Repositories() repository.Repositories {
	return s.bind(false)
}

// Run ejecuta fn con repositorios atados a una transacción serializada.
// Si fn devuelve error el estado vuelve a la copia tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(s.bind(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Seed carga datos de configuración fuera de cualquier transacción.
func (s *Store) Seed(ops []*entity.Operation, methods []*entity.PaymentMethod, accounts []*entity.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range ops {
		s.data.operations[o.ID] = cloneOperation(o)
	}
	for _, m := range methods {
		c := *m
		s.data.methods[m.ID] = &c
	}
	for _, a := range accounts {
		s.data.accounts[a.ID] = cloneAccount(a)
	}
}

func (s *Store) bind(inTx bool) repository.Repositories {
	v := view{store: s, inTx: inTx}
	return repository.Repositories{
		Products:       productRepo{v},
		Operations:     operationRepo{v},
		Contacts:       contactRepo{v},
		Movements:      movementRepo{v},
		Payments:       paymentRepo{v},
		PaymentMethods: paymentMethodRepo{v},
		Accounts:       accountRepo{v},
		Entries:        entryRepo{v},
	}
}

// view da acceso al estado: dentro de Run el candado ya está tomado.
type view struct {
	store *Store
	inTx  bool
}

func (v view) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !v.inTx {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	return fn(v.store.data)
}

// write fuera de transacción se comporta como una sentencia autocommit.
func (v view) write(ctx context.Context, fn func(st *state) error) error {
	return v.read(ctx, fn)
}

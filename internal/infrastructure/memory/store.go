// Package memory implementa los puertos de persistencia en memoria. Se usa con STORE_DRIVER=memory
// (desarrollo local sin PostgreSQL) y como doble en las pruebas de los casos de uso.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado completo protegido por un único mutex. Run trabaja sobre una copia y la publica
// solo si fn termina sin error, así una transacción fallida no deja rastros.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

type state struct {
	products      map[string]entity.Product
	productOrder  []string
	skuIndex      map[string]string
	locations     map[string]entity.Location
	locsByProduct map[string][]string
	orders        map[string]entity.Order
	orderOrder    []string
	movements     []entity.InventoryMovement
	users         map[string]entity.User
	userOrder     []string
	emailIndex    map[string]string
}

func newState() *state {
	return &state{
		products:      map[string]entity.Product{},
		skuIndex:      map[string]string{},
		locations:     map[string]entity.Location{},
		locsByProduct: map[string][]string{},
		orders:        map[string]entity.Order{},
		users:         map[string]entity.User{},
		emailIndex:    map[string]string{},
	}
}

func (s *state) clone() *state {
	c := &state{
		products:      make(map[string]entity.Product, len(s.products)),
		productOrder:  slices.Clone(s.productOrder),
		skuIndex:      make(map[string]string, len(s.skuIndex)),
		locations:     make(map[string]entity.Location, len(s.locations)),
		locsByProduct: make(map[string][]string, len(s.locsByProduct)),
		orders:        make(map[string]entity.Order, len(s.orders)),
		orderOrder:    slices.Clone(s.orderOrder),
		movements:     slices.Clone(s.movements),
		users:         make(map[string]entity.User, len(s.users)),
		userOrder:     slices.Clone(s.userOrder),
		emailIndex:    make(map[string]string, len(s.emailIndex)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.skuIndex {
		c.skuIndex[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = copyLocation(v)
	}
	for k, v := range s.locsByProduct {
		c.locsByProduct[k] = slices.Clone(v)
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.emailIndex {
		c.emailIndex[k] = v
	}
	return c
}

// Run ejecuta fn con repositorios atados a una copia privada del estado. Las transacciones se
// serializan con el mutex del almacén.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	orderRepo repository.OrderRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := s.st.clone()
	b := base{st: tx}
	if err := fn(&ProductRepo{b}, &LocationRepo{b}, &OrderRepo{b}, &MovementRepo{b}); err != nil {
		return err
	}
	// Cancelado a mitad de la tx: se descarta igual que un rollback.
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// Products repositorio fuera de transacción; cada llamada es atómica.
func (s *Store) Products() *ProductRepo { return &ProductRepo{base{store: s}} }

// Locations repositorio fuera de transacción.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{base{store: s}} }

// Orders repositorio fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{base{store: s}} }

// Movements repositorio fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{base{store: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{base{store: s}} }

// base resuelve el estado sobre el que opera un repositorio: la copia de la tx o el estado vivo
// bajo el mutex.
type base struct {
	store *Store
	st    *state
}

func (b base) with(fn func(st *state) error) error {
	if b.st != nil {
		return fn(b.st)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}

func copyLocation(l entity.Location) entity.Location {
	l.Photos = slices.Clone(l.Photos)
	return l
}

func copyOrder(o entity.Order) entity.Order {
	if o.DeliveredAt != nil {
		t := *o.DeliveredAt
		o.DeliveredAt = &t
	}
	items := make([]entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.Photos = slices.Clone(it.Photos)
		items[i] = it
	}
	o.Items = items
	return o
}

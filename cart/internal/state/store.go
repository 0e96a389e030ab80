package state

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartResponse "github.com/kiranalabs/pos/cart/pkg/response"
	inErrors "github.com/kiranalabs/pos/internal/errors"
)

// Store owns every open session cart. Carts are kept in memory only; an
// unfinished sale does not survive a restart, matching the register's
// lose-on-reload behavior.
type Store struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

func NewStore() *Store {
	return &Store{carts: map[uuid.UUID]*Cart{}}
}

func (s *Store) Open() cartResponse.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := NewCart()
	s.carts[cart.ID] = cart
	return cart.Render()
}

func (s *Store) AddItem(
	id uuid.UUID,
	productID int64,
	name string,
	unitPrice decimal.Decimal,
) (cartResponse.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return cartResponse.Cart{}, inErrors.ErrCartNotFound
	}
	cart.AddItem(productID, name, unitPrice)
	return cart.Render(), nil
}

func (s *Store) SetQuantity(
	id uuid.UUID,
	productID int64,
	quantity int32,
) (cartResponse.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return cartResponse.Cart{}, inErrors.ErrCartNotFound
	}
	if err := cart.SetQuantity(productID, quantity); err != nil {
		return cartResponse.Cart{}, err
	}
	return cart.Render(), nil
}

func (s *Store) RemoveItem(id uuid.UUID, productID int64) (cartResponse.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return cartResponse.Cart{}, inErrors.ErrCartNotFound
	}
	if err := cart.RemoveItem(productID); err != nil {
		return cartResponse.Cart{}, err
	}
	return cart.Render(), nil
}

func (s *Store) Render(id uuid.UUID) (cartResponse.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return cartResponse.Cart{}, inErrors.ErrCartNotFound
	}
	return cart.Render(), nil
}

// BeginCheckout snapshots the cart's lines and marks the cart as settling.
// A second checkout attempt while one is in flight is rejected, and an empty
// cart never begins one.
func (s *Store) BeginCheckout(id uuid.UUID) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return nil, inErrors.ErrCartNotFound
	}
	if cart.settling {
		return nil, inErrors.ErrCheckoutInFlight
	}
	if cart.Empty() {
		return nil, inErrors.ErrEmptyCart
	}
	cart.settling = true
	return cart.Lines(), nil
}

// CompleteCheckout settles the cart and drops it from the store. Settled
// carts are never reused; the next sale opens a fresh one, and dropping them
// here keeps the store from growing with every sale.
func (s *Store) CompleteCheckout(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}

// AbortCheckout releases the settling mark after a failed submission; the
// lines stay untouched so the clerk can correct and retry.
func (s *Store) AbortCheckout(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return
	}
	cart.settling = false
}

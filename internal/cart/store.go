package cart

import (
	"sync"

	"github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/models"
	"github.com/go-playground/validator/v10"
)

// Store holds the working set of items for an in-progress sale. It is an
// in-memory state object with no I/O; the composition root owns the single
// instance. Mutations arrive from more than one goroutine (cart handlers,
// logout), so every operation takes the store's own lock.
//
// Quantities are clamped against the stock snapshotted when a product first
// enters the cart. Clamping is silent: editing the cart never surfaces an
// error to the operator, stock is re-validated against the server at checkout.
type Store struct {
	mu             sync.RWMutex
	items          map[string]*models.CartItem
	order          []string
	selectedClient string
	validate       *validator.Validate
}

func NewStore() *Store {
	return &Store{
		items:    make(map[string]*models.CartItem),
		validate: validator.New(),
	}
}

// AddItem merges the product into the cart. If the product is already
// present, the quantities are summed and capped at the originally snapshotted
// stock; otherwise a new line is inserted with quantity capped at the
// product's current stock. A non-positive quantity is a no-op.
//
// The only error path is a malformed product (missing id or name, negative
// price or stock); that is a programmer error at the boundary, not a cart
// state condition.
func (s *Store) AddItem(product models.Product, quantity int) error {
	if err := s.validate.Struct(product); err != nil {
		return errors.ValidationError("Invalid product").WithError(err)
	}

	if quantity <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.items[product.ID]; ok {
		item.Quantity = min(item.Quantity+quantity, item.AvailableStock)

		return nil
	}

	qty := min(quantity, product.Quantity)
	if qty <= 0 {
		// out-of-stock product, nothing to insert
		return nil
	}

	s.items[product.ID] = &models.CartItem{
		ProductID:      product.ID,
		Name:           product.Name,
		Price:          product.Price,
		Quantity:       qty,
		ImageURL:       product.ImageURL,
		AvailableStock: product.Quantity,
	}
	s.order = append(s.order, product.ID)

	return nil
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op, so the operation is idempotent.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(productID)
}

// remove deletes a line. Callers hold the write lock.
func (s *Store) remove(productID string) {
	if _, ok := s.items[productID]; !ok {
		return
	}

	delete(s.items, productID)

	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}
}

// UpdateQuantity sets the quantity for an existing line, clamped at the
// snapshotted stock. A quantity of zero or less removes the line; an unknown
// productID is a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID)

		return
	}

	item, ok := s.items[productID]
	if !ok {
		return
	}

	item.Quantity = min(quantity, item.AvailableStock)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*models.CartItem)
	s.order = nil
}

// SetSelectedClient replaces the client reference. An empty id clears the
// selection. The client is not validated here; the backend checks it exists
// when the sale is submitted.
func (s *Store) SetSelectedClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedClient = clientID
}

func (s *Store) SelectedClient() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selectedClient
}

// Items returns the cart lines in insertion order. The slice holds copies;
// mutating it does not touch store state.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, *s.items[id])
	}

	return items
}

func (s *Store) Item(productID string) (models.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[productID]
	if !ok {
		return models.CartItem{}, false
	}

	return *item, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Total recomputes the running total from current state on every call. It is
// never cached, so it always reflects all mutations applied before the read.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64

	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}

// SaleItems projects the cart into the plain payload shape the backend
// expects, carrying the snapshotted price per line.
func (s *Store) SaleItems() []models.SaleItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.SaleItem, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		items = append(items, models.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return items
}

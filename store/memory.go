package store

import (
	"context"
	"fmt"
	"sync"

	"shoplet-backend/models"
)

// MemoryStore is an in-memory Store used by the tests. It honors the same
// version-check contract as the Mongo implementation.
type MemoryStore struct {
	mu            sync.RWMutex
	products      map[int]models.Product
	users         map[string]models.User
	sold          []models.SoldProduct
	nextProductID int
	nextUserID    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:      make(map[int]models.Product),
		users:         make(map[string]models.User),
		nextProductID: 1,
		nextUserID:    1,
	}
}

func copyUser(u models.User) models.User {
	out := u
	out.Orders = append([]models.CartItem{}, u.Orders...)
	out.PurchasedItems = append([]models.PurchaseGroup{}, u.PurchasedItems...)
	return out
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := []models.Product{}
	for _, p := range s.products {
		products = append(products, p)
	}
	return products, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextProductID
	s.nextProductID++
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return ErrProductNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) ListUsers(ctx context.Context, email string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := []models.User{}
	for _, u := range s.users {
		if email == "" || u.Email == email {
			users = append(users, copyUser(u))
		}
	}
	return users, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := copyUser(u)
	return &out, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			out := copyUser(u)
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}

	u.ID = fmt.Sprintf("%d", s.nextUserID)
	s.nextUserID++
	u.Version = 0
	if u.Orders == nil {
		u.Orders = []models.CartItem{}
	}
	if u.PurchasedItems == nil {
		u.PurchasedItems = []models.PurchaseGroup{}
	}
	s.users[u.ID] = copyUser(*u)
	return nil
}

func (s *MemoryStore) ReplaceUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	if existing.Version != u.Version {
		return ErrConflict
	}

	u.Version++
	s.users[u.ID] = copyUser(*u)
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) ListSoldProducts(ctx context.Context) ([]models.SoldProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.SoldProduct{}, s.sold...), nil
}

func (s *MemoryStore) InsertSoldProducts(ctx context.Context, records []models.SoldProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sold = append(s.sold, records...)
	return nil
}

func (s *MemoryStore) Stats(ctx context.Context) (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.Stats{
		TotalProducts: int64(len(s.products)),
		TotalUsers:    int64(len(s.users)),
	}
	for _, p := range s.products {
		stats.InventoryValue += p.Price * float64(p.Stock)
	}
	for _, sp := range s.sold {
		stats.TotalSales += sp.TotalAmount
	}
	return stats, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

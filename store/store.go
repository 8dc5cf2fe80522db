package store

import (
	"context"
	"errors"

	"shoplet-backend/models"
)

// Sentinel errors mapped to HTTP statuses by the controllers.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	// ErrConflict means a version-checked user write lost the race: the
	// record changed since it was read. Callers re-read and retry or fail.
	ErrConflict = errors.New("user record was modified concurrently")
)

// Store is the persistence surface for the storefront. Every write targets a
// single record; there are no whole-collection read-modify-write cycles.
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	// CreateProduct assigns the next product id and inserts the record.
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int) error

	// ListUsers returns all users, or only those matching email when set.
	ListUsers(ctx context.Context, email string) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUser assigns the next user id, enforcing email uniqueness.
	CreateUser(ctx context.Context, u *models.User) error
	// ReplaceUser overwrites the record only if u.Version matches the stored
	// version, then increments it (in the store and on u). A stale version
	// returns ErrConflict.
	ReplaceUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error

	ListSoldProducts(ctx context.Context) ([]models.SoldProduct, error)
	// InsertSoldProducts appends ledger lines as individual records.
	InsertSoldProducts(ctx context.Context, records []models.SoldProduct) error

	Stats(ctx context.Context) (*models.Stats, error)
	Ping(ctx context.Context) error
}

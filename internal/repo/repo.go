package repo

import (
	"context"
	"errors"

	"github.com/alexmontanha/MeuProjetoAPI/internal/models"
)

var (
	// ErrNotFound is returned when no product exists with the given id.
	ErrNotFound = errors.New("product not found")
	// ErrConflict is returned when an update loses the race against a
	// concurrent write, detected through the version column.
	ErrConflict = errors.New("product was modified concurrently")
)

// ProductRepository is the storage gateway for products. Implementations
// commit on return: a nil error means the change is durable.
type ProductRepository interface {
	// Create inserts the product and fills in the assigned id.
	Create(ctx context.Context, product *models.Product) error
	// GetByID returns the product or ErrNotFound.
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// List returns every product ordered by id.
	List(ctx context.Context) ([]models.Product, error)
	// Update overwrites name and price guarded by the version the caller
	// read. It returns ErrNotFound if the row is gone and ErrConflict if
	// the row changed since that read.
	Update(ctx context.Context, product *models.Product) error
	// Delete removes the product or returns ErrNotFound.
	Delete(ctx context.Context, id uint) error
}

package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/alexmontanha/MeuProjetoAPI/internal/models"
)

// MemoryRepo keeps products in a map. It backs STORE=memory and the handler
// tests, and follows the same version rules as the database implementation.
type MemoryRepo struct {
	mu       sync.Mutex
	products map[uint]models.Product
	lastID   uint
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{products: make(map[uint]models.Product)}
}

var _ ProductRepository = (*MemoryRepo)(nil)

func (r *MemoryRepo) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	product.ID = r.lastID
	product.Version = 1
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *MemoryRepo) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Version != product.Version {
		return ErrConflict
	}
	product.Version++
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

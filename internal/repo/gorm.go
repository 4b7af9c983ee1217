package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alexmontanha/MeuProjetoAPI/internal/models"
)

// GormRepo implements ProductRepository on top of a gorm connection, either
// postgres or sqlite depending on how the process was configured.
type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

var _ ProductRepository = (*GormRepo)(nil)

func (r *GormRepo) Create(ctx context.Context, product *models.Product) error {
	product.Version = 1
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) List(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) Update(ctx context.Context, product *models.Product) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Updates(map[string]any{
			"name":    product.Name,
			"price":   product.Price,
			"version": product.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means either the row is gone or someone bumped the
		// version first. Tell those apart for the caller.
		var count int64
		err := r.DB.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ?", product.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	product.Version++
	return nil
}

func (r *GormRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

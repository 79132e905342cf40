package repository

import (
	"context"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// ProductRepository 商品目录持久化
type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, p *model.Product) error
	Get(ctx context.Context, id string) (*model.Product, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, category string, page Page) ([]*model.Product, error)
	Save(ctx context.Context, p *model.Product) error
	// Delete removes the product and every cart line pointing at it.
	Delete(ctx context.Context, id string) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *productRepository) List(ctx context.Context, category string, page Page) ([]*model.Product, error) {
	db := r.db.WithContext(ctx).Model(&model.Product{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	var list []*model.Product
	if err := page.apply(db.Order("created_at ASC"), 100).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productRepository) Save(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepository) Delete(ctx context.Context, id string) (int64, error) {
	if err := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	return res.RowsAffected, res.Error
}

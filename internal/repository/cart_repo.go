package repository

import (
	"context"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// CartRepository 购物车持久化，读取时附带商品信息
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	// FindLine looks up the line for (userID, productID, size); a nil size
	// matches only lines without a size.
	FindLine(ctx context.Context, userID, productID string, size *string) (*model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	// AddQuantity bumps an existing line in place.
	AddQuantity(ctx context.Context, itemID string, qty int) (int64, error)
	Get(ctx context.Context, userID, itemID string) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*model.CartItem, error)
	Save(ctx context.Context, item *model.CartItem) error
	Delete(ctx context.Context, userID, itemID string) (int64, error)
	Clear(ctx context.Context, userID string) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) FindLine(ctx context.Context, userID, productID string, size *string) (*model.CartItem, error) {
	db := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID)
	if size == nil {
		db = db.Where("size IS NULL")
	} else {
		db = db.Where("size = ?", *size)
	}
	var item model.CartItem
	if err := forUpdate(db).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Omit("Product").Create(item).Error
}

func (r *cartRepository) AddQuantity(ctx context.Context, itemID string, qty int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CartItem{}).Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	return res.RowsAffected, res.Error
}

func (r *cartRepository) Get(ctx context.Context, userID, itemID string) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID string) ([]*model.CartItem, error) {
	var list []*model.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *cartRepository) Save(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Omit("Product").Save(item).Error
}

func (r *cartRepository) Delete(ctx context.Context, userID, itemID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&model.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *cartRepository) Clear(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{})
	return res.RowsAffected, res.Error
}

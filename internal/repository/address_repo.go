package repository

import (
	"context"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// AddressRepository 收货地址持久化
type AddressRepository interface {
	WithTx(tx *gorm.DB) AddressRepository
	Create(ctx context.Context, addr *model.Address) error
	Get(ctx context.Context, userID, addressID string) (*model.Address, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Address, error)
	Save(ctx context.Context, addr *model.Address) error
	Delete(ctx context.Context, userID, addressID string) (int64, error)
	// ClearDefault unsets is_default on every address of userID except exceptID.
	ClearDefault(ctx context.Context, userID, exceptID string) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) WithTx(tx *gorm.DB) AddressRepository {
	return &addressRepository{db: tx}
}

func (r *addressRepository) Create(ctx context.Context, addr *model.Address) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

func (r *addressRepository) Get(ctx context.Context, userID, addressID string) (*model.Address, error) {
	var a model.Address
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", addressID, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]*model.Address, error) {
	var list []*model.Address
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("is_default DESC").Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *addressRepository) Save(ctx context.Context, addr *model.Address) error {
	return r.db.WithContext(ctx).Save(addr).Error
}

func (r *addressRepository) Delete(ctx context.Context, userID, addressID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", addressID, userID).Delete(&model.Address{})
	return res.RowsAffected, res.Error
}

func (r *addressRepository) ClearDefault(ctx context.Context, userID, exceptID string) error {
	db := r.db.WithContext(ctx).Model(&model.Address{}).Where("user_id = ? AND is_default = ?", userID, true)
	if exceptID != "" {
		db = db.Where("id <> ?", exceptID)
	}
	return db.Update("is_default", false).Error
}

package repository

import (
	"context"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户持久化
type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *model.User) error
	GetByUID(ctx context.Context, uid string) (*model.User, error)
	// GetByUIDForUpdate locks the user row until the transaction ends. Writes
	// that must stay exclusive per user (default address, cart lines) take it first.
	GetByUIDForUpdate(ctx context.Context, uid string) (*model.User, error)
	// ExistsBy reports whether another user (uid != exceptUID) already has column = value.
	ExistsBy(ctx context.Context, column, value, exceptUID string) (bool, error)
	List(ctx context.Context, page Page) ([]*model.User, error)
	Save(ctx context.Context, user *model.User) error
	// DeleteWithDependents removes the user with addresses, cart, bookings,
	// wallet and ledger. Run it inside a transaction.
	DeleteWithDependents(ctx context.Context, uid string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUIDForUpdate(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	if err := forUpdate(r.db.WithContext(ctx)).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ExistsBy(ctx context.Context, column, value, exceptUID string) (bool, error) {
	var n int64
	db := r.db.WithContext(ctx).Model(&model.User{}).Where(column+" = ?", value)
	if exceptUID != "" {
		db = db.Where("uid <> ?", exceptUID)
	}
	if err := db.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepository) List(ctx context.Context, page Page) ([]*model.User, error) {
	var list []*model.User
	db := r.db.WithContext(ctx).Order("created_at ASC")
	if err := page.apply(db, 100).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) DeleteWithDependents(ctx context.Context, uid string) (int64, error) {
	db := r.db.WithContext(ctx)
	walletIDs := r.db.WithContext(ctx).Model(&model.Wallet{}).Select("id").Where("user_id = ?", uid)
	if err := db.Where("wallet_id IN (?)", walletIDs).Delete(&model.Transaction{}).Error; err != nil {
		return 0, err
	}
	for _, m := range []interface{}{&model.Wallet{}, &model.Address{}, &model.CartItem{}, &model.Booking{}} {
		if err := r.db.WithContext(ctx).Where("user_id = ?", uid).Delete(m).Error; err != nil {
			return 0, err
		}
	}
	res := r.db.WithContext(ctx).Where("uid = ?", uid).Delete(&model.User{})
	return res.RowsAffected, res.Error
}

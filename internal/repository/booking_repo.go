package repository

import (
	"context"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// BookingRepository 预订记录持久化
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	Get(ctx context.Context, userID, bookingID string) (*model.Booking, error)
	List(ctx context.Context, userID, status string, page Page) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, b *model.Booking, status string) error
	Delete(ctx context.Context, userID, bookingID string) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepository) Get(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", bookingID, userID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) List(ctx context.Context, userID, status string, page Page) ([]*model.Booking, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var list []*model.Booking
	if err := page.apply(db.Order("date DESC").Order("start_time DESC"), 100).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, b *model.Booking, status string) error {
	if err := r.db.WithContext(ctx).Model(b).Update("status", status).Error; err != nil {
		return err
	}
	b.Status = status
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, userID, bookingID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", bookingID, userID).Delete(&model.Booking{})
	return res.RowsAffected, res.Error
}

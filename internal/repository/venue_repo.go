package repository

import (
	"context"
	"strings"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// VenueFilter 场馆列表筛选条件
type VenueFilter struct {
	City     string // case-insensitive substring
	Sport    string // must be listed in sports_available
	IsActive bool
}

// VenueRepository 场馆持久化
type VenueRepository interface {
	Create(ctx context.Context, v *model.Venue) error
	Get(ctx context.Context, id string) (*model.Venue, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter VenueFilter, page Page) ([]*model.Venue, error)
	Save(ctx context.Context, v *model.Venue) error
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, v *model.Venue) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *venueRepository) Get(ctx context.Context, id string) (*model.Venue, error) {
	var v model.Venue
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *venueRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Venue{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *venueRepository) List(ctx context.Context, filter VenueFilter, page Page) ([]*model.Venue, error) {
	db := r.db.WithContext(ctx).Model(&model.Venue{}).Where("is_active = ?", filter.IsActive)
	if filter.City != "" {
		db = db.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(filter.City)+"%")
	}
	if filter.Sport != "" {
		db = db.Where(jsonArrayContains("sports_available"), jsonElementPattern(filter.Sport))
	}
	var list []*model.Venue
	if err := page.apply(db.Order("rating DESC").Order("created_at ASC"), 20).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *venueRepository) Save(ctx context.Context, v *model.Venue) error {
	return r.db.WithContext(ctx).Save(v).Error
}

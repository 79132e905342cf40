package repository

import (
	"context"
	"fmt"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// Reel counter columns.
const (
	CounterViews    = "views_count"
	CounterLikes    = "likes_count"
	CounterComments = "comments_count"
	CounterShares   = "shares_count"
)

// ReelFilter 短视频列表筛选条件（仅返回未删除的）
type ReelFilter struct {
	Sport      string
	UserID     string
	PublicOnly bool
}

// ReelRepository 短视频、点赞与评论持久化
type ReelRepository interface {
	WithTx(tx *gorm.DB) ReelRepository
	Create(ctx context.Context, reel *model.Reel) error
	Get(ctx context.Context, id string) (*model.Reel, error)
	List(ctx context.Context, filter ReelFilter, page Page) ([]*model.Reel, error)
	ListByUser(ctx context.Context, userID string, page Page) ([]*model.Reel, error)
	// UpdateDetails writes the editable columns only; counters are left alone.
	UpdateDetails(ctx context.Context, reel *model.Reel) error
	SetActive(ctx context.Context, reelID string, active bool) error
	// Increment and Decrement change one counter in a single statement.
	// Decrement stops at zero.
	Increment(ctx context.Context, reelID, counter string) (int64, error)
	Decrement(ctx context.Context, reelID, counter string) (int64, error)

	CreateLike(ctx context.Context, like *model.ReelLike) error
	DeleteLike(ctx context.Context, reelID, userID string) (int64, error)
	HasLike(ctx context.Context, reelID, userID string) (bool, error)

	CreateComment(ctx context.Context, c *model.ReelComment) error
	GetComment(ctx context.Context, id string) (*model.ReelComment, error)
	ListComments(ctx context.Context, reelID string, page Page) ([]*model.ReelComment, error)
	DeleteComment(ctx context.Context, id string) (int64, error)
}

type reelRepository struct {
	db *gorm.DB
}

func NewReelRepository(db *gorm.DB) ReelRepository {
	return &reelRepository{db: db}
}

func (r *reelRepository) WithTx(tx *gorm.DB) ReelRepository {
	return &reelRepository{db: tx}
}

func (r *reelRepository) Create(ctx context.Context, reel *model.Reel) error {
	return r.db.WithContext(ctx).Create(reel).Error
}

func (r *reelRepository) Get(ctx context.Context, id string) (*model.Reel, error) {
	var reel model.Reel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reel).Error; err != nil {
		return nil, err
	}
	return &reel, nil
}

func (r *reelRepository) List(ctx context.Context, filter ReelFilter, page Page) ([]*model.Reel, error) {
	db := r.db.WithContext(ctx).Model(&model.Reel{}).Where("is_active = ?", true)
	if filter.PublicOnly {
		db = db.Where("is_public = ?", true)
	}
	if filter.Sport != "" {
		db = db.Where("sport = ?", filter.Sport)
	}
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	var list []*model.Reel
	if err := page.apply(db.Order("created_at DESC"), 20).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reelRepository) ListByUser(ctx context.Context, userID string, page Page) ([]*model.Reel, error) {
	db := r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true).Order("created_at DESC")
	var list []*model.Reel
	if err := page.apply(db, 20).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reelRepository) UpdateDetails(ctx context.Context, reel *model.Reel) error {
	return r.db.WithContext(ctx).Model(reel).
		Select("caption", "sport", "location", "hashtags", "is_public", "is_active").
		Updates(reel).Error
}

func (r *reelRepository) SetActive(ctx context.Context, reelID string, active bool) error {
	return r.db.WithContext(ctx).Model(&model.Reel{}).Where("id = ?", reelID).Update("is_active", active).Error
}

func (r *reelRepository) Increment(ctx context.Context, reelID, counter string) (int64, error) {
	if err := checkCounter(counter); err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Model(&model.Reel{}).Where("id = ?", reelID).
		UpdateColumn(counter, gorm.Expr(counter+" + 1"))
	return res.RowsAffected, res.Error
}

func (r *reelRepository) Decrement(ctx context.Context, reelID, counter string) (int64, error) {
	if err := checkCounter(counter); err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Model(&model.Reel{}).Where("id = ?", reelID).
		UpdateColumn(counter, gorm.Expr("CASE WHEN "+counter+" > 0 THEN "+counter+" - 1 ELSE 0 END"))
	return res.RowsAffected, res.Error
}

func checkCounter(counter string) error {
	switch counter {
	case CounterViews, CounterLikes, CounterComments, CounterShares:
		return nil
	}
	return fmt.Errorf("unknown reel counter %q", counter)
}

func (r *reelRepository) CreateLike(ctx context.Context, like *model.ReelLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *reelRepository) DeleteLike(ctx context.Context, reelID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("reel_id = ? AND user_id = ?", reelID, userID).Delete(&model.ReelLike{})
	return res.RowsAffected, res.Error
}

func (r *reelRepository) HasLike(ctx context.Context, reelID, userID string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.ReelLike{}).
		Where("reel_id = ? AND user_id = ?", reelID, userID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *reelRepository) CreateComment(ctx context.Context, c *model.ReelComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *reelRepository) GetComment(ctx context.Context, id string) (*model.ReelComment, error) {
	var c model.ReelComment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *reelRepository) ListComments(ctx context.Context, reelID string, page Page) ([]*model.ReelComment, error) {
	db := r.db.WithContext(ctx).Where("reel_id = ?", reelID).Order("created_at DESC")
	var list []*model.ReelComment
	if err := page.apply(db, 50).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reelRepository) DeleteComment(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReelComment{})
	return res.RowsAffected, res.Error
}

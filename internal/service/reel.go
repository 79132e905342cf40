package service

import (
	"context"
	"fmt"

	"OwlTurf/internal/metrics"
	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateReelRequest 发布短视频请求，video_url 为存储服务返回的文件路径
type CreateReelRequest struct {
	VideoURL     string   `json:"video_url" binding:"required"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	Caption      *string  `json:"caption" binding:"omitempty,max=2200"`
	Sport        *string  `json:"sport" binding:"omitempty,max=64"`
	Location     *string  `json:"location" binding:"omitempty,max=255"`
	Duration     *float64 `json:"duration" binding:"omitempty,gte=0"`
	Width        *int     `json:"width" binding:"omitempty,gte=0"`
	Height       *int     `json:"height" binding:"omitempty,gte=0"`
	FileSize     *int64   `json:"file_size" binding:"omitempty,gte=0"`
	Hashtags     []string `json:"hashtags"`
	TaggedUsers  []string `json:"tagged_users"`
	IsPublic     *bool    `json:"is_public"`
}

// UpdateReelRequest 部分更新短视频
type UpdateReelRequest struct {
	Caption  *string  `json:"caption" binding:"omitempty,max=2200"`
	Sport    *string  `json:"sport" binding:"omitempty,max=64"`
	Location *string  `json:"location" binding:"omitempty,max=255"`
	Hashtags []string `json:"hashtags"`
	IsPublic *bool    `json:"is_public"`
	IsActive *bool    `json:"is_active"`
}

// CommentRequest 评论请求
type CommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// ReelService 短视频互动。计数器只通过单条 SQL 表达式增减，删除为软删除。
type ReelService struct {
	db     *gorm.DB
	reels  repository.ReelRepository
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewReelService(db *gorm.DB, logger *logrus.Logger) *ReelService {
	return &ReelService{
		db:     db,
		reels:  repository.NewReelRepository(db),
		users:  repository.NewUserRepository(db),
		logger: logger,
	}
}

func (s *ReelService) Create(ctx context.Context, userID string, req *CreateReelRequest) (*model.Reel, error) {
	if _, err := s.users.GetByUID(ctx, userID); err != nil {
		return nil, wrapStore(err, "user")
	}
	reel := &model.Reel{
		UserID:       userID,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Caption:      req.Caption,
		Sport:        req.Sport,
		Location:     req.Location,
		Duration:     req.Duration,
		Width:        req.Width,
		Height:       req.Height,
		FileSize:     req.FileSize,
		Hashtags:     model.StringList(req.Hashtags),
		TaggedUsers:  model.StringList(req.TaggedUsers),
		IsPublic:     req.IsPublic == nil || *req.IsPublic,
		IsActive:     true,
	}
	if err := s.reels.Create(ctx, reel); err != nil {
		return nil, wrapStore(err, "reel")
	}
	s.logger.WithFields(logrus.Fields{"reel_id": reel.ID, "user_id": userID}).Info("reel created")
	return reel, nil
}

// View counts one view and returns the reel. Soft-deleted reels stay
// readable by id.
func (s *ReelService) View(ctx context.Context, reelID string) (*model.Reel, error) {
	n, err := s.reels.Increment(ctx, reelID, repository.CounterViews)
	if err != nil {
		return nil, wrapStore(err, "reel")
	}
	if n == 0 {
		return nil, notFound("reel")
	}
	metrics.RecordReelEngagement("view")
	return s.get(ctx, s.reels, reelID)
}

func (s *ReelService) get(ctx context.Context, reels repository.ReelRepository, reelID string) (*model.Reel, error) {
	r, err := reels.Get(ctx, reelID)
	if err != nil {
		return nil, wrapStore(err, "reel")
	}
	return r, nil
}

func (s *ReelService) List(ctx context.Context, filter repository.ReelFilter, page repository.Page) ([]*model.Reel, error) {
	list, err := s.reels.List(ctx, filter, page)
	if err != nil {
		return nil, wrapStore(err, "reels")
	}
	return list, nil
}

func (s *ReelService) ListByUser(ctx context.Context, userID string, page repository.Page) ([]*model.Reel, error) {
	list, err := s.reels.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, wrapStore(err, "reels")
	}
	return list, nil
}

func (s *ReelService) Update(ctx context.Context, reelID string, req *UpdateReelRequest) (*model.Reel, error) {
	r, err := s.get(ctx, s.reels, reelID)
	if err != nil {
		return nil, err
	}
	if req.Caption != nil {
		r.Caption = req.Caption
	}
	if req.Sport != nil {
		r.Sport = req.Sport
	}
	if req.Location != nil {
		r.Location = req.Location
	}
	if req.Hashtags != nil {
		r.Hashtags = model.StringList(req.Hashtags)
	}
	if req.IsPublic != nil {
		r.IsPublic = *req.IsPublic
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	if err := s.reels.UpdateDetails(ctx, r); err != nil {
		return nil, wrapStore(err, "reel")
	}
	return s.get(ctx, s.reels, reelID)
}

// Delete soft deletes the reel. Only the author may delete it.
func (s *ReelService) Delete(ctx context.Context, reelID, userID string) error {
	r, err := s.get(ctx, s.reels, reelID)
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return fmt.Errorf("only the author can delete this reel: %w", ErrForbidden)
	}
	if err := s.reels.SetActive(ctx, reelID, false); err != nil {
		return wrapStore(err, "reel")
	}
	s.logger.WithFields(logrus.Fields{"reel_id": reelID, "user_id": userID}).Info("reel deleted")
	return nil
}

// Like records one like per user. A second like fails with ErrAlreadyLiked.
func (s *ReelService) Like(ctx context.Context, reelID, userID string) (*model.Reel, error) {
	var reel *model.Reel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reels := s.reels.WithTx(tx)
		if _, err := reels.Get(ctx, reelID); err != nil {
			return wrapStore(err, "reel")
		}
		if _, err := s.users.WithTx(tx).GetByUID(ctx, userID); err != nil {
			return wrapStore(err, "user")
		}
		liked, err := reels.HasLike(ctx, reelID, userID)
		if err != nil {
			return wrapStore(err, "reel like")
		}
		if liked {
			return ErrAlreadyLiked
		}
		if err := reels.CreateLike(ctx, &model.ReelLike{ReelID: reelID, UserID: userID}); err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyLiked
			}
			return wrapStore(err, "reel like")
		}
		if _, err := reels.Increment(ctx, reelID, repository.CounterLikes); err != nil {
			return wrapStore(err, "reel")
		}
		r, err := s.get(ctx, reels, reelID)
		reel = r
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordReelEngagement("like")
	return reel, nil
}

// Unlike removes the user's like; ErrNotFound when there was none.
func (s *ReelService) Unlike(ctx context.Context, reelID, userID string) (*model.Reel, error) {
	var reel *model.Reel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reels := s.reels.WithTx(tx)
		if _, err := reels.Get(ctx, reelID); err != nil {
			return wrapStore(err, "reel")
		}
		n, err := reels.DeleteLike(ctx, reelID, userID)
		if err != nil {
			return wrapStore(err, "reel like")
		}
		if n == 0 {
			return notFound("like")
		}
		if _, err := reels.Decrement(ctx, reelID, repository.CounterLikes); err != nil {
			return wrapStore(err, "reel")
		}
		r, err := s.get(ctx, reels, reelID)
		reel = r
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordReelEngagement("unlike")
	return reel, nil
}

func (s *ReelService) Comment(ctx context.Context, reelID, userID string, req *CommentRequest) (*model.ReelComment, error) {
	comment := &model.ReelComment{ReelID: reelID, UserID: userID, Text: req.Text}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reels := s.reels.WithTx(tx)
		if _, err := reels.Get(ctx, reelID); err != nil {
			return wrapStore(err, "reel")
		}
		if _, err := s.users.WithTx(tx).GetByUID(ctx, userID); err != nil {
			return wrapStore(err, "user")
		}
		if err := reels.CreateComment(ctx, comment); err != nil {
			return wrapStore(err, "comment")
		}
		_, err := reels.Increment(ctx, reelID, repository.CounterComments)
		return wrapStore(err, "reel")
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordReelEngagement("comment")
	return comment, nil
}

func (s *ReelService) ListComments(ctx context.Context, reelID string, page repository.Page) ([]*model.ReelComment, error) {
	if _, err := s.get(ctx, s.reels, reelID); err != nil {
		return nil, err
	}
	list, err := s.reels.ListComments(ctx, reelID, page)
	if err != nil {
		return nil, wrapStore(err, "comments")
	}
	return list, nil
}

// DeleteComment removes a comment of reelID. Only its author may delete it.
func (s *ReelService) DeleteComment(ctx context.Context, reelID, commentID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reels := s.reels.WithTx(tx)
		c, err := reels.GetComment(ctx, commentID)
		if err != nil {
			return wrapStore(err, "comment")
		}
		if c.ReelID != reelID {
			return notFound("comment")
		}
		if c.UserID != userID {
			return fmt.Errorf("only the author can delete this comment: %w", ErrForbidden)
		}
		n, err := reels.DeleteComment(ctx, commentID)
		if err != nil {
			return wrapStore(err, "comment")
		}
		if n == 0 {
			return notFound("comment")
		}
		_, err = reels.Decrement(ctx, reelID, repository.CounterComments)
		return wrapStore(err, "reel")
	})
}

func (s *ReelService) Share(ctx context.Context, reelID, userID string) (*model.Reel, error) {
	n, err := s.reels.Increment(ctx, reelID, repository.CounterShares)
	if err != nil {
		return nil, wrapStore(err, "reel")
	}
	if n == 0 {
		return nil, notFound("reel")
	}
	metrics.RecordReelEngagement("share")
	s.logger.WithFields(logrus.Fields{"reel_id": reelID, "user_id": userID}).Debug("reel shared")
	return s.get(ctx, s.reels, reelID)
}

package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reel is a short video post. Counters are only changed with single SQL
// expressions and never drop below zero.
type Reel struct {
	ID            string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID        string         `gorm:"column:user_id;type:varchar(128);index;not null" json:"user_id"`
	VideoURL      string         `gorm:"column:video_url;type:varchar(512);not null;comment:storage path" json:"video_url"`
	ThumbnailURL  *string        `gorm:"column:thumbnail_url;type:varchar(512)" json:"thumbnail_url"`
	Caption       *string        `gorm:"column:caption;type:text" json:"caption"`
	Sport         *string        `gorm:"column:sport;type:varchar(64);index" json:"sport"`
	Location      *string        `gorm:"column:location;type:varchar(255)" json:"location"`
	Duration      *float64       `gorm:"column:duration;comment:seconds" json:"duration"`
	Width         *int           `gorm:"column:width" json:"width"`
	Height        *int           `gorm:"column:height" json:"height"`
	FileSize      *int64         `gorm:"column:file_size;comment:bytes" json:"file_size"`
	ViewsCount    int            `gorm:"column:views_count;not null" json:"views_count"`
	LikesCount    int            `gorm:"column:likes_count;not null" json:"likes_count"`
	CommentsCount int            `gorm:"column:comments_count;not null" json:"comments_count"`
	SharesCount   int            `gorm:"column:shares_count;not null" json:"shares_count"`
	Hashtags      datatypes.JSON `gorm:"column:hashtags" json:"hashtags"`
	TaggedUsers   datatypes.JSON `gorm:"column:tagged_users" json:"tagged_users"`
	IsPublic      bool           `gorm:"column:is_public;type:boolean;not null" json:"is_public"`
	IsActive      bool           `gorm:"column:is_active;type:boolean;index;not null" json:"is_active"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// ReelLike allows one like per (reel, user).
type ReelLike struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ReelID    string    `gorm:"column:reel_id;type:varchar(36);uniqueIndex:uk_reel_like;not null" json:"reel_id"`
	UserID    string    `gorm:"column:user_id;type:varchar(128);uniqueIndex:uk_reel_like;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type ReelComment struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ReelID     string    `gorm:"column:reel_id;type:varchar(36);index;not null" json:"reel_id"`
	UserID     string    `gorm:"column:user_id;type:varchar(128);not null" json:"user_id"`
	Text       string    `gorm:"column:text;type:text;not null" json:"text"`
	LikesCount int       `gorm:"column:likes_count;not null" json:"likes_count"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Reel) TableName() string        { return "reels" }
func (ReelLike) TableName() string    { return "reel_likes" }
func (ReelComment) TableName() string { return "reel_comments" }

func (r *Reel) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}

func (l *ReelLike) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = newID()
	}
	return nil
}

func (c *ReelComment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// Booking is a user's reservation snapshot. Venue details are copied at
// booking time and do not follow later venue edits.
type Booking struct {
	ID            string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID        string    `gorm:"column:user_id;type:varchar(128);index;not null" json:"user_id"`
	Sport         string    `gorm:"column:sport;type:varchar(64);not null" json:"sport"`
	VenueName     string    `gorm:"column:venue_name;type:varchar(255);not null" json:"venue_name"`
	VenueAddress  string    `gorm:"column:venue_address;type:text;not null" json:"venue_address"`
	VenueImageURL *string   `gorm:"column:venue_image_url;type:varchar(512)" json:"venue_image_url"`
	Date          string    `gorm:"column:date;type:varchar(10);not null;comment:YYYY-MM-DD" json:"date"`
	StartTime     string    `gorm:"column:start_time;type:varchar(5);not null;comment:HH:MM" json:"start_time"`
	EndTime       string    `gorm:"column:end_time;type:varchar(5);not null;comment:HH:MM" json:"end_time"`
	Duration      int       `gorm:"column:duration;not null;comment:minutes" json:"duration"`
	Price         float64   `gorm:"column:price;not null" json:"price"`
	Status        string    `gorm:"column:status;type:varchar(16);index;not null" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	return nil
}

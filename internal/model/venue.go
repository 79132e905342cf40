package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Venue is soft deleted through IsActive and stays readable by id afterwards.
type Venue struct {
	ID              string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name            string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description     *string        `gorm:"column:description;type:text" json:"description"`
	Address         string         `gorm:"column:address;type:text;not null" json:"address"`
	City            string         `gorm:"column:city;type:varchar(128);index;not null" json:"city"`
	State           string         `gorm:"column:state;type:varchar(128);not null" json:"state"`
	Pincode         string         `gorm:"column:pincode;type:varchar(16);not null" json:"pincode"`
	Latitude        *float64       `gorm:"column:latitude" json:"latitude"`
	Longitude       *float64       `gorm:"column:longitude" json:"longitude"`
	ImageURLs       datatypes.JSON `gorm:"column:image_urls;comment:ordered storage paths" json:"image_urls"`
	ThumbnailURL    *string        `gorm:"column:thumbnail_url;type:varchar(512)" json:"thumbnail_url"`
	SportsAvailable datatypes.JSON `gorm:"column:sports_available" json:"sports_available"`
	Amenities       datatypes.JSON `gorm:"column:amenities" json:"amenities"`
	PricePerHour    float64        `gorm:"column:price_per_hour;not null" json:"price_per_hour"`
	Rating          float64        `gorm:"column:rating;not null" json:"rating"`
	TotalReviews    int            `gorm:"column:total_reviews;not null" json:"total_reviews"`
	OpeningTime     *string        `gorm:"column:opening_time;type:varchar(5)" json:"opening_time"`
	ClosingTime     *string        `gorm:"column:closing_time;type:varchar(5)" json:"closing_time"`
	IsActive        bool           `gorm:"column:is_active;type:boolean;index;not null" json:"is_active"`
	TotalCourts     int            `gorm:"column:total_courts;not null" json:"total_courts"`
	ContactPhone    *string        `gorm:"column:contact_phone;type:varchar(32)" json:"contact_phone"`
	ContactEmail    *string        `gorm:"column:contact_email;type:varchar(255)" json:"contact_email"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Venue) TableName() string { return "venues" }

func (v *Venue) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = newID()
	}
	return nil
}

package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is keyed by the identity provider uid supplied by the client.
// At least one of Email or PhoneNumber is set.
type User struct {
	UID          string         `gorm:"column:uid;type:varchar(128);primaryKey;comment:identity provider uid" json:"uid"`
	Email        *string        `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	PhoneNumber  *string        `gorm:"column:phone_number;type:varchar(32);uniqueIndex" json:"phone_number"`
	DisplayName  *string        `gorm:"column:display_name;type:varchar(128)" json:"display_name"`
	PhotoURL     *string        `gorm:"column:photo_url;type:varchar(512);comment:storage path" json:"photo_url"`
	Name         *string        `gorm:"column:name;type:varchar(128)" json:"name"`
	Age          *int           `gorm:"column:age" json:"age"`
	Gender       *string        `gorm:"column:gender;type:varchar(32)" json:"gender"`
	Sports       datatypes.JSON `gorm:"column:sports" json:"sports"`
	Interests    datatypes.JSON `gorm:"column:interests" json:"interests"`
	AuthProvider string         `gorm:"column:auth_provider;type:varchar(16);not null" json:"auth_provider"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Address belongs to a user. At most one address per user has IsDefault set.
type Address struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;type:varchar(128);index;not null" json:"user_id"`
	Name        string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Mobile      string    `gorm:"column:mobile;type:varchar(32);not null" json:"mobile"`
	Pincode     string    `gorm:"column:pincode;type:varchar(16);not null" json:"pincode"`
	HouseNumber string    `gorm:"column:house_number;type:varchar(64)" json:"house_number"`
	Address     string    `gorm:"column:address;type:text;not null" json:"address"`
	Locality    string    `gorm:"column:locality;type:varchar(128)" json:"locality"`
	City        string    `gorm:"column:city;type:varchar(128);not null" json:"city"`
	State       string    `gorm:"column:state;type:varchar(128);not null" json:"state"`
	Type        string    `gorm:"column:type;type:varchar(16);not null;comment:home/office" json:"type"`
	IsDefault   bool      `gorm:"column:is_default;type:boolean;not null" json:"is_default"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string    { return "users" }
func (Address) TableName() string { return "addresses" }

func (a *Address) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

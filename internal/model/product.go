package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a catalog item. The id is chosen by the client.
type Product struct {
	ID          string         `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name        string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category    string         `gorm:"column:category;type:varchar(64);index;not null" json:"category"`
	Rating      float64        `gorm:"column:rating;not null" json:"rating"`
	Reviews     string         `gorm:"column:reviews;type:varchar(32);comment:display string e.g. 1.2k" json:"reviews"`
	MRP         int            `gorm:"column:mrp;not null" json:"mrp"`
	Price       int            `gorm:"column:price;not null" json:"price"`
	ImageURL    string         `gorm:"column:image_url;type:varchar(512);comment:storage path" json:"image_url"`
	ImageURLs   datatypes.JSON `gorm:"column:image_urls" json:"image_urls"`
	Sizes       datatypes.JSON `gorm:"column:sizes" json:"sizes"`
	Description *string        `gorm:"column:description;type:text" json:"description"`
	Discount    int            `gorm:"-" json:"discount"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// discountPercent is the whole percent off MRP, 0 when MRP is not positive.
func (p *Product) discountPercent() int {
	if p.MRP <= 0 {
		return 0
	}
	return int(float64(p.MRP-p.Price) / float64(p.MRP) * 100)
}

func (p *Product) AfterFind(*gorm.DB) error {
	p.Discount = p.discountPercent()
	return nil
}

func (p *Product) AfterSave(*gorm.DB) error {
	p.Discount = p.discountPercent()
	return nil
}

// CartItem is one cart line. (UserID, ProductID, Size) identifies a line;
// adding the same key again merges quantities.
type CartItem struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(128);index;not null" json:"user_id"`
	ProductID string    `gorm:"column:product_id;type:varchar(64);index;not null" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	Size      *string   `gorm:"column:size;type:varchar(16)" json:"size"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string  { return "products" }
func (CartItem) TableName() string { return "cart_items" }

func (c *CartItem) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

package model

import "gorm.io/gorm"

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Wallet{},
		&Transaction{},
		&Address{},
		&Product{},
		&CartItem{},
		&Booking{},
		&Venue{},
		&Game{},
		&GamePlayer{},
		&Reel{},
		&ReelLike{},
		&ReelComment{},
	}
}

// AutoMigrate creates missing tables, columns and indexes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// balances render as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Wallet is the single balance account of a user.
type Wallet struct {
	ID        string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID    string          `gorm:"column:user_id;type:varchar(128);uniqueIndex;not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric(14,2);not null" json:"balance"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Transaction is an append-only ledger entry. Only Status may change after insert.
type Transaction struct {
	ID          string          `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	WalletID    string          `gorm:"column:wallet_id;type:varchar(36);index;not null" json:"wallet_id"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	Type        string          `gorm:"column:type;type:varchar(8);not null;comment:credit/debit" json:"type"`
	Status      string          `gorm:"column:status;type:varchar(16);not null;comment:pending/success/failed" json:"status"`
	Description *string         `gorm:"column:description;type:text" json:"description"`
	ReferenceID *string         `gorm:"column:reference_id;type:varchar(128)" json:"reference_id"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Wallet) TableName() string      { return "wallets" }
func (Transaction) TableName() string { return "transactions" }

func (w *Wallet) BeforeCreate(*gorm.DB) error {
	if w.ID == "" {
		w.ID = newID()
	}
	return nil
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}

package repository

import (
	"context"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// WalletRepository 钱包与流水持久化
type WalletRepository interface {
	WithTx(tx *gorm.DB) WalletRepository
	Create(ctx context.Context, wallet *model.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*model.Wallet, error)
	// GetByUserIDForUpdate locks the wallet row until the transaction ends.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*model.Wallet, error)
	UpdateBalance(ctx context.Context, wallet *model.Wallet) error
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	ListTransactions(ctx context.Context, walletID string, page Page) ([]*model.Transaction, error)
	GetTransaction(ctx context.Context, walletID, transactionID string) (*model.Transaction, error)
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) WithTx(tx *gorm.DB) WalletRepository {
	return &walletRepository{db: tx}
}

func (r *walletRepository) Create(ctx context.Context, wallet *model.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID string) (*model.Wallet, error) {
	var w model.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*model.Wallet, error) {
	var w model.Wallet
	if err := forUpdate(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) UpdateBalance(ctx context.Context, wallet *model.Wallet) error {
	return r.db.WithContext(ctx).Model(wallet).Update("balance", wallet.Balance).Error
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *walletRepository) ListTransactions(ctx context.Context, walletID string, page Page) ([]*model.Transaction, error) {
	var list []*model.Transaction
	db := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).Order("created_at DESC").Order("id DESC")
	if err := page.apply(db, 100).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *walletRepository) GetTransaction(ctx context.Context, walletID, transactionID string) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.db.WithContext(ctx).Where("id = ? AND wallet_id = ?", transactionID, walletID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"OwlTurf/internal/metrics"
	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TransactionRequest 钱包记账请求
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=credit debit"`
	Description *string         `json:"description"`
	ReferenceID *string         `json:"reference_id"`
}

// WalletService 钱包余额与流水。记账在单个事务内锁定钱包行完成，
// 扣款失败时余额与流水均不变。
type WalletService struct {
	db      *gorm.DB
	wallets repository.WalletRepository
	users   repository.UserRepository
	logger  *logrus.Logger
}

func NewWalletService(db *gorm.DB, logger *logrus.Logger) *WalletService {
	return &WalletService{
		db:      db,
		wallets: repository.NewWalletRepository(db),
		users:   repository.NewUserRepository(db),
		logger:  logger,
	}
}

// GetWallet returns the user's wallet, creating an empty one for users that
// predate automatic wallet creation.
func (s *WalletService) GetWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	var wallet *model.Wallet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := s.walletOrCreate(ctx, tx, userID, false)
		wallet = w
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *WalletService) walletOrCreate(ctx context.Context, tx *gorm.DB, userID string, lock bool) (*model.Wallet, error) {
	wallets := s.wallets.WithTx(tx)
	get := wallets.GetByUserID
	if lock {
		get = wallets.GetByUserIDForUpdate
	}
	w, err := get(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapStore(err, "wallet")
	}
	if _, err := s.users.WithTx(tx).GetByUID(ctx, userID); err != nil {
		return nil, wrapStore(err, "user")
	}
	w = &model.Wallet{UserID: userID, Balance: decimal.Zero}
	if err := wallets.Create(ctx, w); err != nil {
		return nil, wrapStore(err, "wallet")
	}
	return w, nil
}

// ApplyTransaction credits or debits the wallet and appends a ledger row
// with status success. A debit larger than the balance fails with
// ErrInsufficientBalance and writes nothing.
func (s *WalletService) ApplyTransaction(ctx context.Context, userID string, req *TransactionRequest) (*model.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, invalid("amount must be greater than zero")
	}
	if req.Type != model.TxCredit && req.Type != model.TxDebit {
		return nil, invalid("type must be credit or debit")
	}
	amount := req.Amount.Round(2)

	var record *model.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := s.walletOrCreate(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		switch req.Type {
		case model.TxCredit:
			w.Balance = w.Balance.Add(amount)
		case model.TxDebit:
			if w.Balance.LessThan(amount) {
				return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientBalance, w.Balance.StringFixed(2), amount.StringFixed(2))
			}
			w.Balance = w.Balance.Sub(amount)
		}

		wallets := s.wallets.WithTx(tx)
		record = &model.Transaction{
			WalletID:    w.ID,
			Amount:      amount,
			Type:        req.Type,
			Status:      model.TxSuccess,
			Description: req.Description,
			ReferenceID: req.ReferenceID,
		}
		if err := wallets.CreateTransaction(ctx, record); err != nil {
			return wrapStore(err, "transaction")
		}
		return wrapStore(wallets.UpdateBalance(ctx, w), "wallet")
	})
	if err != nil {
		metrics.RecordWalletTransaction(req.Type, "rejected")
		return nil, err
	}
	metrics.RecordWalletTransaction(req.Type, "success")
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"type":    req.Type,
		"amount":  amount.StringFixed(2),
	}).Info("wallet transaction applied")
	return record, nil
}

func (s *WalletService) ListTransactions(ctx context.Context, userID string, page repository.Page) ([]*model.Transaction, error) {
	w, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, wrapStore(err, "wallet")
	}
	list, err := s.wallets.ListTransactions(ctx, w.ID, page)
	if err != nil {
		return nil, wrapStore(err, "transactions")
	}
	return list, nil
}

func (s *WalletService) GetTransaction(ctx context.Context, userID, transactionID string) (*model.Transaction, error) {
	w, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, wrapStore(err, "wallet")
	}
	t, err := s.wallets.GetTransaction(ctx, w.ID, transactionID)
	if err != nil {
		return nil, wrapStore(err, "transaction")
	}
	return t, nil
}

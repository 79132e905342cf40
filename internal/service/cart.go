package service

import (
	"context"
	"errors"
	"fmt"

	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"omitempty,gte=1,lte=99"`
	Size      *string `json:"size" binding:"omitempty,max=16"`
}

// UpdateCartItemRequest 修改数量或尺码
type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity" binding:"omitempty,gte=1,lte=99"`
	Size     *string `json:"size" binding:"omitempty,max=16"`
}

// CartService 购物车。同一 (用户, 商品, 尺码) 只保留一行，重复加入累加数量。
type CartService struct {
	db       *gorm.DB
	cart     repository.CartRepository
	users    repository.UserRepository
	products repository.ProductRepository
	logger   *logrus.Logger
}

func NewCartService(db *gorm.DB, logger *logrus.Logger) *CartService {
	return &CartService{
		db:       db,
		cart:     repository.NewCartRepository(db),
		users:    repository.NewUserRepository(db),
		products: repository.NewProductRepository(db),
		logger:   logger,
	}
}

func (s *CartService) Add(ctx context.Context, userID string, req *CartItemRequest) (*model.CartItem, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, invalid("quantity must be at least 1")
	}
	var itemID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).GetByUIDForUpdate(ctx, userID); err != nil {
			return wrapStore(err, "user")
		}
		if _, err := s.products.WithTx(tx).Get(ctx, req.ProductID); err != nil {
			return wrapStore(err, "product")
		}
		cart := s.cart.WithTx(tx)
		line, err := cart.FindLine(ctx, userID, req.ProductID, req.Size)
		switch {
		case err == nil:
			if _, err := cart.AddQuantity(ctx, line.ID, qty); err != nil {
				return wrapStore(err, "cart item")
			}
			itemID = line.ID
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := &model.CartItem{UserID: userID, ProductID: req.ProductID, Quantity: qty, Size: req.Size}
			if err := cart.Create(ctx, item); err != nil {
				return wrapStore(err, "cart item")
			}
			itemID = item.ID
			return nil
		default:
			return wrapStore(err, "cart item")
		}
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, itemID)
}

func (s *CartService) List(ctx context.Context, userID string) ([]*model.CartItem, error) {
	list, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapStore(err, "cart")
	}
	return list, nil
}

func (s *CartService) Get(ctx context.Context, userID, itemID string) (*model.CartItem, error) {
	item, err := s.cart.Get(ctx, userID, itemID)
	if err != nil {
		return nil, wrapStore(err, "cart item")
	}
	return item, nil
}

// Update changes quantity or size. Moving a line onto a size that already
// has its own line is a conflict.
func (s *CartService) Update(ctx context.Context, userID, itemID string, req *UpdateCartItemRequest) (*model.CartItem, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).GetByUIDForUpdate(ctx, userID); err != nil {
			return wrapStore(err, "cart item")
		}
		cart := s.cart.WithTx(tx)
		item, err := cart.Get(ctx, userID, itemID)
		if err != nil {
			return wrapStore(err, "cart item")
		}
		if req.Quantity != nil {
			if *req.Quantity < 1 {
				return invalid("quantity must be at least 1")
			}
			item.Quantity = *req.Quantity
		}
		if req.Size != nil && !sameSize(item.Size, req.Size) {
			other, err := cart.FindLine(ctx, userID, item.ProductID, req.Size)
			if err == nil && other.ID != item.ID {
				return fmt.Errorf("cart already has this product in size %s: %w", *req.Size, ErrConflict)
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return wrapStore(err, "cart item")
			}
			item.Size = req.Size
		}
		return wrapStore(cart.Save(ctx, item), "cart item")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, itemID)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	n, err := s.cart.Delete(ctx, userID, itemID)
	if err != nil {
		return wrapStore(err, "cart item")
	}
	if n == 0 {
		return notFound("cart item")
	}
	return nil
}

// Clear empties the cart and reports how many lines were removed.
func (s *CartService) Clear(ctx context.Context, userID string) (int64, error) {
	n, err := s.cart.Clear(ctx, userID)
	if err != nil {
		return 0, wrapStore(err, "cart")
	}
	return n, nil
}

func sameSize(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

package service

import (
	"context"
	"fmt"

	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProductRequest 创建商品请求，id 由客户端指定
type ProductRequest struct {
	ID          string   `json:"id" binding:"required,max=64"`
	Name        string   `json:"name" binding:"required,max=255"`
	Category    string   `json:"category" binding:"required,max=64"`
	Rating      float64  `json:"rating" binding:"gte=0,lte=5"`
	Reviews     string   `json:"reviews" binding:"max=32"`
	MRP         int      `json:"mrp" binding:"gte=0"`
	Price       int      `json:"price" binding:"gte=0"`
	ImageURL    string   `json:"image_url"`
	ImageURLs   []string `json:"image_urls"`
	Sizes       []string `json:"sizes"`
	Description *string  `json:"description"`
}

// UpdateProductRequest 部分更新商品
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Category    *string  `json:"category" binding:"omitempty,max=64"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Reviews     *string  `json:"reviews" binding:"omitempty,max=32"`
	MRP         *int     `json:"mrp" binding:"omitempty,gte=0"`
	Price       *int     `json:"price" binding:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url"`
	ImageURLs   []string `json:"image_urls"`
	Sizes       []string `json:"sizes"`
	Description *string  `json:"description"`
}

// ProductService 商品目录
type ProductService struct {
	db       *gorm.DB
	products repository.ProductRepository
	logger   *logrus.Logger
}

func NewProductService(db *gorm.DB, logger *logrus.Logger) *ProductService {
	return &ProductService{
		db:       db,
		products: repository.NewProductRepository(db),
		logger:   logger,
	}
}

func (s *ProductService) Create(ctx context.Context, req *ProductRequest) (*model.Product, error) {
	exists, err := s.products.Exists(ctx, req.ID)
	if err != nil {
		return nil, wrapStore(err, "product")
	}
	if exists {
		return nil, fmt.Errorf("product %s already exists: %w", req.ID, ErrConflict)
	}
	p := &model.Product{
		ID:          req.ID,
		Name:        req.Name,
		Category:    req.Category,
		Rating:      req.Rating,
		Reviews:     req.Reviews,
		MRP:         req.MRP,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		ImageURLs:   model.StringList(req.ImageURLs),
		Sizes:       model.StringList(req.Sizes),
		Description: req.Description,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, wrapStore(err, "product")
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, wrapStore(err, "product")
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, category string, page repository.Page) ([]*model.Product, error) {
	list, err := s.products.List(ctx, category, page)
	if err != nil {
		return nil, wrapStore(err, "products")
	}
	return list, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req *UpdateProductRequest) (*model.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, wrapStore(err, "product")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.Reviews != nil {
		p.Reviews = *req.Reviews
	}
	if req.MRP != nil {
		p.MRP = *req.MRP
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.ImageURLs != nil {
		p.ImageURLs = model.StringList(req.ImageURLs)
	}
	if req.Sizes != nil {
		p.Sizes = model.StringList(req.Sizes)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, wrapStore(err, "product")
	}
	return p, nil
}

// Delete removes the product and the cart lines referencing it.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.products.WithTx(tx).Delete(ctx, id)
		if err != nil {
			return wrapStore(err, "product")
		}
		if n == 0 {
			return notFound("product")
		}
		return nil
	})
}

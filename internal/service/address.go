package service

import (
	"context"

	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddressRequest 创建地址请求
type AddressRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Mobile      string `json:"mobile" binding:"required,max=32"`
	Pincode     string `json:"pincode" binding:"required,max=16"`
	HouseNumber string `json:"house_number" binding:"max=64"`
	Address     string `json:"address" binding:"required"`
	Locality    string `json:"locality" binding:"max=128"`
	City        string `json:"city" binding:"required,max=128"`
	State       string `json:"state" binding:"required,max=128"`
	Type        string `json:"type" binding:"omitempty,oneof=home office"`
	IsDefault   bool   `json:"is_default"`
}

// UpdateAddressRequest 部分更新地址
type UpdateAddressRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=128"`
	Mobile      *string `json:"mobile" binding:"omitempty,max=32"`
	Pincode     *string `json:"pincode" binding:"omitempty,max=16"`
	HouseNumber *string `json:"house_number" binding:"omitempty,max=64"`
	Address     *string `json:"address"`
	Locality    *string `json:"locality" binding:"omitempty,max=128"`
	City        *string `json:"city" binding:"omitempty,max=128"`
	State       *string `json:"state" binding:"omitempty,max=128"`
	Type        *string `json:"type" binding:"omitempty,oneof=home office"`
	IsDefault   *bool   `json:"is_default"`
}

// AddressService 用户地址。每个用户最多一个默认地址：设为默认时先在同一事务内清除其他默认标记。
type AddressService struct {
	db        *gorm.DB
	addresses repository.AddressRepository
	users     repository.UserRepository
	logger    *logrus.Logger
}

func NewAddressService(db *gorm.DB, logger *logrus.Logger) *AddressService {
	return &AddressService{
		db:        db,
		addresses: repository.NewAddressRepository(db),
		users:     repository.NewUserRepository(db),
		logger:    logger,
	}
}

func (s *AddressService) Create(ctx context.Context, userID string, req *AddressRequest) (*model.Address, error) {
	addrType := req.Type
	if addrType == "" {
		addrType = model.AddressHome
	}
	addr := &model.Address{
		UserID:      userID,
		Name:        req.Name,
		Mobile:      req.Mobile,
		Pincode:     req.Pincode,
		HouseNumber: req.HouseNumber,
		Address:     req.Address,
		Locality:    req.Locality,
		City:        req.City,
		State:       req.State,
		Type:        addrType,
		IsDefault:   req.IsDefault,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).GetByUIDForUpdate(ctx, userID); err != nil {
			return wrapStore(err, "user")
		}
		addresses := s.addresses.WithTx(tx)
		if addr.IsDefault {
			if err := addresses.ClearDefault(ctx, userID, ""); err != nil {
				return wrapStore(err, "address")
			}
		}
		return wrapStore(addresses.Create(ctx, addr), "address")
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) List(ctx context.Context, userID string) ([]*model.Address, error) {
	list, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapStore(err, "addresses")
	}
	return list, nil
}

func (s *AddressService) Get(ctx context.Context, userID, addressID string) (*model.Address, error) {
	a, err := s.addresses.Get(ctx, userID, addressID)
	if err != nil {
		return nil, wrapStore(err, "address")
	}
	return a, nil
}

func (s *AddressService) Update(ctx context.Context, userID, addressID string, req *UpdateAddressRequest) (*model.Address, error) {
	var addr *model.Address
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).GetByUIDForUpdate(ctx, userID); err != nil {
			return wrapStore(err, "address")
		}
		addresses := s.addresses.WithTx(tx)
		a, err := addresses.Get(ctx, userID, addressID)
		if err != nil {
			return wrapStore(err, "address")
		}
		applyAddressUpdate(a, req)
		if a.IsDefault {
			if err := addresses.ClearDefault(ctx, userID, a.ID); err != nil {
				return wrapStore(err, "address")
			}
		}
		if err := addresses.Save(ctx, a); err != nil {
			return wrapStore(err, "address")
		}
		addr = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

// SetDefault marks one address as the user's default and clears the rest.
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID string) (*model.Address, error) {
	isDefault := true
	return s.Update(ctx, userID, addressID, &UpdateAddressRequest{IsDefault: &isDefault})
}

func (s *AddressService) Delete(ctx context.Context, userID, addressID string) error {
	n, err := s.addresses.Delete(ctx, userID, addressID)
	if err != nil {
		return wrapStore(err, "address")
	}
	if n == 0 {
		return notFound("address")
	}
	return nil
}

func applyAddressUpdate(a *model.Address, req *UpdateAddressRequest) {
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Mobile != nil {
		a.Mobile = *req.Mobile
	}
	if req.Pincode != nil {
		a.Pincode = *req.Pincode
	}
	if req.HouseNumber != nil {
		a.HouseNumber = *req.HouseNumber
	}
	if req.Address != nil {
		a.Address = *req.Address
	}
	if req.Locality != nil {
		a.Locality = *req.Locality
	}
	if req.City != nil {
		a.City = *req.City
	}
	if req.State != nil {
		a.State = *req.State
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.IsDefault != nil {
		a.IsDefault = *req.IsDefault
	}
}

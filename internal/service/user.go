package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateUserRequest 创建用户请求，email 与 phone_number 至少提供一个
type CreateUserRequest struct {
	UID          string   `json:"uid" binding:"required,max=128"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	PhoneNumber  *string  `json:"phone_number" binding:"omitempty,max=32"`
	DisplayName  *string  `json:"display_name"`
	PhotoURL     *string  `json:"photo_url"`
	Name         *string  `json:"name"`
	Age          *int     `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender       *string  `json:"gender"`
	Sports       []string `json:"sports"`
	Interests    []string `json:"interests"`
	AuthProvider string   `json:"auth_provider" binding:"omitempty,oneof=email phone google"`
}

// UpdateUserRequest 部分更新，nil 字段保持不变
type UpdateUserRequest struct {
	Email        *string  `json:"email" binding:"omitempty,email"`
	PhoneNumber  *string  `json:"phone_number" binding:"omitempty,max=32"`
	DisplayName  *string  `json:"display_name"`
	PhotoURL     *string  `json:"photo_url"`
	Name         *string  `json:"name"`
	Age          *int     `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender       *string  `json:"gender"`
	Sports       []string `json:"sports"`
	Interests    []string `json:"interests"`
	AuthProvider *string  `json:"auth_provider" binding:"omitempty,oneof=email phone google"`
}

// UserService 用户管理。创建用户时同一事务内创建零余额钱包，删除时级联清理。
type UserService struct {
	db      *gorm.DB
	users   repository.UserRepository
	wallets repository.WalletRepository
	logger  *logrus.Logger
}

func NewUserService(db *gorm.DB, logger *logrus.Logger) *UserService {
	return &UserService{
		db:      db,
		users:   repository.NewUserRepository(db),
		wallets: repository.NewWalletRepository(db),
		logger:  logger,
	}
}

func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*model.User, error) {
	req.UID = strings.TrimSpace(req.UID)
	if req.UID == "" {
		return nil, invalid("uid is required")
	}
	if blank(req.Email) && blank(req.PhoneNumber) {
		return nil, invalid("either email or phone_number is required")
	}
	provider := req.AuthProvider
	if provider == "" {
		provider = model.AuthEmail
	}
	user := &model.User{
		UID:          req.UID,
		Email:        nilIfBlank(req.Email),
		PhoneNumber:  nilIfBlank(req.PhoneNumber),
		DisplayName:  req.DisplayName,
		PhotoURL:     req.PhotoURL,
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		Sports:       model.StringList(req.Sports),
		Interests:    model.StringList(req.Interests),
		AuthProvider: provider,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		_, err := users.GetByUID(ctx, user.UID)
		if err == nil {
			return fmt.Errorf("user %s already exists: %w", user.UID, ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return wrapStore(err, "user")
		}
		if err := s.checkUnique(ctx, users, user, ""); err != nil {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			return wrapStore(err, "user")
		}
		wallet := &model.Wallet{UserID: user.UID, Balance: decimal.Zero}
		return wrapStore(s.wallets.WithTx(tx).Create(ctx, wallet), "wallet")
	})
	if err != nil {
		return nil, err
	}
	s.logger.WithField("uid", user.UID).Info("user created")
	return user, nil
}

func (s *UserService) checkUnique(ctx context.Context, users repository.UserRepository, user *model.User, exceptUID string) error {
	if user.Email != nil {
		taken, err := users.ExistsBy(ctx, "email", *user.Email, exceptUID)
		if err != nil {
			return wrapStore(err, "user")
		}
		if taken {
			return fmt.Errorf("email already registered: %w", ErrConflict)
		}
	}
	if user.PhoneNumber != nil {
		taken, err := users.ExistsBy(ctx, "phone_number", *user.PhoneNumber, exceptUID)
		if err != nil {
			return wrapStore(err, "user")
		}
		if taken {
			return fmt.Errorf("phone number already registered: %w", ErrConflict)
		}
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, uid string) (*model.User, error) {
	u, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, wrapStore(err, "user")
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, page repository.Page) ([]*model.User, error) {
	list, err := s.users.List(ctx, page)
	if err != nil {
		return nil, wrapStore(err, "users")
	}
	return list, nil
}

func (s *UserService) Update(ctx context.Context, uid string, req *UpdateUserRequest) (*model.User, error) {
	var user *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		u, err := users.GetByUID(ctx, uid)
		if err != nil {
			return wrapStore(err, "user")
		}
		if req.Email != nil {
			u.Email = nilIfBlank(req.Email)
		}
		if req.PhoneNumber != nil {
			u.PhoneNumber = nilIfBlank(req.PhoneNumber)
		}
		if u.Email == nil && u.PhoneNumber == nil {
			return invalid("either email or phone_number is required")
		}
		if err := s.checkUnique(ctx, users, u, uid); err != nil {
			return err
		}
		if req.DisplayName != nil {
			u.DisplayName = req.DisplayName
		}
		if req.PhotoURL != nil {
			u.PhotoURL = req.PhotoURL
		}
		if req.Name != nil {
			u.Name = req.Name
		}
		if req.Age != nil {
			u.Age = req.Age
		}
		if req.Gender != nil {
			u.Gender = req.Gender
		}
		if req.Sports != nil {
			u.Sports = model.StringList(req.Sports)
		}
		if req.Interests != nil {
			u.Interests = model.StringList(req.Interests)
		}
		if req.AuthProvider != nil {
			u.AuthProvider = *req.AuthProvider
		}
		if err := users.Save(ctx, u); err != nil {
			return wrapStore(err, "user")
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user and everything owned through user_id.
func (s *UserService) Delete(ctx context.Context, uid string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.users.WithTx(tx).DeleteWithDependents(ctx, uid)
		if err != nil {
			return wrapStore(err, "user")
		}
		if n == 0 {
			return notFound("user")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.WithField("uid", uid).Info("user deleted")
	return nil
}

func blank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

func nilIfBlank(v *string) *string {
	if blank(v) {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

package service

import (
	"context"

	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingRequest 创建预订请求
type BookingRequest struct {
	Sport         string  `json:"sport" binding:"required,max=64"`
	VenueName     string  `json:"venue_name" binding:"required,max=255"`
	VenueAddress  string  `json:"venue_address" binding:"required"`
	VenueImageURL *string `json:"venue_image_url"`
	Date          string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime     string  `json:"start_time" binding:"required,clock"`
	EndTime       string  `json:"end_time" binding:"required,clock"`
	Duration      int     `json:"duration" binding:"required,gt=0"`
	Price         float64 `json:"price" binding:"gte=0"`
	Status        string  `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
}

// UpdateBookingRequest 只允许修改状态
type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// BookingService 场地预订记录
type BookingService struct {
	bookings repository.BookingRepository
	users    repository.UserRepository
	logger   *logrus.Logger
}

func NewBookingService(db *gorm.DB, logger *logrus.Logger) *BookingService {
	return &BookingService{
		bookings: repository.NewBookingRepository(db),
		users:    repository.NewUserRepository(db),
		logger:   logger,
	}
}

func (s *BookingService) Create(ctx context.Context, userID string, req *BookingRequest) (*model.Booking, error) {
	if _, err := s.users.GetByUID(ctx, userID); err != nil {
		return nil, wrapStore(err, "user")
	}
	status := req.Status
	if status == "" {
		status = model.BookingPending
	}
	b := &model.Booking{
		UserID:        userID,
		Sport:         req.Sport,
		VenueName:     req.VenueName,
		VenueAddress:  req.VenueAddress,
		VenueImageURL: req.VenueImageURL,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      req.Duration,
		Price:         req.Price,
		Status:        status,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, wrapStore(err, "booking")
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "booking_id": b.ID}).Info("booking created")
	return b, nil
}

func (s *BookingService) List(ctx context.Context, userID, status string, page repository.Page) ([]*model.Booking, error) {
	list, err := s.bookings.List(ctx, userID, status, page)
	if err != nil {
		return nil, wrapStore(err, "bookings")
	}
	return list, nil
}

func (s *BookingService) Get(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	b, err := s.bookings.Get(ctx, userID, bookingID)
	if err != nil {
		return nil, wrapStore(err, "booking")
	}
	return b, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, userID, bookingID string, req *UpdateBookingRequest) (*model.Booking, error) {
	b, err := s.bookings.Get(ctx, userID, bookingID)
	if err != nil {
		return nil, wrapStore(err, "booking")
	}
	if err := s.bookings.UpdateStatus(ctx, b, req.Status); err != nil {
		return nil, wrapStore(err, "booking")
	}
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, userID, bookingID string) error {
	n, err := s.bookings.Delete(ctx, userID, bookingID)
	if err != nil {
		return wrapStore(err, "booking")
	}
	if n == 0 {
		return notFound("booking")
	}
	return nil
}

package service

import (
	"context"

	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VenueRequest 创建场馆请求
type VenueRequest struct {
	Name            string   `json:"name" binding:"required,max=255"`
	Description     *string  `json:"description"`
	Address         string   `json:"address" binding:"required"`
	City            string   `json:"city" binding:"required,max=128"`
	State           string   `json:"state" binding:"required,max=128"`
	Pincode         string   `json:"pincode" binding:"required,max=16"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	ImageURLs       []string `json:"image_urls"`
	ThumbnailURL    *string  `json:"thumbnail_url"`
	SportsAvailable []string `json:"sports_available"`
	Amenities       []string `json:"amenities"`
	PricePerHour    float64  `json:"price_per_hour" binding:"gte=0"`
	OpeningTime     *string  `json:"opening_time" binding:"omitempty,clock"`
	ClosingTime     *string  `json:"closing_time" binding:"omitempty,clock"`
	TotalCourts     int      `json:"total_courts" binding:"omitempty,gte=1"`
	ContactPhone    *string  `json:"contact_phone"`
	ContactEmail    *string  `json:"contact_email" binding:"omitempty,email"`
}

// UpdateVenueRequest 部分更新场馆
type UpdateVenueRequest struct {
	Name            *string  `json:"name" binding:"omitempty,max=255"`
	Description     *string  `json:"description"`
	Address         *string  `json:"address"`
	City            *string  `json:"city" binding:"omitempty,max=128"`
	State           *string  `json:"state" binding:"omitempty,max=128"`
	Pincode         *string  `json:"pincode" binding:"omitempty,max=16"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	ImageURLs       []string `json:"image_urls"`
	ThumbnailURL    *string  `json:"thumbnail_url"`
	SportsAvailable []string `json:"sports_available"`
	Amenities       []string `json:"amenities"`
	PricePerHour    *float64 `json:"price_per_hour" binding:"omitempty,gte=0"`
	Rating          *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	TotalReviews    *int     `json:"total_reviews" binding:"omitempty,gte=0"`
	OpeningTime     *string  `json:"opening_time" binding:"omitempty,clock"`
	ClosingTime     *string  `json:"closing_time" binding:"omitempty,clock"`
	IsActive        *bool    `json:"is_active"`
	TotalCourts     *int     `json:"total_courts" binding:"omitempty,gte=1"`
	ContactPhone    *string  `json:"contact_phone"`
	ContactEmail    *string  `json:"contact_email" binding:"omitempty,email"`
}

// VenueImagesRequest 追加场馆图片
type VenueImagesRequest struct {
	ImageURLs []string `json:"image_urls" binding:"required,min=1,dive,required"`
}

// VenueService 场馆管理，删除为软删除
type VenueService struct {
	venues repository.VenueRepository
	logger *logrus.Logger
}

func NewVenueService(db *gorm.DB, logger *logrus.Logger) *VenueService {
	return &VenueService{
		venues: repository.NewVenueRepository(db),
		logger: logger,
	}
}

func (s *VenueService) Create(ctx context.Context, req *VenueRequest) (*model.Venue, error) {
	courts := req.TotalCourts
	if courts == 0 {
		courts = 1
	}
	v := &model.Venue{
		Name:            req.Name,
		Description:     req.Description,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Pincode:         req.Pincode,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ImageURLs:       model.StringList(req.ImageURLs),
		ThumbnailURL:    req.ThumbnailURL,
		SportsAvailable: model.StringList(req.SportsAvailable),
		Amenities:       model.StringList(req.Amenities),
		PricePerHour:    req.PricePerHour,
		OpeningTime:     req.OpeningTime,
		ClosingTime:     req.ClosingTime,
		IsActive:        true,
		TotalCourts:     courts,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
	}
	if err := s.venues.Create(ctx, v); err != nil {
		return nil, wrapStore(err, "venue")
	}
	s.logger.WithField("venue_id", v.ID).Info("venue created")
	return v, nil
}

// Get returns the venue even when it has been soft deleted.
func (s *VenueService) Get(ctx context.Context, id string) (*model.Venue, error) {
	v, err := s.venues.Get(ctx, id)
	if err != nil {
		return nil, wrapStore(err, "venue")
	}
	return v, nil
}

func (s *VenueService) List(ctx context.Context, filter repository.VenueFilter, page repository.Page) ([]*model.Venue, error) {
	list, err := s.venues.List(ctx, filter, page)
	if err != nil {
		return nil, wrapStore(err, "venues")
	}
	return list, nil
}

func (s *VenueService) Update(ctx context.Context, id string, req *UpdateVenueRequest) (*model.Venue, error) {
	v, err := s.venues.Get(ctx, id)
	if err != nil {
		return nil, wrapStore(err, "venue")
	}
	applyVenueUpdate(v, req)
	if err := s.venues.Save(ctx, v); err != nil {
		return nil, wrapStore(err, "venue")
	}
	return v, nil
}

// Delete deactivates the venue.
func (s *VenueService) Delete(ctx context.Context, id string) error {
	v, err := s.venues.Get(ctx, id)
	if err != nil {
		return wrapStore(err, "venue")
	}
	v.IsActive = false
	if err := s.venues.Save(ctx, v); err != nil {
		return wrapStore(err, "venue")
	}
	s.logger.WithField("venue_id", id).Info("venue deactivated")
	return nil
}

// AddImages appends image paths in order. The first appended image becomes
// the thumbnail when none is set.
func (s *VenueService) AddImages(ctx context.Context, id string, paths []string) (*model.Venue, error) {
	if len(paths) == 0 {
		return nil, invalid("at least one image is required")
	}
	v, err := s.venues.Get(ctx, id)
	if err != nil {
		return nil, wrapStore(err, "venue")
	}
	v.ImageURLs = model.StringList(append(model.Strings(v.ImageURLs), paths...))
	if v.ThumbnailURL == nil || *v.ThumbnailURL == "" {
		first := paths[0]
		v.ThumbnailURL = &first
	}
	if err := s.venues.Save(ctx, v); err != nil {
		return nil, wrapStore(err, "venue")
	}
	return v, nil
}

func applyVenueUpdate(v *model.Venue, req *UpdateVenueRequest) {
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Description != nil {
		v.Description = req.Description
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.City != nil {
		v.City = *req.City
	}
	if req.State != nil {
		v.State = *req.State
	}
	if req.Pincode != nil {
		v.Pincode = *req.Pincode
	}
	if req.Latitude != nil {
		v.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		v.Longitude = req.Longitude
	}
	if req.ImageURLs != nil {
		v.ImageURLs = model.StringList(req.ImageURLs)
	}
	if req.ThumbnailURL != nil {
		v.ThumbnailURL = req.ThumbnailURL
	}
	if req.SportsAvailable != nil {
		v.SportsAvailable = model.StringList(req.SportsAvailable)
	}
	if req.Amenities != nil {
		v.Amenities = model.StringList(req.Amenities)
	}
	if req.PricePerHour != nil {
		v.PricePerHour = *req.PricePerHour
	}
	if req.Rating != nil {
		v.Rating = *req.Rating
	}
	if req.TotalReviews != nil {
		v.TotalReviews = *req.TotalReviews
	}
	if req.OpeningTime != nil {
		v.OpeningTime = req.OpeningTime
	}
	if req.ClosingTime != nil {
		v.ClosingTime = req.ClosingTime
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if req.TotalCourts != nil {
		v.TotalCourts = *req.TotalCourts
	}
	if req.ContactPhone != nil {
		v.ContactPhone = req.ContactPhone
	}
	if req.ContactEmail != nil {
		v.ContactEmail = req.ContactEmail
	}
}

// Package seed fills an empty database with demo data through the services,
// so every row obeys the same rules as API writes.
package seed

import (
	"context"
	"fmt"
	"time"

	"OwlTurf/internal/repository"
	"OwlTurf/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func str(s string) *string   { return &s }
func num(v int) *int         { return &v }
func f64(v float64) *float64 { return &v }

// Run seeds only when there are no users yet. It reports whether data was written.
func Run(ctx context.Context, db *gorm.DB, logger *logrus.Logger) (bool, error) {
	users := service.NewUserService(db, logger)
	existing, err := users.List(ctx, repository.Page{Limit: 1})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		logger.Info("seed skipped: users table is not empty")
		return false, nil
	}

	for _, req := range demoUsers() {
		if _, err := users.Create(ctx, req); err != nil {
			return false, fmt.Errorf("seed user %s: %w", req.UID, err)
		}
	}

	products := service.NewProductService(db, logger)
	for _, req := range demoProducts() {
		if _, err := products.Create(ctx, req); err != nil {
			return false, fmt.Errorf("seed product %s: %w", req.ID, err)
		}
	}

	venues := service.NewVenueService(db, logger)
	venueIDs := make([]string, 0, 2)
	for _, req := range demoVenues() {
		v, err := venues.Create(ctx, req)
		if err != nil {
			return false, fmt.Errorf("seed venue %s: %w", req.Name, err)
		}
		venueIDs = append(venueIDs, v.ID)
	}

	addresses := service.NewAddressService(db, logger)
	if _, err := addresses.Create(ctx, "user_001", &service.AddressRequest{
		Name: "John Doe", Mobile: "+919812345678", Pincode: "560001", HouseNumber: "42",
		Address: "Residency Road", Locality: "Shanthala Nagar", City: "Bangalore", State: "Karnataka",
		Type: "home", IsDefault: true,
	}); err != nil {
		return false, fmt.Errorf("seed address: %w", err)
	}

	wallets := service.NewWalletService(db, logger)
	ledger := []struct {
		uid string
		req  service.TransactionRequest
	}{
		{"user_001", service.TransactionRequest{Amount: decimal.NewFromInt(2000), Type: "credit", Description: str("Welcome bonus"), ReferenceID: str("WELCOME_BONUS_001")}},
		{"user_001", service.TransactionRequest{Amount: decimal.NewFromInt(1500), Type: "debit", Description: str("Booking payment for PlayArena"), ReferenceID: str("BOOKING_001")}},
		{"user_002", service.TransactionRequest{Amount: decimal.NewFromInt(1000), Type: "credit", Description: str("Wallet top-up"), ReferenceID: str("TOPUP_001")}},
	}
	for _, l := range ledger {
		req := l.req
		if _, err := wallets.ApplyTransaction(ctx, l.uid, &req); err != nil {
			return false, fmt.Errorf("seed transaction %s: %w", *req.ReferenceID, err)
		}
	}

	day := func(offset int) string { return time.Now().AddDate(0, 0, offset).Format("2006-01-02") }

	bookings := service.NewBookingService(db, logger)
	if _, err := bookings.Create(ctx, "user_001", &service.BookingRequest{
		Sport: "Cricket", VenueName: "PlayArena Sports Complex", VenueAddress: "123 Stadium Road",
		VenueImageURL: str("venue_images/playarena_thumb.jpg"),
		Date:          day(1), StartTime: "10:00", EndTime: "12:00", Duration: 120, Price: 3000, Status: "confirmed",
	}); err != nil {
		return false, fmt.Errorf("seed booking: %w", err)
	}

	games := service.NewGameService(db, logger)
	g, err := games.Create(ctx, "user_001", &service.CreateGameRequest{
		VenueID: venueIDs[0], Sport: "Cricket", Title: "Sunday Morning Cricket Match",
		Description: str("Looking for players for a friendly cricket match"),
		Date:        day(7), StartTime: "08:00", EndTime: "10:00", Duration: 120,
		MinPlayers: 10, MaxPlayers: 22, SkillLevel: "intermediate", PricePerPerson: 150, TotalCost: 3000,
		RequiredEquipment: []string{"Cricket bat", "Sports shoes"},
	})
	if err != nil {
		return false, fmt.Errorf("seed game: %w", err)
	}
	if _, err := games.Join(ctx, g.ID, "user_003"); err != nil {
		return false, fmt.Errorf("seed game join: %w", err)
	}

	reels := service.NewReelService(db, logger)
	r, err := reels.Create(ctx, "user_002", &service.CreateReelRequest{
		VideoURL: "reels/smash_highlight.mp4", ThumbnailURL: str("reels/smash_highlight_thumb.jpg"),
		Caption: str("Match point smash"), Sport: str("Badminton"), Location: str("Urban Sports Hub"),
		Duration: f64(14.5), Width: num(1080), Height: num(1920),
		Hashtags: []string{"badminton", "smash"},
	})
	if err != nil {
		return false, fmt.Errorf("seed reel: %w", err)
	}
	if _, err := reels.Like(ctx, r.ID, "user_001"); err != nil {
		return false, fmt.Errorf("seed reel like: %w", err)
	}

	logger.Info("demo data seeded")
	return true, nil
}

func demoUsers() []*service.CreateUserRequest {
	return []*service.CreateUserRequest{
		{UID: "user_001", Email: str("john.doe@example.com"), DisplayName: str("John Doe"), Name: str("John Doe"),
			Age: num(28), Gender: str("male"), Sports: []string{"Cricket", "Football", "Badminton"}, AuthProvider: "email"},
		{UID: "user_002", Email: str("jane.smith@example.com"), PhoneNumber: str("+1234567890"), DisplayName: str("Jane Smith"),
			Name: str("Jane Smith"), Age: num(25), Gender: str("female"), Sports: []string{"Tennis", "Badminton"}, AuthProvider: "google"},
		{UID: "user_003", PhoneNumber: str("+9876543210"), DisplayName: str("Mike Johnson"), Name: str("Mike Johnson"),
			Age: num(32), Gender: str("male"), Sports: []string{"Basketball", "Football"}, AuthProvider: "phone"},
	}
}

func demoProducts() []*service.ProductRequest {
	return []*service.ProductRequest{
		{ID: "nike-dri-fit-shirt", Name: "Nike Dri-FIT Running Shirt", Category: "Sportswear", Rating: 4.5, Reviews: "245 reviews",
			MRP: 2999, Price: 1999, ImageURL: "product_images/nike_shirt.jpg", Sizes: []string{"S", "M", "L", "XL"},
			Description: str("High-performance running shirt with moisture-wicking technology")},
		{ID: "yonex-badminton-racket", Name: "Yonex Badminton Racket", Category: "Sports Equipment", Rating: 4.7, Reviews: "312 reviews",
			MRP: 8999, Price: 6499, ImageURL: "product_images/yonex_racket.jpg", Sizes: []string{"Standard"}},
		{ID: "puma-sports-shoes", Name: "Puma Sports Shoes", Category: "Footwear", Rating: 4.4, Reviews: "423 reviews",
			MRP: 5999, Price: 3999, ImageURL: "product_images/puma_shoes.jpg", Sizes: []string{"7", "8", "9", "10", "11"}},
	}
}

func demoVenues() []*service.VenueRequest {
	return []*service.VenueRequest{
		{Name: "PlayArena Sports Complex", Address: "123 Stadium Road", City: "Bangalore", State: "Karnataka", Pincode: "560001",
			Latitude: f64(12.9716), Longitude: f64(77.5946), ThumbnailURL: str("venue_images/playarena_thumb.jpg"),
			SportsAvailable: []string{"Cricket", "Football", "Badminton", "Tennis"}, Amenities: []string{"Parking", "Changing Rooms", "Cafeteria"},
			PricePerHour: 1500, OpeningTime: str("06:00"), ClosingTime: str("23:00"), TotalCourts: 6, ContactEmail: str("info@playarena.com")},
		{Name: "Urban Sports Hub", Address: "456 MG Road", City: "Bangalore", State: "Karnataka", Pincode: "560025",
			SportsAvailable: []string{"Badminton", "Table Tennis", "Squash"}, Amenities: []string{"Air Conditioning", "Locker Rooms"},
			PricePerHour: 1200, OpeningTime: str("07:00"), ClosingTime: str("22:00"), TotalCourts: 4},
	}
}

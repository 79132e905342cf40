package service

import (
	"context"
	"testing"

	"OwlTurf/internal/dbtest"
	"OwlTurf/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	logger *logrus.Logger
	users  *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.New(t)
	logger := dbtest.Logger()
	return &testEnv{db: db, logger: logger, users: NewUserService(db, logger)}
}

func (e *testEnv) user(t *testing.T, uid string) *model.User {
	t.Helper()
	email := uid + "@example.com"
	u, err := e.users.Create(context.Background(), &CreateUserRequest{UID: uid, Email: &email})
	require.NoError(t, err)
	return u
}

func (e *testEnv) venue(t *testing.T) *model.Venue {
	t.Helper()
	v, err := NewVenueService(e.db, e.logger).Create(context.Background(), &VenueRequest{
		Name:            "Riverside Arena",
		Address:         "12 Bank Road",
		City:            "Pune",
		State:           "MH",
		Pincode:         "411001",
		SportsAvailable: []string{"football", "cricket"},
		PricePerHour:    1200,
	})
	require.NoError(t, err)
	return v
}

func strPtr(v string) *string { return &v }

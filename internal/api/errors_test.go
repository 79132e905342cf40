package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"OwlTurf/internal/dbtest"
	"OwlTurf/internal/service"
	"OwlTurf/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("user %w", service.ErrNotFound), http.StatusNotFound},
		{storage.ErrFileNotFound, http.StatusNotFound},
		{fmt.Errorf("only the host can cancel: %w", service.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("email already registered: %w", service.ErrConflict), http.StatusBadRequest},
		{fmt.Errorf("%w: balance 1.00", service.ErrInsufficientBalance), http.StatusBadRequest},
		{service.ErrGameFull, http.StatusBadRequest},
		{service.ErrHostCannotLeave, http.StatusBadRequest},
		{service.ErrAlreadyLiked, http.StatusBadRequest},
		{&storage.FileTooLargeError{SizeMB: 3, MaxMB: 2}, http.StatusBadRequest},
		{fmt.Errorf("%w: users: %w", service.ErrStoreFailure, errors.New("connection reset")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, errorStatus(tc.err), tc.err.Error())
	}
}

func TestRespondErrorBodies(t *testing.T) {
	logger := dbtest.Logger()

	run := func(err error) (int, string) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		respondError(c, logger, err)
		return w.Code, w.Body.String()
	}

	code, body := run(fmt.Errorf("%w: users: %w", service.ErrStoreFailure, errors.New("password=hunter2")))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"detail":"A database error occurred","message":"Internal server error"}`, body)

	code, body = run(errors.New("nil map write"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"detail":"An unexpected error occurred","message":"Internal server error"}`, body)

	code, body = run(fmt.Errorf("%w: amount must be greater than zero", service.ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"detail":"Amount must be greater than zero"}`, body)

	code, body = run(fmt.Errorf("only the author can delete this reel: %w", service.ErrForbidden))
	assert.Equal(t, http.StatusForbidden, code)
	assert.JSONEq(t, `{"detail":"Only the author can delete this reel"}`, body)
}

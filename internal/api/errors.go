package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"OwlTurf/internal/service"
	"OwlTurf/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var badRequestErrors = []error{
	service.ErrConflict,
	service.ErrInvalidInput,
	service.ErrInsufficientBalance,
	service.ErrGameFull,
	service.ErrNotJoinable,
	service.ErrAlreadyJoined,
	service.ErrNotAMember,
	service.ErrHostCannotLeave,
	service.ErrGameClosed,
	service.ErrAlreadyLiked,
	storage.ErrInvalidBucket,
	storage.ErrFileTooLarge,
}

// errorStatus maps an error kind onto its HTTP status.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, storage.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrStoreFailure):
		return http.StatusInternalServerError
	}
	for _, kind := range badRequestErrors {
		if errors.Is(err, kind) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the error body and aborts. 5xx details stay in the log.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		detail := "An unexpected error occurred"
		if errors.Is(err, service.ErrStoreFailure) {
			detail = "A database error occurred"
		}
		c.AbortWithStatusJSON(status, gin.H{"detail": detail, "message": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": clientMessage(err)})
}

// clientMessage drops the trailing or leading kind label the services add
// when wrapping, e.g. "email already registered: conflict".
func clientMessage(err error) string {
	msg := err.Error()
	for _, kind := range []error{service.ErrConflict, service.ErrForbidden} {
		msg = strings.TrimSuffix(msg, ": "+kind.Error())
	}
	msg = strings.TrimPrefix(msg, service.ErrInvalidInput.Error()+": ")
	return capitalize(msg)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// Error kinds returned by services. Callers classify with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrGameFull            = errors.New("game is full")
	ErrNotJoinable         = errors.New("game is not open for joining")
	ErrAlreadyJoined       = errors.New("user already joined this game")
	ErrNotAMember          = errors.New("user is not part of this game")
	ErrHostCannotLeave     = errors.New("host cannot leave the game, cancel it instead")
	ErrGameClosed          = errors.New("game is already closed")
	ErrAlreadyLiked        = errors.New("already liked")
	ErrStoreFailure        = errors.New("store failure")
)

const pgUniqueViolation = "23505"

// wrapStore classifies a repository error. what names the entity for messages.
func wrapStore(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	if isDuplicateKey(err) {
		return fmt.Errorf("%s: %w", what, ErrConflict)
	}
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, what, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

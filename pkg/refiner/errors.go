package refiner

import (
	"errors"

	"refiner/internal/core/apperror"
)

// Sentinels attached as the cause of the AppErrors returned by this package.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNotConfigured        = errors.New("not configured")
	ErrNotInitialized       = errors.New("not initialized")
)

func invalidConfiguration(message string) error {
	return apperror.NewInvalidConfiguration(message).WithCause(ErrInvalidConfiguration)
}

func notConfigured(message string) *apperror.AppError {
	return apperror.NewNotConfigured(message).WithCause(ErrNotConfigured)
}

func notInitialized() error {
	return apperror.NewNotInitialized("the refiner has not been applied to request data yet").
		WithCause(ErrNotInitialized)
}

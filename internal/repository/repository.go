// Package repository reads a user's closet from the configured backend.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/outfit-service/internal/domain"
	"github.com/actuallystonmai/outfit-service/internal/metrics"
)

// ClosetStore returns every clothing item owned by a user.
type ClosetStore interface {
	GetClosetItems(ctx context.Context, userID string) ([]domain.ClothingItem, error)
}

// StoreAccessError marks a failed closet read. It is never retried.
type StoreAccessError struct {
	Backend string
	UserID  string
	Err     error
}

func (e *StoreAccessError) Error() string {
	return fmt.Sprintf("%s store: read closet for user %s: %v", e.Backend, e.UserID, e.Err)
}

func (e *StoreAccessError) Unwrap() error {
	return e.Err
}

func IsStoreAccessError(err error) bool {
	var target *StoreAccessError
	return errors.As(err, &target)
}

func storeError(backend, userID string, err error) error {
	metrics.StoreErrors.WithLabelValues(backend).Inc()
	return &StoreAccessError{Backend: backend, UserID: userID, Err: err}
}

// decodeEmbedding never fails the read: a bad vector only loses its
// contribution to harmony.
//
//nolint:gocritic // zerolog loggers are passed by value
func decodeEmbedding(logger zerolog.Logger, itemID int64, raw string) []float64 {
	vec, err := domain.ParseEmbedding(raw)
	if err != nil {
		metrics.EmbeddingDecodeErrors.Inc()
		logger.Warn().Err(err).Int64("item_id", itemID).Msg("undecodable embedding, treating as empty")
	}
	return vec
}

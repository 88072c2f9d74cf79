package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/outfit-service/internal/domain"
	"github.com/actuallystonmai/outfit-service/internal/logging"
	"github.com/actuallystonmai/outfit-service/internal/metrics"
	"github.com/actuallystonmai/outfit-service/internal/outfit"
	"github.com/actuallystonmai/outfit-service/internal/repository"
)

// RandFactory returns a fresh source for one request.
type RandFactory func() outfit.Rand

// SeededRand gives every request the same sequence, which makes responses
// reproducible for a fixed closet. A zero seed draws from the clock.
func SeededRand(seed int64) RandFactory {
	if seed == 0 {
		return func() outfit.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // not security sensitive
		}
	}
	return func() outfit.Rand {
		return rand.New(rand.NewSource(seed)) //nolint:gosec // not security sensitive
	}
}

type Service struct {
	store   repository.ClosetStore
	engine  *outfit.Engine
	newRand RandFactory
	logger  zerolog.Logger
}

func NewService(store repository.ClosetStore, engine *outfit.Engine, newRand RandFactory) *Service {
	return &Service{
		store:   store,
		engine:  engine,
		newRand: newRand,
		logger:  logging.Component("service"),
	}
}

// Recommend validates the request, reads the closet once and runs the engine.
// Validation failures return *outfit.ValidationError before the store is touched.
func (s *Service) Recommend(ctx context.Context, req outfit.Request) (*domain.OutfitResponse, error) {
	start := time.Now()
	defer func() { metrics.RecommendDuration.Observe(time.Since(start).Seconds()) }()

	logger := logging.Ctx(ctx, s.logger)

	norm, err := outfit.Normalize(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	closet, err := s.store.GetClosetItems(ctx, norm.UserID)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(metrics.ResultStoreError).Inc()
		logger.Error().Err(err).Str("user_id", norm.UserID).Msg("closet read failed")
		return nil, fmt.Errorf("fetch closet: %w", err)
	}
	metrics.ClosetItemsFetched.Observe(float64(len(closet)))

	result := s.engine.Recommend(closet, norm, s.newRand())
	metrics.CandidatesAssembled.Observe(float64(result.Stats.Assembled))

	outcome := metrics.ResultOK
	if len(result.Response.Items) == 0 {
		outcome = metrics.ResultNoOutfit
	}
	metrics.RequestsTotal.WithLabelValues(outcome).Inc()

	logger.Info().
		Str("user_id", norm.UserID).
		Int("closet_items", len(closet)).
		Int("assembled", result.Stats.Assembled).
		Int("valid", result.Stats.Valid).
		Int("alternatives", len(result.Response.Alternatives)).
		Str("mode", string(s.engine.Mode())).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation complete")

	return result.Response, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/actuallystonmai/outfit-service/internal/domain"
)

const BackendPostgres = "postgres"

type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

//nolint:gocritic // zerolog loggers are passed by value
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: logger.With().Str("backend", BackendPostgres).Logger(),
	}
}

func (s *PostgresStore) GetClosetItems(ctx context.Context, userID string) ([]domain.ClothingItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id,
			COALESCE(article_type, ''), COALESCE(sub_category, ''),
			COALESCE(base_colour, ''), COALESCE(season, ''), COALESCE(usage, ''),
			COALESCE(embedding, '')
		FROM clothing_items
		WHERE user_id = $1
		ORDER BY id`, userID,
	)
	if err != nil {
		return nil, storeError(BackendPostgres, userID, fmt.Errorf("query clothing items: %w", err))
	}
	defer rows.Close()

	var items []domain.ClothingItem
	for rows.Next() {
		var (
			it  domain.ClothingItem
			raw string
		)
		if err := rows.Scan(&it.ID, &it.UserID, &it.ArticleType, &it.SubCategory,
			&it.BaseColour, &it.Season, &it.Usage, &raw); err != nil {
			return nil, storeError(BackendPostgres, userID, fmt.Errorf("scan clothing item: %w", err))
		}
		it.Embedding = decodeEmbedding(s.logger, it.ID, raw)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError(BackendPostgres, userID, fmt.Errorf("iterate over clothing items: %w", err))
	}
	return items, nil
}

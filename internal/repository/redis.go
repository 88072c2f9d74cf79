package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/actuallystonmai/outfit-service/internal/domain"
)

const BackendRedis = "redis"

// RedisStore keeps each closet in one hash, field = item id, value = JSON record.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// redisRecord mirrors the Postgres row: the embedding stays a JSON string.
type redisRecord struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	ArticleType string `json:"article_type"`
	SubCategory string `json:"sub_category"`
	BaseColour  string `json:"base_colour"`
	Season      string `json:"season"`
	Usage       string `json:"usage"`
	Embedding   string `json:"embedding"`
}

//nolint:gocritic // zerolog loggers are passed by value
func NewRedisStore(client *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger.With().Str("backend", BackendRedis).Logger(),
	}
}

func closetKey(userID string) string {
	return fmt.Sprintf("closet:user:%s", userID)
}

func (s *RedisStore) GetClosetItems(ctx context.Context, userID string) ([]domain.ClothingItem, error) {
	fields, err := s.client.HGetAll(ctx, closetKey(userID)).Result()
	if err != nil {
		return nil, storeError(BackendRedis, userID, fmt.Errorf("hgetall %s: %w", closetKey(userID), err))
	}

	items := make([]domain.ClothingItem, 0, len(fields))
	for field, val := range fields {
		var rec redisRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			return nil, storeError(BackendRedis, userID, fmt.Errorf("unmarshal item %s: %w", field, err))
		}
		items = append(items, domain.ClothingItem{
			ID:          rec.ID,
			UserID:      rec.UserID,
			ArticleType: rec.ArticleType,
			SubCategory: rec.SubCategory,
			BaseColour:  rec.BaseColour,
			Season:      rec.Season,
			Usage:       rec.Usage,
			Embedding:   decodeEmbedding(s.logger, rec.ID, rec.Embedding),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// PutItems writes items into their owners' closets, replacing records with the same id.
func (s *RedisStore) PutItems(ctx context.Context, items []domain.ClothingItem) error {
	pipe := s.client.Pipeline()
	for _, it := range items {
		val, err := json.Marshal(redisRecord{
			ID:          it.ID,
			UserID:      it.UserID,
			ArticleType: it.ArticleType,
			SubCategory: it.SubCategory,
			BaseColour:  it.BaseColour,
			Season:      it.Season,
			Usage:       it.Usage,
			Embedding:   domain.FormatEmbedding(it.Embedding),
		})
		if err != nil {
			return fmt.Errorf("marshal item %d: %w", it.ID, err)
		}
		pipe.HSet(ctx, closetKey(it.UserID), strconv.FormatInt(it.ID, 10), val)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write closet items: %w", err)
	}
	return nil
}

// ClearCloset removes every stored item for a user.
func (s *RedisStore) ClearCloset(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, closetKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", closetKey(userID), err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

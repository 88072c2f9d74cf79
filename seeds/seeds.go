package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/actuallystonmai/outfit-service/internal/domain"
	"github.com/actuallystonmai/outfit-service/internal/logging"
)

const (
	demoUsers     = 3
	itemsPerUser  = 40
	embeddingDims = 8
)

// ClosetWriter is the part of the redis store the seeder needs.
type ClosetWriter interface {
	ClearCloset(ctx context.Context, userID string) error
	PutItems(ctx context.Context, items []domain.ClothingItem) error
}

type articleSpec struct {
	articleType string
	subCategory string
	weight      float64
}

var articles = []articleSpec{
	{"Tshirts", "Topwear", 0.14},
	{"Shirts", "Topwear", 0.10},
	{"Sweaters", "Topwear", 0.05},
	{"Jeans", "Bottomwear", 0.10},
	{"Trousers", "Bottomwear", 0.07},
	{"Shorts", "Bottomwear", 0.05},
	{"Skirts", "Bottomwear", 0.03},
	{"Dresses", "Dress", 0.05},
	{"Jumpsuit", "Jumpsuit", 0.02},
	{"Jackets", "Outerwear", 0.06},
	{"Blazers", "Outerwear", 0.03},
	{"Casual Shoes", "Footwear", 0.07},
	{"Sports Shoes", "Footwear", 0.04},
	{"Formal Shoes", "Footwear", 0.03},
	{"Watches", "Accessory", 0.06},
	{"Belts", "Accessory", 0.05},
	{"Sunglasses", "Accessory", 0.05},
}

var (
	colours      = []string{"Black", "White", "Navy Blue", "Blue", "Grey", "Beige", "Red", "Green", "Brown"}
	seasons      = []string{"Summer", "Spring", "Fall", "Winter", "All Seasons"}
	seasonWeight = []float64{0.3, 0.2, 0.2, 0.2, 0.1}
	usages       = []string{"Casual", "Formal", "Sports", "Party"}
	usageWeight  = []float64{0.55, 0.2, 0.15, 0.1}
)

// DemoUserID names the seeded closet owners: demo-user-1, demo-user-2, ...
func DemoUserID(n int) string {
	return fmt.Sprintf("demo-user-%d", n)
}

// DemoCloset builds the same closet for a given rng seed. Ids start at 1.
func DemoCloset(rng *rand.Rand) []domain.ClothingItem {
	weights := make([]float64, len(articles))
	for i, a := range articles {
		weights[i] = a.weight
	}

	items := make([]domain.ClothingItem, 0, demoUsers*itemsPerUser)
	for u := 1; u <= demoUsers; u++ {
		for range itemsPerUser {
			a := articles[weightedIndex(rng, weights)]
			colour := colours[rng.Intn(len(colours))]
			items = append(items, domain.ClothingItem{
				ID:          int64(len(items) + 1),
				UserID:      DemoUserID(u),
				ArticleType: a.articleType,
				SubCategory: a.subCategory,
				BaseColour:  colour,
				Season:      seasons[weightedIndex(rng, seasonWeight)],
				Usage:       usages[weightedIndex(rng, usageWeight)],
				Embedding:   embedding(rng, colour),
			})
		}
	}
	return items
}

// Setup replaces the clothing_items table contents with the demo closet.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	logger := logging.Component("seed")
	items := DemoCloset(rand.New(rand.NewSource(42))) //nolint:gosec // fixed demo data

	logger.Info().Msg("truncating existing data")
	if _, err := pool.Exec(ctx, `TRUNCATE clothing_items RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	logger.Info().Int("items", len(items)).Msg("inserting clothing items")
	if err := insertItems(ctx, pool, items); err != nil {
		return fmt.Errorf("seed clothing items: %w", err)
	}

	if _, err := pool.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('clothing_items', 'id'), (SELECT MAX(id) FROM clothing_items))`,
	); err != nil {
		return fmt.Errorf("reset id sequence: %w", err)
	}

	logger.Info().Msg("seeding complete")
	return nil
}

// SetupRedis writes the demo closet into the redis store.
func SetupRedis(ctx context.Context, w ClosetWriter) error {
	logger := logging.Component("seed")
	items := DemoCloset(rand.New(rand.NewSource(42))) //nolint:gosec // fixed demo data

	for u := 1; u <= demoUsers; u++ {
		if err := w.ClearCloset(ctx, DemoUserID(u)); err != nil {
			return fmt.Errorf("clear closet: %w", err)
		}
	}
	if err := w.PutItems(ctx, items); err != nil {
		return fmt.Errorf("seed redis closets: %w", err)
	}
	logger.Info().Int("items", len(items)).Msg("redis seeding complete")
	return nil
}

func insertItems(ctx context.Context, pool *pgxpool.Pool, items []domain.ClothingItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*8)
	for _, it := range items {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, it.ID, it.UserID, it.ArticleType, it.SubCategory,
			it.BaseColour, it.Season, it.Usage, domain.FormatEmbedding(it.Embedding))
	}

	query := "INSERT INTO clothing_items (id, user_id, article_type, sub_category, base_colour, season, usage, embedding) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// embedding gives items of the same colour nearby vectors so harmony
// scores have some structure in the demo data.
func embedding(rng *rand.Rand, colour string) []float64 {
	hue := 0
	for _, r := range colour {
		hue += int(r)
	}
	vec := make([]float64, embeddingDims)
	for i := range vec {
		centre := math.Sin(float64(hue*(i+1)) / 10)
		vec[i] = math.Round((centre+rng.NormFloat64()*0.2)*1000) / 1000
	}
	return vec
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Package seed fills a fresh store with the synthetic catalog and demo accounts.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"loadlab/internal/models"
	"loadlab/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Seeder generates deterministic data for a given random source.
type Seeder struct {
	rng      *rand.Rand
	hashCost int
	logger   *logrus.Logger
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithSeed makes the catalog reproducible; zero keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(s *Seeder) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		}
	}
}

// WithHashCost sets the bcrypt cost for the shared demo password.
func WithHashCost(cost int) Option {
	return func(s *Seeder) { s.hashCost = cost }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(s *Seeder) { s.logger = logger }
}

func New(opts ...Option) *Seeder {
	now := uint64(time.Now().UnixNano())
	s := &Seeder{
		rng:      rand.New(rand.NewPCG(now, now>>1)),
		hashCost: bcrypt.DefaultCost,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Product builds catalog entry n (1-based).
func (s *Seeder) Product(n int) models.Product {
	return models.Product{
		ID:          fmt.Sprintf("prod_%d", n),
		Name:        fmt.Sprintf("Product %d", n),
		Price:       float64(10 + s.rng.IntN(500)),
		Category:    models.Categories[s.rng.IntN(len(models.Categories))],
		Stock:       1 + s.rng.IntN(100),
		Description: fmt.Sprintf("High-quality Product %d with excellent features", n),
		Rating:      math.Round((3+s.rng.Float64()*2)*10) / 10,
		Reviews:     10 + s.rng.IntN(500),
	}
}

// Catalog stores products prod_1..prod_count in order.
func (s *Seeder) Catalog(ctx context.Context, repo repositories.ProductRepository, count int) error {
	for i := 1; i <= count; i++ {
		p := s.Product(i)
		if err := repo.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}
	s.logger.WithField("count", count).Info("catalog seeded")
	return nil
}

// User builds demo account n (1-based) with an already hashed password.
func User(n int, passwordHash string) models.User {
	return models.User{
		ID:       fmt.Sprintf("user_%d", n),
		Username: fmt.Sprintf("user%d", n),
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: passwordHash,
		Profile: models.Profile{
			Name:    fmt.Sprintf("User %d", n),
			Address: fmt.Sprintf("%d Test Street, Test City", n),
			Phone:   fmt.Sprintf("555-000-%04d", n),
		},
		CreatedAt: time.Now().UTC(),
	}
}

// Users stores user_1..user_count, all sharing password.
// The password is hashed once since every account uses it.
func (s *Seeder) Users(ctx context.Context, repo repositories.UserRepository, count int, password string) error {
	if count == 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	for i := 1; i <= count; i++ {
		u := User(i, string(hash))
		if err := repo.Create(ctx, &u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
	}
	s.logger.WithField("count", count).Info("users seeded")
	return nil
}

// Store seeds both the catalog and the demo users, skipping a store that already has products.
func (s *Seeder) Store(ctx context.Context, store *repositories.Store, products, users int, password string) error {
	existing, err := store.Products.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect store: %w", err)
	}
	if existing > 0 {
		s.logger.WithField("products", existing).Info("store already populated, skipping seed")
		return nil
	}
	if err := s.Catalog(ctx, store.Products, products); err != nil {
		return err
	}
	return s.Users(ctx, store.Users, users, password)
}

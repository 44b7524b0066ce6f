package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cardloop/cardloop/internal/profile"
	"github.com/cardloop/cardloop/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache settings
	cacheConfig cache.Config

	// Caches
	memberCache *cache.Cache // cache for members
	cardCache   *cache.Cache // cache for cards
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	// Default cache settings
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
		OnEviction:      nil,
	}

	store := &Store{
		driver:      driver,
		profile:     profile,
		cacheConfig: cacheConfig,
		memberCache: cache.New(cacheConfig),
		cardCache:   cache.New(cacheConfig),
	}

	return store
}

// GetDriver returns the underlying driver.
func (s *Store) GetDriver() Driver {
	return s.driver
}

// Migrate ensures the schema is up to date.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

// Close releases caches and the database connection.
func (s *Store) Close() error {
	// Stop all cache cleanup goroutines
	s.memberCache.Close()
	s.cardCache.Close()

	return s.driver.Close()
}

func memberCacheKey(id int32) string {
	return fmt.Sprintf("member:%d", id)
}

func cardCacheKey(id int32) string {
	return fmt.Sprintf("card:%d", id)
}

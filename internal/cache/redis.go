// Package cache holds an optional Redis-backed cache for the course catalog.
// A nil *CatalogCache is valid and disables caching entirely, so callers
// never branch on whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"minilms-backend/internal/domain"
)

const (
	catalogKey      = "minilms:catalog"
	courseKeyPrefix = "minilms:course:"
	ttl             = 5 * time.Minute
)

type CatalogCache struct {
	client *redis.Client
}

// New connects to Redis at REDIS_ADDR. It returns nil when the variable is
// unset or the server is unreachable; the API works identically without it.
func New() *CatalogCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis at %s unreachable, catalog cache disabled: %v", addr, err)
		return nil
	}
	log.Printf("Catalog cache enabled (redis %s)", addr)
	return &CatalogCache{client: client}
}

func (c *CatalogCache) GetCatalog(ctx context.Context) ([]domain.Course, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	var courses []domain.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, false
	}
	return courses, true
}

func (c *CatalogCache) SetCatalog(ctx context.Context, courses []domain.Course) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(courses)
	if err != nil {
		return
	}
	c.client.Set(ctx, catalogKey, raw, ttl)
}

func (c *CatalogCache) GetCourse(ctx context.Context, slug string) (*domain.Course, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, courseKeyPrefix+slug).Bytes()
	if err != nil {
		return nil, false
	}
	var course domain.Course
	if err := json.Unmarshal(raw, &course); err != nil {
		return nil, false
	}
	return &course, true
}

func (c *CatalogCache) SetCourse(ctx context.Context, course *domain.Course) {
	if c == nil || course == nil {
		return
	}
	raw, err := json.Marshal(course)
	if err != nil {
		return
	}
	c.client.Set(ctx, courseKeyPrefix+course.Slug, raw, ttl)
}

// Invalidate drops everything the cache holds. Called after any course,
// lesson or quiz mutation and by the revalidate endpoint.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, courseKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.client.Del(ctx, catalogKey).Err()
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	cachemem "github.com/hemantkumar00/product-category-service/internal/cache/memory"
	"github.com/hemantkumar00/product-category-service/internal/domain"
)

func TestProductCachePutGet(t *testing.T) {
	c := NewProductCache(cachemem.NewCache())
	ctx := context.Background()

	product := domain.Product{ID: "p1", Title: "kettle", Price: 49.99, Quantity: 3}
	if err := c.Put(ctx, product); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != product.Title || got.Price != product.Price || got.Quantity != product.Quantity {
		t.Fatalf("cached product differs: %+v", got)
	}
}

func TestProductCacheMiss(t *testing.T) {
	c := NewProductCache(cachemem.NewCache())

	if _, err := c.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestProductCacheInvalidateIsIdempotent(t *testing.T) {
	c := NewProductCache(cachemem.NewCache())
	ctx := context.Background()

	if err := c.Put(ctx, domain.Product{ID: "p1", Title: "kettle"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.Invalidate(ctx, "p1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := c.Invalidate(ctx, "p1"); err != nil {
		t.Fatalf("repeated invalidate: %v", err)
	}
	if _, err := c.Get(ctx, "p1"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after invalidation, got %v", err)
	}
}

func TestProductCacheEntryExpires(t *testing.T) {
	now := time.Now()
	clock := &now
	backend := cachemem.NewCacheWithClock(func() time.Time { return *clock })
	c := NewProductCache(backend)
	ctx := context.Background()

	if err := c.Put(ctx, domain.Product{ID: "p1", Title: "kettle"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	// За минуту до истечения TTL запись ещё живая.
	moved := now.Add(TTL - time.Minute)
	clock = &moved
	if _, err := c.Get(ctx, "p1"); err != nil {
		t.Fatalf("expected live entry, got %v", err)
	}

	expired := now.Add(TTL + time.Minute)
	clock = &expired
	if _, err := c.Get(ctx, "p1"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after TTL, got %v", err)
	}
}

func TestProductCacheCorruptedEntryIsMiss(t *testing.T) {
	backend := cachemem.NewCache()
	c := NewProductCache(backend)
	ctx := context.Background()

	if err := backend.Set(ctx, domain.CacheKeyProduct("p1"), []byte("{broken"), TTL); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := c.Get(ctx, "p1"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss for unreadable entry, got %v", err)
	}
}

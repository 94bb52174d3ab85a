package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"patharwalay/internal/assets"
	"patharwalay/internal/domain"
)

type countingStore struct {
	ProductStore
	calls int
	rows  []domain.ProductListItem
}

func (c *countingStore) List(ctx context.Context, q domain.Query) ([]domain.ProductListItem, error) {
	c.calls++
	return c.rows, nil
}

func TestListServesFreshCacheEntries(t *testing.T) {
	store := &countingStore{rows: []domain.ProductListItem{{Title: "Ruby Ring", Slug: "ruby-ring", Price: 15000}}}
	svc := NewCatalogService(store, assets.Disabled{}, false)
	base := time.Now()
	clock := base
	svc.now = func() time.Time { return clock }
	ctx := context.Background()
	q := domain.Query{Q: "ruby", Page: 1, PageSize: 10}

	first, err := svc.List(ctx, q)
	if err != nil {
		t.Fatal(err)
	}
	clock = base.Add(listCacheTTL - time.Millisecond)
	second, err := svc.List(ctx, q)
	if err != nil {
		t.Fatal(err)
	}
	if store.calls != 1 {
		t.Fatalf("within TTL: want 1 store query, got %d", store.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("cached result differs from computed result")
	}

	clock = base.Add(listCacheTTL)
	if _, err := svc.List(ctx, q); err != nil {
		t.Fatal(err)
	}
	if store.calls != 2 {
		t.Fatalf("expired entry must be recomputed: want 2 store queries, got %d", store.calls)
	}
}

func TestListCacheKeyedOnNormalizedParams(t *testing.T) {
	store := &countingStore{}
	svc := NewCatalogService(store, assets.Disabled{}, false)
	ctx := context.Background()

	// "gem" and "gemstone" normalize to the same filter: one store query.
	if _, err := svc.List(ctx, domain.Query{Category: "gem"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(ctx, domain.Query{Category: "gemstone"}); err != nil {
		t.Fatal(err)
	}
	if store.calls != 1 {
		t.Fatalf("synonym categories should share a cache entry, got %d queries", store.calls)
	}

	// A different page is a different entry.
	if _, err := svc.List(ctx, domain.Query{Category: "gem", Page: 2}); err != nil {
		t.Fatal(err)
	}
	if store.calls != 2 {
		t.Fatalf("distinct page should query the store, got %d queries", store.calls)
	}
}

func TestListClampsPaging(t *testing.T) {
	var got domain.Query
	store := &recordingStore{got: &got}
	svc := NewCatalogService(store, assets.Disabled{}, false)

	if _, err := svc.List(context.Background(), domain.Query{Page: -3, PageSize: 10000}); err != nil {
		t.Fatal(err)
	}
	if got.Page != 1 {
		t.Fatalf("page: want 1, got %d", got.Page)
	}
	if got.PageSize != maxPageSize {
		t.Fatalf("pageSize: want %d, got %d", maxPageSize, got.PageSize)
	}
}

type recordingStore struct {
	ProductStore
	got *domain.Query
}

func (r *recordingStore) List(ctx context.Context, q domain.Query) ([]domain.ProductListItem, error) {
	*r.got = q
	return nil, nil
}

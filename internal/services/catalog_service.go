package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"patharwalay/internal/assets"
	"patharwalay/internal/domain"
	applog "patharwalay/internal/log"
	"patharwalay/internal/validate"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrSlugExhausted = errors.New("could not allocate a unique slug")
)

const (
	listCacheTTL     = 2 * time.Second
	listCacheMaxRows = 2000
	defaultPageSize  = 24
	maxPageSize      = 100
	slugRetries      = 5
)

type ProductStore interface {
	List(ctx context.Context, q domain.Query) ([]domain.ProductListItem, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type listCacheEntry struct {
	ts   time.Time
	rows []domain.ProductListItem
}

// CatalogService is the query/cache layer plus the mutation-and-cleanup path
// for catalog items. The listing cache is a short-TTL map keyed on the
// normalized parameter tuple; expired entries are ignored and overwritten,
// never evicted. Concurrent lookups of a cold key may both hit the store:
// last writer wins and the duplicate query is harmless.
type CatalogService struct {
	Store  ProductStore
	Assets assets.Store
	// SlugStrict makes slug-collision retry exhaustion an error instead of
	// proceeding with a possibly colliding slug.
	SlugStrict bool

	cache sync.Map // cache key -> *listCacheEntry
	now   func() time.Time
}

func NewCatalogService(store ProductStore, as assets.Store, slugStrict bool) *CatalogService {
	return &CatalogService{Store: store, Assets: as, SlugStrict: slugStrict, now: time.Now}
}

// List serves the listing contract: normalized parameters, newest-first,
// list projection, served from cache when a fresh entry exists.
func (s *CatalogService) List(ctx context.Context, q domain.Query) ([]domain.ProductListItem, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	q.Category = validate.CategoryFilter(q.Category)

	key := fmt.Sprintf("%s|%s|%t|%d|%d", q.Q, q.Category, q.Featured, q.Page, q.PageSize)
	if v, ok := s.cache.Load(key); ok {
		if e := v.(*listCacheEntry); s.now().Sub(e.ts) < listCacheTTL {
			return e.rows, nil
		}
	}

	rows, err := s.Store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	cached := rows
	if len(cached) > listCacheMaxRows {
		cached = cached[:listCacheMaxRows]
	}
	cp := make([]domain.ProductListItem, len(cached))
	copy(cp, cached)
	s.cache.Store(key, &listCacheEntry{ts: s.now(), rows: cp})
	return rows, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.Store.Get(ctx, id)
}

func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.Store.GetBySlug(ctx, slug)
}

// Create validates and persists a new catalog item.
func (s *CatalogService) Create(ctx context.Context, raw map[string]any) (*domain.Product, error) {
	p, err := validate.Product(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.resolveSlug(ctx, p, ""); err != nil {
		return nil, err
	}
	return s.Store.Create(ctx, p)
}

// Update validates, persists, then best-effort deletes assets whose
// references the update removed. The record write has already committed by
// the time cleanup runs; cleanup failures are logged and swallowed.
func (s *CatalogService) Update(ctx context.Context, id string, raw map[string]any) (*domain.Product, error) {
	p, err := validate.Product(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	prev, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveSlug(ctx, p, id); err != nil {
		return nil, err
	}
	updated, err := s.Store.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	removed := diffImageRefs(imageRefs(prev.Images, prev.ImageURL), imageRefs(p.Images, p.ImageURL))
	s.destroyRefs(ctx, removed)
	return updated, nil
}

// Delete issues best-effort deletes for every image the item holds, then
// removes the record. Cleanup failures never block the record delete.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	doc, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	s.destroyRefs(ctx, diffImageRefs(imageRefs(doc.Images, doc.ImageURL), nil))
	return s.Store.Delete(ctx, id)
}

// resolveSlug retries with short random suffixes while the slug is taken.
// After the bounded retry count it either gives up and proceeds (the default,
// matching the store's historical behavior) or fails hard in strict mode.
func (s *CatalogService) resolveSlug(ctx context.Context, p *domain.Product, excludeID string) error {
	if p.Slug == "" {
		return nil
	}
	base := p.Slug
	candidate := base
	for tries := 0; ; tries++ {
		taken, err := s.Store.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return err
		}
		if !taken {
			break
		}
		if tries >= slugRetries {
			if s.SlugStrict {
				return fmt.Errorf("%w: %q", ErrSlugExhausted, base)
			}
			applog.Warn("catalog.slug.exhausted", nil, map[string]any{"slug": candidate})
			break
		}
		candidate = base + "-" + slugSuffix()
	}
	p.Slug = candidate
	return nil
}

func slugSuffix() string {
	return uuid.NewString()[:3]
}

// imageRefs merges the image list and the primary image into one set.
func imageRefs(images []string, imageURL string) map[string]bool {
	refs := make(map[string]bool, len(images)+1)
	for _, u := range images {
		if u != "" {
			refs[u] = true
		}
	}
	if imageURL != "" {
		refs[imageURL] = true
	}
	return refs
}

func diffImageRefs(prev, next map[string]bool) []string {
	var removed []string
	for u := range prev {
		if !next[u] {
			removed = append(removed, u)
		}
	}
	return removed
}

// destroyRefs derives public ids for the given URLs and issues concurrent
// best-effort deletes, awaited as a batch. URLs not on the asset host are
// externally managed and skipped.
func (s *CatalogService) destroyRefs(ctx context.Context, urls []string) {
	ids := map[string]bool{}
	for _, u := range urls {
		if id := assets.PublicIDFromURL(u); id != "" {
			ids[id] = true
		}
	}
	if len(ids) == 0 {
		return
	}
	var wg sync.WaitGroup
	for id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := s.Assets.Destroy(ctx, id); err != nil {
				applog.Warn("catalog.asset.destroy.fail", err, map[string]any{"public_id": id})
			}
		}(id)
	}
	wg.Wait()
}

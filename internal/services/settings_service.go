package services

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"patharwalay/internal/assets"
	"patharwalay/internal/domain"
	applog "patharwalay/internal/log"
	"patharwalay/internal/validate"
)

const (
	maxHeadlineLen = 180
	maxTaglineLen  = 300
)

type SettingsStore interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Upsert(ctx context.Context, s *domain.SiteSettings) (*domain.SiteSettings, error)
}

// SettingsInput is the admin payload for the settings write. Absent fields
// decode as "" and clear the corresponding slot, which is what triggers the
// explicit-clear asset cleanup.
type SettingsInput struct {
	HeroImageURL       string `json:"heroImageUrl"`
	HeroHeadline       string `json:"heroHeadline"`
	HeroHeadlineLegacy string `json:"heroHeadLine"` // historical client key
	HeroImagePublicID  string `json:"heroImagePublicId"`

	Hero2ImageURL      string `json:"hero2ImageUrl"`
	Hero2Headline      string `json:"hero2Headline"`
	Hero2Tagline       string `json:"hero2Tagline"`
	Hero2ImagePublicID string `json:"hero2ImagePublicId"`

	ProductsHeroImageURL      string `json:"productsHeroImageUrl"`
	ProductsHeroHeadline      string `json:"productsHeroHeadline"`
	ProductsHeroTagline       string `json:"productsHeroTagline"`
	ProductsHeroImagePublicID string `json:"productsHeroImagePublicId"`

	AdminPass string `json:"admin_pass"`
}

// SettingsService upserts the singleton settings document and cleans up
// replaced or cleared hero images, one slot at a time.
type SettingsService struct {
	Store  SettingsStore
	Assets assets.Store
}

func NewSettingsService(store SettingsStore, as assets.Store) *SettingsService {
	return &SettingsService{Store: store, Assets: as}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	return s.Store.Get(ctx)
}

func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*domain.SiteSettings, error) {
	if in.HeroHeadline == "" && in.HeroHeadlineLegacy != "" {
		in.HeroHeadline = in.HeroHeadlineLegacy
	}

	next := &domain.SiteSettings{
		HeroImageURL:      in.HeroImageURL,
		HeroHeadline:      validate.Clamp(in.HeroHeadline, maxHeadlineLen),
		HeroImagePublicID: in.HeroImagePublicID,

		Hero2ImageURL:      in.Hero2ImageURL,
		Hero2Headline:      validate.Clamp(in.Hero2Headline, maxHeadlineLen),
		Hero2Tagline:       validate.Clamp(in.Hero2Tagline, maxTaglineLen),
		Hero2ImagePublicID: in.Hero2ImagePublicID,

		ProductsHeroImageURL:      in.ProductsHeroImageURL,
		ProductsHeroHeadline:      validate.Clamp(in.ProductsHeroHeadline, maxHeadlineLen),
		ProductsHeroTagline:       validate.Clamp(in.ProductsHeroTagline, maxTaglineLen),
		ProductsHeroImagePublicID: in.ProductsHeroImagePublicID,
	}

	// The admin secret is only touched when a new one is submitted; it is
	// hashed before it ever reaches the store.
	if in.AdminPass != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPass), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		next.AdminPass = string(hash)
	}

	prev, err := s.Store.Get(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.Store.Upsert(ctx, next)
	if err != nil {
		return nil, err
	}

	// Per-slot best-effort cleanup; a failing slot never aborts its siblings.
	slots := []struct {
		name           string
		prevID, nextID string
		nextURL        string
	}{
		{"hero", prev.HeroImagePublicID, next.HeroImagePublicID, next.HeroImageURL},
		{"hero2", prev.Hero2ImagePublicID, next.Hero2ImagePublicID, next.Hero2ImageURL},
		{"productsHero", prev.ProductsHeroImagePublicID, next.ProductsHeroImagePublicID, next.ProductsHeroImageURL},
	}
	var wg sync.WaitGroup
	for _, slot := range slots {
		stale := ""
		switch {
		case slot.nextID != "" && slot.prevID != "" && slot.nextID != slot.prevID:
			stale = slot.prevID
		case slot.nextURL == "" && slot.prevID != "":
			stale = slot.prevID
		}
		if stale == "" {
			continue
		}
		wg.Add(1)
		go func(name, id string) {
			defer wg.Done()
			if err := s.Assets.Destroy(ctx, id); err != nil {
				applog.Warn("settings.asset.destroy.fail", err, map[string]any{"slot": name, "public_id": id})
			}
		}(slot.name, stale)
	}
	wg.Wait()

	return out, nil
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"patharwalay/internal/assets"
	"patharwalay/internal/domain"
	applog "patharwalay/internal/log"
	"patharwalay/internal/repos"
	"patharwalay/internal/services"
)

// PagesHandler serves the public storefront pages. Pages degrade to empty
// content when the store is unreachable instead of erroring.
type PagesHandler struct {
	Catalog  *services.CatalogService
	Settings *services.SettingsService
}

func (h *PagesHandler) settings(c *fiber.Ctx) *domain.SiteSettings {
	doc, err := h.Settings.Get(c.Context())
	if err != nil {
		applog.Error(c, "pages.settings.fail", err, nil)
		return &domain.SiteSettings{}
	}
	return doc
}

// Home renders the hero banners plus the featured selection.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	s := h.settings(c)
	featured, err := h.Catalog.List(c.Context(), domain.Query{Featured: true, PageSize: 8})
	if err != nil {
		applog.Error(c, "pages.home.list.fail", err, nil)
		featured = nil
	}
	return render(c, "home", fiber.Map{
		"HeroImage":     assets.PolishURL(s.HeroImageURL),
		"HeroHeadline":  s.HeroHeadline,
		"Hero2Image":    assets.PolishURL(s.Hero2ImageURL),
		"Hero2Headline": s.Hero2Headline,
		"Hero2Tagline":  s.Hero2Tagline,
		"Products":      polishItems(featured),
	})
}

// Products renders the full catalog with search and category filtering.
func (h *PagesHandler) Products(c *fiber.Ctx) error {
	s := h.settings(c)
	q := domain.Query{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 0),
	}
	items, err := h.Catalog.List(c.Context(), q)
	if err != nil {
		applog.Error(c, "pages.products.list.fail", err, nil)
		items = nil
	}
	return render(c, "products", fiber.Map{
		"HeroImage":    assets.PolishURL(s.ProductsHeroImageURL),
		"HeroHeadline": s.ProductsHeroHeadline,
		"HeroTagline":  s.ProductsHeroTagline,
		"Q":            q.Q,
		"Category":     q.Category,
		"Products":     polishItems(items),
		"Count":        len(items),
	})
}

// Detail renders a single product page, looked up by slug.
func (h *PagesHandler) Detail(c *fiber.Ctx) error {
	p, err := h.Catalog.GetBySlug(c.Context(), c.Params("slug"))
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if err != nil {
		applog.Error(c, "pages.detail.fail", err, nil)
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	imgs := make([]string, 0, len(p.Images))
	for _, u := range p.Images {
		imgs = append(imgs, assets.PolishURL(u))
	}
	return render(c, "product", fiber.Map{
		"P":      p,
		"Image":  assets.PolishURL(p.ImageURL),
		"Images": imgs,
	})
}

func polishItems(items []domain.ProductListItem) []domain.ProductListItem {
	out := make([]domain.ProductListItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].ImageURL = assets.PolishURL(out[i].ImageURL)
	}
	return out
}

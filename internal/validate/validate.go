// Package validate normalizes raw admin payloads before anything is written.
package validate

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"patharwalay/internal/domain"
)

const (
	maxTitleLen       = 160
	maxDescriptionLen = 5000
	maxImages         = 7
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title too long")

	nonSlug   = regexp.MustCompile(`[^a-z0-9]+`)
	nonDigits = regexp.MustCompile(`[^0-9]`)
)

// Product sanitizes an untyped create/update payload into a catalog item.
// Rejects only on title problems; every other field is coerced to something
// storable. Slug is derived from the title when absent; collision handling
// happens later, at write time.
func Product(src map[string]any) (*domain.Product, error) {
	if src == nil {
		return nil, errors.New("invalid body")
	}

	title := strings.TrimSpace(str(src["title"]))
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLen {
		return nil, ErrTitleTooLong
	}

	p := &domain.Product{
		Title:       title,
		Description: clamp(strings.TrimSpace(str(src["description"])), maxDescriptionLen),
		Price:       price(src["price"]),
		Category:    Category(src["category"]),
		OnSale:      truthy(src["onSale"]),
		Featured:    truthy(src["featured"]),
		InStock:     true,
	}
	if v, ok := src["inStock"]; ok && v != nil {
		p.InStock = truthy(v)
	}

	p.Images = images(src["images"])
	p.ImageURL = strings.TrimSpace(str(src["imageUrl"]))
	if p.ImageURL == "" && len(p.Images) > 0 {
		p.ImageURL = p.Images[0]
	}

	p.Slug = strings.TrimSpace(str(src["slug"]))
	if p.Slug == "" {
		p.Slug = Slug(title)
	}
	return p, nil
}

// Slug lowercases the title and collapses every non-alphanumeric run into a
// single dash.
func Slug(title string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	return strings.Trim(s, "-")
}

// Category normalizes a stored category value into the small fixed
// vocabulary, passing unrecognized values through lowercased.
func Category(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	c := strings.ToLower(strings.TrimSpace(s))
	switch c {
	case "gem", "gems", "gemstone", "gemstones":
		return "gemstone"
	case "ring", "rings":
		return "ring"
	case "bracelet", "bracelets", "bangle", "bangles":
		return "bracelet"
	case "uncategorized", "none", "empty", "null", "":
		return ""
	}
	return c
}

// CategoryFilter normalizes a listing filter. Unlike Category, the
// "uncategorized" family stays distinct from "" so callers can ask for items
// with no category ("" means all).
func CategoryFilter(s string) string {
	c := strings.ToLower(strings.TrimSpace(s))
	switch c {
	case "":
		return ""
	case "uncategorized", "none", "empty", "null":
		return "uncategorized"
	}
	return Category(c)
}

func price(v any) int64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return 0
		}
		return int64(math.Floor(n))
	case int:
		if n < 0 {
			return 0
		}
		return int64(n)
	case int64:
		if n < 0 {
			return 0
		}
		return n
	case string:
		digits := nonDigits.ReplaceAllString(n, "")
		parsed, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

// images accepts an array of strings or a single string, dropping empties,
// deduplicating while preserving order, and capping at the image limit.
func images(v any) []string {
	var raw []string
	switch in := v.(type) {
	case []any:
		for _, e := range in {
			raw = append(raw, str(e))
		}
	case []string:
		raw = in
	case string:
		raw = []string{in}
	default:
		return nil
	}

	seen := map[string]bool{}
	var out []string
	for _, u := range raw {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
		if len(out) == maxImages {
			break
		}
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func clamp(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Clamp bounds a settings string field.
func Clamp(s string, n int) string { return clamp(s, n) }

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != "" && t != "false" && t != "0"
	case nil:
		return false
	}
	return true
}

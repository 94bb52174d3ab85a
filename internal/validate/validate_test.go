package validate_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"patharwalay/internal/validate"
)

func TestProductDefaults(t *testing.T) {
	p, err := validate.Product(map[string]any{
		"title":  "Ruby Ring",
		"price":  float64(15000),
		"images": []any{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Slug != "ruby-ring" {
		t.Fatalf("slug: want ruby-ring, got %q", p.Slug)
	}
	if p.Price != 15000 {
		t.Fatalf("price: want 15000, got %d", p.Price)
	}
	if !p.InStock {
		t.Fatal("inStock should default to true")
	}
	if p.OnSale || p.Featured {
		t.Fatal("onSale/featured should default to false")
	}
}

func TestProductTitleRules(t *testing.T) {
	if _, err := validate.Product(map[string]any{"title": "   "}); !errors.Is(err, validate.ErrTitleRequired) {
		t.Fatalf("blank title: want ErrTitleRequired, got %v", err)
	}
	if _, err := validate.Product(map[string]any{"title": strings.Repeat("x", 161)}); !errors.Is(err, validate.ErrTitleTooLong) {
		t.Fatalf("long title: want ErrTitleTooLong, got %v", err)
	}
	if _, err := validate.Product(map[string]any{"title": strings.Repeat("x", 160)}); err != nil {
		t.Fatalf("160-char title should pass: %v", err)
	}
}

func TestPriceCoercion(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{float64(1999), 1999},
		{float64(-5), 0},
		{float64(19.99), 19},
		{"Rs 1,500", 1500},
		{"free", 0},
		{nil, 0},
		{true, 0},
	}
	for _, tc := range cases {
		p, err := validate.Product(map[string]any{"title": "T", "price": tc.in})
		if err != nil {
			t.Fatal(err)
		}
		if p.Price != tc.want {
			t.Errorf("price(%v): want %d, got %d", tc.in, tc.want, p.Price)
		}
	}
}

func TestImagesCapDedupeOrder(t *testing.T) {
	in := []any{"a", "b", "a", "c", "d", "e", "f", "g", "h", "i"}
	p, err := validate.Product(map[string]any{"title": "T", "images": in})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "d", "e", "f", "g"}
	if !reflect.DeepEqual(p.Images, want) {
		t.Fatalf("images: want %v, got %v", want, p.Images)
	}
	if p.ImageURL != "a" {
		t.Fatalf("imageUrl should default to first image, got %q", p.ImageURL)
	}
}

func TestImagesSingleString(t *testing.T) {
	p, err := validate.Product(map[string]any{"title": "T", "images": "solo.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Images) != 1 || p.Images[0] != "solo.jpg" {
		t.Fatalf("single string image: got %v", p.Images)
	}
}

func TestDescriptionClamp(t *testing.T) {
	p, err := validate.Product(map[string]any{"title": "T", "description": strings.Repeat("d", 6000)})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Description) != 5000 {
		t.Fatalf("description should clamp to 5000, got %d", len(p.Description))
	}
}

func TestCategoryNormalization(t *testing.T) {
	cases := map[string]string{
		"Gems":      "gemstone",
		"gemstone":  "gemstone",
		"RINGS":     "ring",
		"bangle":    "bracelet",
		"none":      "",
		"null":      "",
		"":          "",
		"  Amulet ": "amulet",
	}
	for in, want := range cases {
		if got := validate.Category(in); got != want {
			t.Errorf("Category(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestCategoryFilter(t *testing.T) {
	cases := map[string]string{
		"gem":           "gemstone",
		"uncategorized": "uncategorized",
		"none":          "uncategorized",
		"":              "",
		"antique":       "antique",
	}
	for in, want := range cases {
		if got := validate.CategoryFilter(in); got != want {
			t.Errorf("CategoryFilter(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Ruby Ring":          "ruby-ring",
		"  Emerald & Gold  ": "emerald-gold",
		"--x--":              "x",
	}
	for in, want := range cases {
		if got := validate.Slug(in); got != want {
			t.Errorf("Slug(%q): want %q, got %q", in, want, got)
		}
	}
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. Price is stored in the smallest currency unit.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       int64              `bson:"price" json:"price"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Slug        string             `bson:"slug" json:"slug"`
	OnSale      bool               `bson:"onSale" json:"onSale"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductListItem is the projection served on listing endpoints; the full
// description is deliberately left out.
type ProductListItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Price    int64              `bson:"price" json:"price"`
	ImageURL string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Images   []string           `bson:"images,omitempty" json:"images,omitempty"`
	Slug     string             `bson:"slug" json:"slug"`
	OnSale   bool               `bson:"onSale" json:"onSale"`
	InStock  bool               `bson:"inStock" json:"inStock"`
}

// Query carries normalized listing parameters. Category is expected to be
// already passed through validate.Category.
type Query struct {
	Q        string
	Category string
	Featured bool
	Page     int
	PageSize int
}

// SiteSettings is a singleton document: three hero slots plus the optional
// admin secret. AdminPass is never serialized to JSON responses.
type SiteSettings struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	HeroImageURL      string `bson:"heroImageUrl,omitempty" json:"heroImageUrl,omitempty"`
	HeroHeadline      string `bson:"heroHeadline,omitempty" json:"heroHeadline,omitempty"`
	HeroImagePublicID string `bson:"heroImagePublicId,omitempty" json:"heroImagePublicId,omitempty"`

	Hero2ImageURL      string `bson:"hero2ImageUrl,omitempty" json:"hero2ImageUrl,omitempty"`
	Hero2Headline      string `bson:"hero2Headline,omitempty" json:"hero2Headline,omitempty"`
	Hero2Tagline       string `bson:"hero2Tagline,omitempty" json:"hero2Tagline,omitempty"`
	Hero2ImagePublicID string `bson:"hero2ImagePublicId,omitempty" json:"hero2ImagePublicId,omitempty"`

	ProductsHeroImageURL      string `bson:"productsHeroImageUrl,omitempty" json:"productsHeroImageUrl,omitempty"`
	ProductsHeroHeadline      string `bson:"productsHeroHeadline,omitempty" json:"productsHeroHeadline,omitempty"`
	ProductsHeroTagline       string `bson:"productsHeroTagline,omitempty" json:"productsHeroTagline,omitempty"`
	ProductsHeroImagePublicID string `bson:"productsHeroImagePublicId,omitempty" json:"productsHeroImagePublicId,omitempty"`

	AdminPass string `bson:"admin_pass,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"-"`
}

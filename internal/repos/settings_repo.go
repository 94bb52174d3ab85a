package repos

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"patharwalay/internal/domain"
)

const settingsCollection = "sitesettings"

// SettingsRepo manages the singleton site-settings document.
type SettingsRepo struct {
	col *mongo.Collection
}

func NewSettingsRepo(db *mongo.Database) *SettingsRepo {
	return &SettingsRepo{col: db.Collection(settingsCollection)}
}

// Get returns the settings document, or a zero value when none exists yet
// (a fresh instance has no settings and no admin secret).
func (r *SettingsRepo) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.col.FindOne(ctx, bson.D{}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &domain.SiteSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert replaces the singleton document with s and returns the stored copy.
func (r *SettingsRepo) Upsert(ctx context.Context, s *domain.SiteSettings) (*domain.SiteSettings, error) {
	now := time.Now().UTC()
	set := bson.D{
		{Key: "heroImageUrl", Value: s.HeroImageURL},
		{Key: "heroHeadline", Value: s.HeroHeadline},
		{Key: "heroImagePublicId", Value: s.HeroImagePublicID},
		{Key: "hero2ImageUrl", Value: s.Hero2ImageURL},
		{Key: "hero2Headline", Value: s.Hero2Headline},
		{Key: "hero2Tagline", Value: s.Hero2Tagline},
		{Key: "hero2ImagePublicId", Value: s.Hero2ImagePublicID},
		{Key: "productsHeroImageUrl", Value: s.ProductsHeroImageURL},
		{Key: "productsHeroHeadline", Value: s.ProductsHeroHeadline},
		{Key: "productsHeroTagline", Value: s.ProductsHeroTagline},
		{Key: "productsHeroImagePublicId", Value: s.ProductsHeroImagePublicID},
		{Key: "updatedAt", Value: now},
	}
	if s.AdminPass != "" {
		set = append(set, bson.E{Key: "admin_pass", Value: s.AdminPass})
	}
	update := bson.D{
		{Key: "$set", Value: set},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out domain.SiteSettings
	if err := r.col.FindOneAndUpdate(ctx, bson.D{}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

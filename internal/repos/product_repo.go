package repos

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"patharwalay/internal/domain"
)

const productsCollection = "products"

var ErrNotFound = errors.New("not found")

type ProductRepo struct {
	col *mongo.Collection
}

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{col: db.Collection(productsCollection)}
}

var listProjection = bson.D{
	{Key: "title", Value: 1},
	{Key: "price", Value: 1},
	{Key: "images", Value: 1},
	{Key: "imageUrl", Value: 1},
	{Key: "slug", Value: 1},
	{Key: "onSale", Value: 1},
	{Key: "inStock", Value: 1},
}

// List returns newest-first list-projected items matching q. Free text
// matches title or description as a case-insensitive substring; regex
// metacharacters are escaped before they reach the server. Category matching
// is a case-insensitive prefix, with "uncategorized" meaning absent or empty.
func (r *ProductRepo) List(ctx context.Context, q domain.Query) ([]domain.ProductListItem, error) {
	filter := bson.D{}
	if q.Q != "" {
		pat := primitive.Regex{Pattern: regexp.QuoteMeta(q.Q), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pat}},
			bson.D{{Key: "description", Value: pat}},
		}})
	}
	switch q.Category {
	case "":
	case "uncategorized":
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "category", Value: bson.D{{Key: "$exists", Value: false}}}},
			bson.D{{Key: "category", Value: ""}},
		}})
	default:
		filter = append(filter, bson.E{Key: "category", Value: primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(q.Category),
			Options: "i",
		}})
	}
	if q.Featured {
		filter = append(filter, bson.E{Key: "featured", Value: true})
	}

	opts := options.Find().
		SetProjection(listProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.PageSize)).
		SetLimit(int64(q.PageSize))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.ProductListItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var p domain.Product
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	err := r.col.FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugTaken reports whether another document already holds slug. excludeID
// is ignored when empty or not a valid object id (create path).
func (r *ProductRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.D{{Key: "slug", Value: slug}}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}})
	}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

// Update applies the sanitized fields to an existing document and returns
// the updated record. createdAt is left untouched.
func (r *ProductRepo) Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set := bson.D{
		{Key: "title", Value: p.Title},
		{Key: "description", Value: p.Description},
		{Key: "price", Value: p.Price},
		{Key: "imageUrl", Value: p.ImageURL},
		{Key: "images", Value: p.Images},
		{Key: "category", Value: p.Category},
		{Key: "slug", Value: p.Slug},
		{Key: "onSale", Value: p.OnSale},
		{Key: "inStock", Value: p.InStock},
		{Key: "featured", Value: p.Featured},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Product
	err = r.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

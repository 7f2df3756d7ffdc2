package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/threadline/storefront-api/internal/core/domain"
)

const pageCollection = "pages"

// PageRepository stores informational pages (shipping & delivery, fabric
// care, FAQs, legal pages) keyed by slug.
type PageRepository struct {
	coll *mongo.Collection
}

func NewPageRepository(db *mongo.Database) *PageRepository {
	return &PageRepository{coll: db.Collection(pageCollection)}
}

type mongoPage struct {
	Slug      string `bson:"_id"`
	Title     string `bson:"title"`
	Body      string `bson:"body"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *PageRepository) FindBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	var mp mongoPage
	if err := r.coll.FindOne(ctx, bson.M{"_id": slug}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("find page: %w", err)
	}

	return &domain.Page{
		Slug:      mp.Slug,
		Title:     mp.Title,
		Body:      mp.Body,
		UpdatedAt: unixToTime(mp.UpdatedAt),
	}, nil
}

func (r *PageRepository) Upsert(ctx context.Context, page *domain.Page) error {
	doc := mongoPage{
		Slug:      page.Slug,
		Title:     page.Title,
		Body:      page.Body,
		UpdatedAt: page.UpdatedAt.Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": page.Slug}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert page: %w", err)
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

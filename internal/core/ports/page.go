package ports

import (
	"context"

	"github.com/threadline/storefront-api/internal/core/domain"
)

// PageRepository persists informational pages by slug.
type PageRepository interface {
	FindBySlug(ctx context.Context, slug string) (*domain.Page, error)
	Upsert(ctx context.Context, page *domain.Page) error
}

// StorefrontRepository reads the shop-wide settings singleton.
type StorefrontRepository interface {
	Get(ctx context.Context) (*domain.Storefront, error)
}

// PageService serves informational content.
type PageService interface {
	Page(ctx context.Context, slug string) (*domain.Page, error)
	UpsertPage(ctx context.Context, page *domain.Page) error
	Settings(ctx context.Context) (*domain.Storefront, error)
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

// PageService serves the informational pages and the storefront settings.
type PageService struct {
	pages    ports.PageRepository
	settings ports.StorefrontRepository
	log      zerolog.Logger
}

func NewPageService(pages ports.PageRepository, settings ports.StorefrontRepository, log zerolog.Logger) *PageService {
	return &PageService{pages: pages, settings: settings, log: log}
}

func (s *PageService) Page(ctx context.Context, slug string) (*domain.Page, error) {
	return s.pages.FindBySlug(ctx, slug)
}

func (s *PageService) UpsertPage(ctx context.Context, page *domain.Page) error {
	page.UpdatedAt = time.Now().UTC()
	if err := s.pages.Upsert(ctx, page); err != nil {
		return err
	}
	s.log.Info().Str("slug", page.Slug).Msg("page upserted")
	return nil
}

func (s *PageService) Settings(ctx context.Context) (*domain.Storefront, error) {
	return s.settings.Get(ctx)
}

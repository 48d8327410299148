package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/search"
)

// Result is the outcome of a catalog fetch
type Result struct {
	Items  []*domain.Item
	Failed bool // the source errored; Items is empty
}

// Service fetches catalog items and derives the display list.
//
// In remote mode the source owns search: the query overrides the category and
// the fetch result is displayed as-is. In local mode everything is fetched once
// and narrowed client-side with query AND category.
type Service struct {
	source     domain.ItemSource
	remote     bool
	categories []string
	logger     *slog.Logger
}

// NewService creates a new catalog service
func NewService(source domain.ItemSource, remote bool, categories []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if len(categories) == 0 {
		categories = Genres
	}
	return &Service{
		source:     source,
		remote:     remote,
		categories: categories,
		logger:     logger,
	}
}

// Remote reports whether search is delegated to the source
func (s *Service) Remote() bool {
	return s.remote
}

// Categories returns the categories offered for this catalog
func (s *Service) Categories() []string {
	return s.categories
}

// Fetch loads items from the source. Errors never propagate: a failed fetch
// yields an empty list with Failed set.
func (s *Service) Fetch(ctx context.Context, query, category string) Result {
	items, err := s.source.FetchItems(ctx, query, category)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Debug("catalog fetch cancelled", "query", query, "category", category)
		} else {
			s.logger.Error("catalog fetch failed", "error", err, "query", query, "category", category)
		}
		return Result{Items: []*domain.Item{}, Failed: true}
	}
	if items == nil {
		items = []*domain.Item{}
	}
	s.logger.Debug("catalog fetch complete", "query", query, "category", category, "count", len(items))
	return Result{Items: items}
}

// FetchAll loads the unfiltered listing
func (s *Service) FetchAll(ctx context.Context) Result {
	return s.Fetch(ctx, "", domain.CategoryAll)
}

// Display derives the display list from the loaded items
func (s *Service) Display(items []*domain.Item, query, category string) []*domain.Item {
	if s.remote {
		return items
	}
	return search.Filter(items, query, category)
}

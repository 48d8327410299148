package catalog

import (
	"log/slog"
	"time"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(url string, startOffset time.Duration) error
}

// TrailerService opens item trailers in an external player
type TrailerService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewTrailerService creates a new trailer service
func NewTrailerService(launcher launcher, logger *slog.Logger) *TrailerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrailerService{
		launcher: launcher,
		logger:   logger,
	}
}

// Play launches the item's trailer from offset.
// Returns domain.ErrNoTrailer when the item has nothing to play.
func (s *TrailerService) Play(item *domain.Item, offset time.Duration) error {
	if item == nil || !item.HasTrailer() {
		return domain.ErrNoTrailer
	}

	url := item.Trailer.WatchURL()
	s.logger.Info("launching trailer", "title", item.Title, "itemID", item.ID, "offset", offset)

	if err := s.launcher.Launch(url, offset); err != nil {
		s.logger.Error("failed to launch trailer", "error", err, "itemID", item.ID)
		return err
	}
	return nil
}

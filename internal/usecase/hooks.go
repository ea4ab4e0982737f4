package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/totegamma/portalgun"
)

// writeHooks runs the side effects shared by every successful write. Both
// collaborators are optional and their failures never fail the write.
type writeHooks struct {
	cache  CharacterListCache
	events EventPublisher
	now    func() time.Time
}

func newWriteHooks(cache CharacterListCache, events EventPublisher) writeHooks {
	return writeHooks{cache: cache, events: events, now: time.Now}
}

func (h writeHooks) afterWrite(ctx context.Context, event portalgun.Event) {
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			slog.WarnContext(
				ctx, "failed to invalidate character list cache",
				slog.String("error", err.Error()),
				slog.String("module", "usecase"),
			)
		}
	}

	if h.events != nil {
		if event.Timestamp.IsZero() {
			event.Timestamp = h.now().UTC()
		}
		if err := h.events.Publish(ctx, event); err != nil {
			slog.WarnContext(
				ctx, "failed to publish event",
				slog.String("type", event.Type),
				slog.String("error", err.Error()),
				slog.String("module", "usecase"),
			)
		}
	}
}

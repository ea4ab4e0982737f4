package usecase

import (
	"context"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/internal/domain"
)

// DocumentStore is the characters collection. Implementations return
// domain.ErrNotFound from SampleOne and FindOneAndUpdate when nothing matches.
type DocumentStore interface {
	NewID() string
	ValidID(id string) bool
	InsertOne(ctx context.Context, doc domain.Document) (string, error)
	// FindOneAndUpdate applies patch to a single matching document and returns
	// it as it is after the update, in one atomic operation.
	FindOneAndUpdate(ctx context.Context, filter domain.Filter, patch domain.Patch) (*domain.Document, error)
	// SampleOne picks a matching document uniformly at random.
	SampleOne(ctx context.Context, filter domain.Filter) (*domain.Document, error)
	Find(ctx context.Context, filter domain.Filter, opts domain.FindOptions) ([]domain.Document, error)
	DeleteOne(ctx context.Context, filter domain.Filter) (int64, error)
	Ping(ctx context.Context) error
}

// CharacterListCache holds character listings keyed by dimension filter.
// Get returns a generation token even on a miss. Set stores a listing only
// under the generation of that token, so rows read before an Invalidate are
// never served after it. A zero token means the cache could not be read and
// Set does nothing.
type CharacterListCache interface {
	Get(ctx context.Context, dimension string) (characters []portalgun.Character, token uint64, ok bool)
	Set(ctx context.Context, dimension string, token uint64, characters []portalgun.Character) error
	Invalidate(ctx context.Context) error
}

// EventPublisher fans write notifications out to realtime subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event portalgun.Event) error
}

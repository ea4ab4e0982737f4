package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/internal/domain"
)

var tracer = otel.Tracer("usecase")

// StealUsecase relocates a random eligible character into Rick Prime's
// dimension and leaves a stone where it stood.
//
// The stone is inserted before the character is migrated. The store offers no
// cross-document transaction, so a failure between the two writes leaves an
// orphan stone pointing at a character that never moved. Orphans are not
// cleaned up here.
type StealUsecase struct {
	store DocumentStore
	hooks writeHooks
	now   func() time.Time
}

func NewStealUsecase(store DocumentStore, cache CharacterListCache, events EventPublisher) *StealUsecase {
	return &StealUsecase{
		store: store,
		hooks: newWriteHooks(cache, events),
		now:   time.Now,
	}
}

func (uc *StealUsecase) Steal(ctx context.Context) (portalgun.StealResult, error) {
	ctx, span := tracer.Start(ctx, "RickPrime.Usecase.Steal")
	defer span.End()

	selected, err := uc.selectCharacter(ctx)
	if err != nil {
		span.RecordError(err)
		return portalgun.StealResult{}, err
	}
	span.SetAttributes(attribute.String("CharacterID", selected.ID))

	dimension := selected.CurrentDimension

	stoneDoc := domain.NewStoneDocument(uc.store.NewID(), selected, uc.now().UTC())
	stoneID, err := uc.store.InsertOne(ctx, stoneDoc)
	if err != nil {
		err = domain.StoreWriteFailedError{Step: "mark", Err: err}
		span.RecordError(err)
		slog.ErrorContext(
			ctx, "failed to insert stone",
			slog.String("character", selected.ID),
			slog.String("error", err.Error()),
			slog.String("module", "rickprime"),
		)
		return portalgun.StealResult{}, err
	}
	stoneDoc.ID = stoneID
	span.SetAttributes(attribute.String("StoneID", stoneID))

	updated, err := uc.store.FindOneAndUpdate(
		ctx,
		domain.EligibleFilter().WithID(selected.ID),
		domain.StealPatch(dimension),
	)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.StoreWriteFailedError{Step: "migrate", Err: domain.ErrMigrationConflict}
			slog.WarnContext(
				ctx, "character changed before migration, stone left orphaned",
				slog.String("character", selected.ID),
				slog.String("stone", stoneID),
				slog.String("module", "rickprime"),
			)
		} else {
			err = domain.StoreWriteFailedError{Step: "migrate", Err: err}
			slog.ErrorContext(
				ctx, "failed to migrate character, stone left orphaned",
				slog.String("character", selected.ID),
				slog.String("stone", stoneID),
				slog.String("error", err.Error()),
				slog.String("module", "rickprime"),
			)
		}
		span.RecordError(err)
		return portalgun.StealResult{}, err
	}

	character, ok := domain.ToCharacterView(updated)
	if !ok {
		err = domain.StoreWriteFailedError{
			Step: "migrate",
			Err:  errors.Errorf("store returned a non-character document for %s", selected.ID),
		}
		span.RecordError(err)
		return portalgun.StealResult{}, err
	}
	stone, _ := domain.ToStoneView(&stoneDoc)

	slog.InfoContext(
		ctx, "Rick Prime stole a character",
		slog.String("character", character.ID),
		slog.String("name", character.Name),
		slog.String("from", dimension),
		slog.String("stone", stone.ID),
		slog.String("module", "rickprime"),
	)

	uc.hooks.afterWrite(ctx, portalgun.Event{
		Type:      portalgun.EventCharacterStolen,
		Character: &character,
		Stone:     &stone,
	})

	return portalgun.StealResult{Character: character, Stone: stone}, nil
}

func (uc *StealUsecase) selectCharacter(ctx context.Context) (domain.Character, error) {
	doc, err := uc.store.SampleOne(ctx, domain.EligibleFilter())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.WarnContext(
				ctx, "Rick Prime found nothing to steal",
				slog.String("module", "rickprime"),
			)
			return domain.Character{}, domain.ErrNoCharactersAvailable
		}
		return domain.Character{}, domain.StoreWriteFailedError{Step: "select", Err: err}
	}

	variant, err := domain.Decode(*doc)
	if err != nil {
		slog.ErrorContext(
			ctx, "sampled character is malformed, fix or remove it",
			slog.String("id", doc.ID),
			slog.String("error", err.Error()),
			slog.String("module", "rickprime"),
		)
		return domain.Character{}, domain.StoreWriteFailedError{Step: "select", Err: err}
	}
	character, ok := variant.(domain.Character)
	if !ok {
		return domain.Character{}, domain.StoreWriteFailedError{
			Step: "select",
			Err:  errors.Errorf("sampled document %s is not a character", doc.ID),
		}
	}
	return character, nil
}

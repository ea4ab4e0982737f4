package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/internal/domain"
)

// listLimit caps a single listing.
const listLimit = 1000

type CharacterUsecase struct {
	store DocumentStore
	cache CharacterListCache
	hooks writeHooks
	now   func() time.Time
}

func NewCharacterUsecase(store DocumentStore, cache CharacterListCache, events EventPublisher) *CharacterUsecase {
	return &CharacterUsecase{
		store: store,
		cache: cache,
		hooks: newWriteHooks(cache, events),
		now:   time.Now,
	}
}

// List returns characters sorted by name, optionally restricted to one
// current dimension. Stones are never included.
func (uc *CharacterUsecase) List(ctx context.Context, dimension string) ([]portalgun.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Usecase.List")
	defer span.End()

	dimension = strings.TrimSpace(dimension)
	span.SetAttributes(attribute.String("Dimension", dimension))

	var token uint64
	if uc.cache != nil {
		cached, gen, ok := uc.cache.Get(ctx, dimension)
		if ok {
			return cached, nil
		}
		token = gen
	}

	filter := domain.CharacterFilter()
	if dimension != "" {
		filter = filter.InDimension(dimension)
	}

	docs, err := uc.store.Find(ctx, filter, domain.FindOptions{
		SortBy: domain.FieldName,
		Order:  domain.Ascending,
		Limit:  listLimit,
	})
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "list characters")
	}

	characters := domain.ToCharacterViews(docs)
	slog.InfoContext(
		ctx, "listed characters",
		slog.Int("count", len(characters)),
		slog.String("dimension", dimension),
		slog.String("module", "character"),
	)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, dimension, token, characters); err != nil {
			slog.WarnContext(
				ctx, "failed to cache character list",
				slog.String("error", err.Error()),
				slog.String("module", "character"),
			)
		}
	}

	return characters, nil
}

func (uc *CharacterUsecase) Create(ctx context.Context, req portalgun.CreateCharacterRequest) (portalgun.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Usecase.Create")
	defer span.End()

	character, err := validateCreate(req, uc.now().UTC())
	if err != nil {
		return portalgun.Character{}, err
	}
	character.ID = uc.store.NewID()

	doc := domain.NewCharacterDocument(character)
	id, err := uc.store.InsertOne(ctx, doc)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(
			ctx, "failed to create character",
			slog.String("name", character.Name),
			slog.String("error", err.Error()),
			slog.String("module", "character"),
		)
		return portalgun.Character{}, errors.Wrap(err, "create character")
	}
	doc.ID = id

	view, ok := domain.ToCharacterView(&doc)
	if !ok {
		return portalgun.Character{}, errors.Errorf("created document %s is not a character", id)
	}

	slog.InfoContext(
		ctx, "character created",
		slog.String("id", view.ID),
		slog.String("name", view.Name),
		slog.String("module", "character"),
	)
	uc.hooks.afterWrite(ctx, portalgun.Event{Type: portalgun.EventCharacterCreated, Character: &view})

	return view, nil
}

func (uc *CharacterUsecase) Update(ctx context.Context, id string, req portalgun.UpdateCharacterRequest) (portalgun.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Usecase.Update")
	defer span.End()

	if !uc.store.ValidID(id) {
		return portalgun.Character{}, domain.ErrInvalidID
	}
	patch, err := validateUpdate(req)
	if err != nil {
		return portalgun.Character{}, err
	}

	view, err := uc.patch(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		return portalgun.Character{}, err
	}

	slog.InfoContext(
		ctx, "character updated",
		slog.String("id", id),
		slog.String("module", "character"),
	)
	uc.hooks.afterWrite(ctx, portalgun.Event{Type: portalgun.EventCharacterUpdated, Character: &view})

	return view, nil
}

func (uc *CharacterUsecase) Move(ctx context.Context, id string, req portalgun.MoveCharacterRequest) (portalgun.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Usecase.Move")
	defer span.End()

	if !uc.store.ValidID(id) {
		return portalgun.Character{}, domain.ErrInvalidID
	}
	target, err := validDimension("target_dimension", req.TargetDimension)
	if err != nil {
		return portalgun.Character{}, err
	}

	view, err := uc.patch(ctx, id, domain.Patch{CurrentDimension: &target})
	if err != nil {
		span.RecordError(err)
		return portalgun.Character{}, err
	}

	slog.InfoContext(
		ctx, "character moved",
		slog.String("id", id),
		slog.String("dimension", target),
		slog.String("module", "character"),
	)
	uc.hooks.afterWrite(ctx, portalgun.Event{Type: portalgun.EventCharacterMoved, Character: &view})

	return view, nil
}

func (uc *CharacterUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Character.Usecase.Delete")
	defer span.End()

	if !uc.store.ValidID(id) {
		return domain.ErrInvalidID
	}

	deleted, err := uc.store.DeleteOne(ctx, domain.CharacterFilter().WithID(id))
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(
			ctx, "failed to delete character",
			slog.String("id", id),
			slog.String("error", err.Error()),
			slog.String("module", "character"),
		)
		return errors.Wrap(err, "delete character")
	}
	if deleted == 0 {
		slog.WarnContext(
			ctx, "character not found for delete",
			slog.String("id", id),
			slog.String("module", "character"),
		)
		return domain.NotFoundError{Resource: "character"}
	}

	slog.InfoContext(
		ctx, "character deleted",
		slog.String("id", id),
		slog.String("module", "character"),
	)
	uc.hooks.afterWrite(ctx, portalgun.Event{
		Type:      portalgun.EventCharacterDeleted,
		Character: &portalgun.Character{ID: id},
	})

	return nil
}

func (uc *CharacterUsecase) patch(ctx context.Context, id string, patch domain.Patch) (portalgun.Character, error) {
	doc, err := uc.store.FindOneAndUpdate(ctx, domain.CharacterFilter().WithID(id), patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.WarnContext(
				ctx, "character not found for update",
				slog.String("id", id),
				slog.String("module", "character"),
			)
			return portalgun.Character{}, domain.NotFoundError{Resource: "character"}
		}
		slog.ErrorContext(
			ctx, "failed to update character",
			slog.String("id", id),
			slog.String("error", err.Error()),
			slog.String("module", "character"),
		)
		return portalgun.Character{}, errors.Wrap(err, "update character")
	}

	view, ok := domain.ToCharacterView(doc)
	if !ok {
		return portalgun.Character{}, errors.Errorf("updated document %s is not a character", id)
	}
	return view, nil
}

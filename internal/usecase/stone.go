package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/internal/domain"
)

type StoneUsecase struct {
	store DocumentStore
}

func NewStoneUsecase(store DocumentStore) *StoneUsecase {
	return &StoneUsecase{store: store}
}

// List returns every stone, oldest first.
func (uc *StoneUsecase) List(ctx context.Context) ([]portalgun.Stone, error) {
	ctx, span := tracer.Start(ctx, "Stone.Usecase.List")
	defer span.End()

	docs, err := uc.store.Find(ctx, domain.StoneFilter(), domain.FindOptions{
		SortBy: domain.FieldCreatedAt,
		Order:  domain.Ascending,
		Limit:  listLimit,
	})
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "list stones")
	}
	return domain.ToStoneViews(docs), nil
}

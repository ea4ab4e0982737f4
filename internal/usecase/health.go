package usecase

import (
	"context"

	"github.com/pkg/errors"
)

type HealthUsecase struct {
	store DocumentStore
}

func NewHealthUsecase(store DocumentStore) *HealthUsecase {
	return &HealthUsecase{store: store}
}

func (uc *HealthUsecase) Check(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Health.Usecase.Check")
	defer span.End()

	if err := uc.store.Ping(ctx); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "document store unreachable")
	}
	return nil
}

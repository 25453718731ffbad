package inbound

import (
	"context"

	"github.com/VenkataSiriPriya/Backend-acg/internal/notification/usecase"
)

type uc interface {
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
	ConsumePlaceSubmitted(ctx context.Context, in usecase.ConsumePlaceSubmittedInput) error
	ConsumePlaceModerated(ctx context.Context, in usecase.ConsumePlaceModeratedInput) error
}

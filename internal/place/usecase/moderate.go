package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/place/entity"
)

type ModerateInput struct {
	ID     int64  `validate:"required,gt=0"`
	Status string `validate:"required,oneof=approved rejected"`
}

type ModerateOutput struct {
	Place entity.Place
}

// Moderate applies an approve or reject decision to a pending submission.
func (s *Usecase) Moderate(ctx context.Context, in ModerateInput) (*ModerateOutput, error) {
	ctx, span := s.startSpan(ctx, "Moderate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	status, ok := entity.StatusFromString(in.Status)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "status", "status must be approved or rejected")
	}

	place, err := s.repoDB.GetPlaceByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Place not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get place by id", "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePlaceStatus(ctx, in.ID, status); err != nil {
		slog.ErrorContext(ctx, "failed to repo update place status", "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	place.Status = status

	// Detached so the publish survives the request context.
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishPlaceModerated(ctx, PlaceModeratedEvent{
			PlaceID:   place.ID,
			PlaceName: place.Name,
			Status:    status,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish place moderated", "place_id", place.ID, "error", err)
		}
		return nil
	})

	return &ModerateOutput{Place: *place}, nil
}

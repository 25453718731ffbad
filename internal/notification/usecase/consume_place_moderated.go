package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
)

type ConsumePlaceModeratedInput struct {
	PlaceID   int64  `validate:"required,gt=0"`
	PlaceName string `validate:"required"`
	Status    string `validate:"required,oneof=approved rejected"`
}

// ConsumePlaceModerated records a moderation decision in the moderation inbox.
func (s *Usecase) ConsumePlaceModerated(ctx context.Context, in ConsumePlaceModeratedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePlaceModerated")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "validation failed", "error", err)
		return nil
	}

	inbox := s.moderationInbox()
	if inbox == "" {
		slog.WarnContext(ctx, "moderation inbox is not configured, skipping mail", "place_id", in.PlaceID)
		return nil
	}

	msg := mail.Message{
		To:      []string{inbox},
		Subject: fmt.Sprintf("Place %s: %s", in.Status, in.PlaceName),
		TextBody: fmt.Sprintf(
			"The place %q (ID %d) has been %s.",
			in.PlaceName, in.PlaceID, in.Status,
		),
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send place moderated mail", "place_id", in.PlaceID, "error", err)
		return err
	}

	return nil
}

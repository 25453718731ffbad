package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
)

type ConsumePlaceSubmittedInput struct {
	PlaceID   int64  `validate:"required,gt=0"`
	PlaceName string `validate:"required"`
	PlaceType string
	City      string
}

// ConsumePlaceSubmitted alerts the moderation inbox about a new submission.
func (s *Usecase) ConsumePlaceSubmitted(ctx context.Context, in ConsumePlaceSubmittedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePlaceSubmitted")
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
		Subject: fmt.Sprintf("New place submitted: %s", in.PlaceName),
		TextBody: fmt.Sprintf(
			"A new place is waiting for review.\r\n\r\nName: %s\r\nType: %s\r\nCity: %s\r\nID: %d",
			in.PlaceName, in.PlaceType, in.City, in.PlaceID,
		),
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send place submitted mail", "place_id", in.PlaceID, "error", err)
		return err
	}

	return nil
}

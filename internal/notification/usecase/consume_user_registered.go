package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
)

type ConsumeUserRegisteredInput struct {
	UserID   int64  `validate:"required,gt=0"`
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=30"`
}

// ConsumeUserRegistered greets a freshly registered account by email.
func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "validation failed", "error", err)
		return nil
	}

	msg := mail.Message{
		To:      []string{in.Email},
		Subject: "Welcome to ACG",
		TextBody: fmt.Sprintf(
			"Hi %s,\r\n\r\nYour account has been created. You can now submit accessible places and help others find them.",
			in.Username,
		),
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send welcome mail", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
)

type SendInput struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,min=5,max=5000"`
}

// Send relays a contact form message to the configured inbox. Delivery is
// synchronous so the caller knows whether the message actually went out.
func (s *Usecase) Send(ctx context.Context, in SendInput) error {
	ctx, span := s.startSpan(ctx, "Send")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	inbox := strings.TrimSpace(s.cfg.GetString("modules.contact.inbox"))
	if inbox == "" {
		slog.ErrorContext(ctx, "contact inbox is not configured")
		return goerror.NewBusiness("Failed to send message", goerror.CodeDependency)
	}

	msg := mail.Message{
		To:      []string{inbox},
		Subject: fmt.Sprintf("Contact Form Message from %s", strings.TrimSpace(in.Name)),
		TextBody: fmt.Sprintf(
			"Name: %s\r\nEmail: %s\r\nMessage:\r\n%s",
			strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), in.Message,
		),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send contact mail", "from", in.Email, "error", err)
		return goerror.NewBusiness("Failed to send message", goerror.CodeDependency)
	}

	return nil
}

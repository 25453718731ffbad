package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
)

type OTPRequestInput struct {
	Email string `validate:"required,email"`
}

type OTPRequestOutput struct {
	Email     string
	ExpiresIn int64
}

func (s *Usecase) OTPRequest(ctx context.Context, in OTPRequestInput) (*OTPRequestOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPRequest")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	if _, err := s.repoDB.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "otp requested for unknown account", "email", email)
			return nil, goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.otp.Issue(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue otp", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Delivery is synchronous; a failure does not invalidate the stored
	// code, so a later resend can still succeed within the window.
	if err := s.mailer.Send(ctx, otpMail(email, code, s.otp.TTL())); err != nil {
		slog.ErrorContext(ctx, "failed to send otp mail", "email", email, "error", err)
		return nil, goerror.NewBusiness("Failed to send OTP email", goerror.CodeDependency)
	}

	return &OTPRequestOutput{
		Email:     email,
		ExpiresIn: int64(s.otp.TTL().Seconds()),
	}, nil
}

func otpMail(to, code string, ttl time.Duration) mail.Message {
	return mail.Message{
		To:      []string{to},
		Subject: "Your OTP for Password Reset",
		TextBody: fmt.Sprintf(
			"Your OTP for password reset is: %s\r\n\r\nIt expires in %d minutes. If you did not request this, you can ignore this email.",
			code, int(ttl.Minutes()),
		),
	}
}

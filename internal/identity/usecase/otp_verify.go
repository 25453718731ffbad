package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/otp"
)

type OTPVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,otpcode"`
}

// OTPVerify checks a code without consuming it, so the user can confirm the
// code before submitting the new password.
func (s *Usecase) OTPVerify(ctx context.Context, in OTPVerifyInput) error {
	ctx, span := s.startSpan(ctx, "OTPVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	outcome, err := s.otp.Verify(ctx, email, in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify otp", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if outcome != otp.OutcomeValid {
		slog.WarnContext(ctx, "otp verification rejected", "email", email, "outcome", outcome.String())
		return mapOTPOutcome(outcome)
	}

	return nil
}

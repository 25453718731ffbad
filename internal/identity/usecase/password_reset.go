package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/otp"
)

type PasswordResetInput struct {
	Email       string `validate:"required,email"`
	Code        string `validate:"required,otpcode"`
	NewPassword string `validate:"required,password"`
}

// PasswordReset consumes the OTP and updates the credential in one step. The
// code is only burned after the database update succeeds, so a failed update
// leaves it usable for a retry.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "error", err)
		return goerror.NewServer(err)
	}

	outcome, err := s.otp.Consume(ctx, email, in.Code, func(ctx context.Context) error {
		return s.repoDB.UpdateUserPassword(ctx, user.ID, string(hashedPassword))
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to reset password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if outcome != otp.OutcomeValid {
		slog.WarnContext(ctx, "password reset rejected", "user_id", user.ID, "outcome", outcome.String())
		return mapOTPOutcome(outcome)
	}

	return nil
}

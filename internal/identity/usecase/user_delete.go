package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
)

type UserDeleteInput struct {
	ID int64 `validate:"required,gt=0"`
}

// UserDelete removes the account permanently.
func (s *Usecase) UserDelete(ctx context.Context, in UserDeleteInput) error {
	ctx, span := s.startSpan(ctx, "UserDelete")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "users", "delete")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetUserByID(ctx, in.ID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("User not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get user by id", "id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.DeleteUser(ctx, in.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete user", "id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "user deleted", "id", in.ID, "deleted_by", clm.UserID)

	return nil
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/entity"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
)

type UserListOutput struct {
	Users []entity.User
}

// UserList returns every registered account, newest first.
func (s *Usecase) UserList(ctx context.Context) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "users", "list"); err != nil {
		return nil, err
	}

	users, err := s.repoDB.GetUserList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user list", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{Users: users}, nil
}

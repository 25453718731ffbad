package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/entity"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
)

type RegisterInput struct {
	Username string `validate:"required,min=3,max=30,alphanum"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetUserByEmail(ctx, in.Email); err == nil {
		return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if _, err := s.repoDB.GetUserByUsername(ctx, in.Username); err == nil {
		return goerror.NewBusiness("Username already taken", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:       s.uid.Generate(),
		Username: in.Username,
		Email:    in.Email,
		Role:     entity.RoleUser,
	}

	if err := s.repoDB.CreateUser(ctx, newUser, string(hashedPassword)); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", newUser.Email, "error", err)
		return goerror.NewServer(err)
	}

	// Detached so the publish survives the request context.
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID:   newUser.ID,
			Email:    newUser.Email,
			Username: newUser.Username,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
		}
		return nil
	})

	return nil
}

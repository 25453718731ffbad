package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/entity"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	UserID      int64
	Username    string
	Email       string
	Role        entity.Role
	AccessToken string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	if out, ok, err := s.adminLogin(ctx, email, in.Password); ok || err != nil {
		return out, err
	}

	user, err := s.repoDB.GetUserLoginInfo(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown account", "email", email)
		return nil, goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user login info", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "login with wrong password", "user_id", user.ID)
		return nil, goerror.NewBusiness("Incorrect password", goerror.CodeUnauthorized)
	}

	role := user.Role.Ensure()
	token, err := s.jwt.Generate(user.ID, user.Email, role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        role,
		AccessToken: token,
	}, nil
}

// adminLogin handles the configured back-office account that exists outside
// the users table.
func (s *Usecase) adminLogin(ctx context.Context, email, password string) (*LoginOutput, bool, error) {
	adminEmail := s.cfg.GetString("modules.identity.admin_email")
	adminPassword := s.cfg.GetString("modules.identity.admin_password")
	if adminEmail == "" || adminPassword == "" {
		return nil, false, nil
	}

	if !strings.EqualFold(email, adminEmail) {
		return nil, false, nil
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) != 1 {
		return nil, true, goerror.NewBusiness("Incorrect password", goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(0, adminEmail, entity.RoleAdmin.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate admin access token", "error", err)
		return nil, true, goerror.NewServer(err)
	}

	return &LoginOutput{
		Username:    "admin",
		Email:       adminEmail,
		Role:        entity.RoleAdmin,
		AccessToken: token,
	}, true, nil
}

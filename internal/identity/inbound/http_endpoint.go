package inbound

import (
	"github.com/samber/lo"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/entity"
	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/usecase"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for authentication and account recovery.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a new account.
// @Summary Register user
// @Description Creates a user account with a unique email and username.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse} "Account created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email or username already in use"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{}, nil
}

// Login authenticates a user and returns an access token.
// @Summary Authenticate user
// @Description Validates credentials and returns a signed access token.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Incorrect password"
// @Failure 404 {object} router.errorResponse "No account found with this email"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		UserID:      resp.UserID,
		Username:    resp.Username,
		Email:       resp.Email,
		Role:        resp.Role.String(),
		AccessToken: resp.AccessToken,
	}, nil
}

// OTPRequest issues a password reset code and mails it to the account.
// @Summary Request password reset OTP
// @Description Generates a one-time code and sends it to the account email.
// @Tags Identity, Password Recovery
// @Accept json
// @Produce json
// @Param request body OTPRequestRequest true "OTP request payload"
// @Success 200 {object} router.successResponse{data=OTPRequestResponse} "OTP sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "No account found with this email"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many OTP requests"
// @Failure 502 {object} router.errorResponse "Failed to send OTP email"
// @Router /api/v1/auth/request-otp [post]
func (h *HTTPEndpoint) OTPRequest(r *router.Request) (any, error) {
	var req OTPRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPRequest(r.Context(), usecase.OTPRequestInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return OTPRequestResponse{
		Email:     resp.Email,
		ExpiresIn: resp.ExpiresIn,
	}, nil
}

// OTPVerify checks a password reset code without consuming it.
// @Summary Verify password reset OTP
// @Description Confirms the one-time code is valid for the account. The code stays usable for the reset step.
// @Tags Identity, Password Recovery
// @Accept json
// @Produce json
// @Param request body OTPVerifyRequest true "OTP verification payload"
// @Success 200 {object} router.successResponse{data=OTPVerifyResponse} "OTP verified"
// @Failure 400 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 404 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 410 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/verify-otp [post]
func (h *HTTPEndpoint) OTPVerify(r *router.Request) (any, error) {
	var req OTPVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.OTPVerify(r.Context(), usecase.OTPVerifyInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return OTPVerifyResponse{}, nil
}

// PasswordReset consumes the OTP and sets a new password.
// @Summary Reset password
// @Description Validates the one-time code and replaces the account password in one step.
// @Tags Identity, Password Recovery
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Password reset payload"
// @Success 200 {object} router.successResponse{data=PasswordResetResponse} "Password reset"
// @Failure 400 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 404 {object} router.errorResponse "No account found with this email"
// @Failure 410 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/reset-password [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:       req.Email,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// UserList returns every registered account.
// @Summary List users
// @Description Returns all registered accounts. Requires the admin role.
// @Tags Identity, User Directory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=UserListResponse} "Users"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users [get]
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	resp, err := h.uc.UserList(r.Context())
	if err != nil {
		return nil, err
	}

	return UserListResponse(lo.Map(resp.Users, func(u entity.User, _ int) UserResponse {
		return UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role.String(),
			CreatedAt: u.CreatedAt,
		}
	})), nil
}

// UserDelete removes an account permanently.
// @Summary Delete user
// @Description Deletes the account with the given id. Requires the admin role.
// @Tags Identity, User Directory
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} router.successResponse{data=UserDeleteResponse} "User deleted"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users/{id} [delete]
func (h *HTTPEndpoint) UserDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.UserDelete(r.Context(), usecase.UserDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return UserDeleteResponse{}, nil
}

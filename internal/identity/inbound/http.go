package inbound

import (
	"context"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/usecase"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/ratelimit"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	OTPRequest(ctx context.Context, in usecase.OTPRequestInput) (*usecase.OTPRequestOutput, error)
	OTPVerify(ctx context.Context, in usecase.OTPVerifyInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error

	UserList(ctx context.Context) (*usecase.UserListOutput, error)
	UserDelete(ctx context.Context, in usecase.UserDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, otpLimiter ratelimit.Limiter) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/login", end.Login)

	// Password Recovery
	r.POST("/api/v1/auth/request-otp", end.OTPRequest,
		router.RateLimit(otpLimiter, "Too many OTP requests. Please try again later."))
	r.POST("/api/v1/auth/verify-otp", end.OTPVerify)
	r.POST("/api/v1/auth/reset-password", end.PasswordReset)

	// User Directory (need authenticated & authorization)
	r.GET("/api/v1/users", end.UserList)
	r.DELETE("/api/v1/users/:id", end.UserDelete)
}

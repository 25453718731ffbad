package inbound

import (
	"net/http"
	"time"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct{}

func (RegisterResponse) Message() string { return "User registered successfully" }

func (RegisterResponse) StatusCode() int { return http.StatusCreated }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID      int64  `json:"user_id,string"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
}

func (LoginResponse) Message() string { return "Login successful" }

type OTPRequestRequest struct {
	Email string `json:"email"`
}

type OTPRequestResponse struct {
	Email     string `json:"email"`
	ExpiresIn int64  `json:"expires_in"`
}

func (OTPRequestResponse) Message() string { return "OTP sent to your email" }

type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp"`
}

type OTPVerifyResponse struct{}

func (OTPVerifyResponse) Message() string { return "OTP verified successfully" }

type PasswordResetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"otp"`
	NewPassword string `json:"new_password"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string { return "Password reset successful" }

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UserListResponse []UserResponse

func (UserListResponse) Message() string { return "Users retrieved successfully" }

type UserDeleteResponse struct{}

func (UserDeleteResponse) Message() string { return "User deleted successfully" }

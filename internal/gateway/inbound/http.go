package inbound

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/gateway/usecase"
	"github.com/shandysiswandi/authgate/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	LoginVerify(ctx context.Context, in usecase.LoginVerifyInput) (*usecase.LoginVerifyOutput, error)
	LoginResend(ctx context.Context, in usecase.LoginResendInput) error

	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) (*usecase.RegisterVerifyOutput, error)
	RegisterResend(ctx context.Context, in usecase.RegisterResendInput) error

	RecoveryStart(ctx context.Context, in usecase.RecoveryStartInput) (*usecase.RecoveryStartOutput, error)
	RecoveryVerify(ctx context.Context, in usecase.RecoveryVerifyInput) (*usecase.RecoveryVerifyOutput, error)
	RecoveryResend(ctx context.Context, in usecase.RecoveryResendInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error

	OAuthURL(ctx context.Context, in usecase.OAuthURLInput) (*usecase.OAuthURLOutput, error)
	OAuthCallback(ctx context.Context, in usecase.OAuthCallbackInput) (*usecase.OAuthCallbackOutput, error)

	Logout(ctx context.Context, in usecase.LogoutInput) error
	Contact(ctx context.Context, in usecase.ContactInput) error
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Password login + emailed second factor
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/login/verify", end.LoginVerify)
	r.POST("/api/v1/auth/login/resend", end.LoginResend)

	// Registration with email verification
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/register/verify", end.RegisterVerify)
	r.POST("/api/v1/auth/register/resend", end.RegisterResend)

	// Password recovery
	r.POST("/api/v1/auth/recovery", end.RecoveryStart)
	r.POST("/api/v1/auth/recovery/verify", end.RecoveryVerify)
	r.POST("/api/v1/auth/recovery/resend", end.RecoveryResend)
	r.POST("/api/v1/auth/password/reset", end.PasswordReset)

	// Third-party sign-in
	r.GETRaw("/api/v1/auth/oauth/google", end.OAuthStart())
	r.GET("/api/v1/auth/oauth/google/callback", end.OAuthCallback)

	r.POST("/api/v1/auth/logout", end.Logout)
	r.POST("/api/v1/auth/contact", end.Contact)

	// need authenticated
	r.GET("/api/v1/auth/me", end.Profile)
}

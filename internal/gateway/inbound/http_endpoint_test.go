package inbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/authgate/internal/gateway/usecase"
	"github.com/shandysiswandi/authgate/internal/pkg/router"
)

type fakeUC struct {
	loginIn    *usecase.LoginInput
	resendIn   *usecase.LoginResendInput
	callbackIn *usecase.OAuthCallbackInput
}

func (f *fakeUC) Login(_ context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error) {
	f.loginIn = &in
	return &usecase.LoginOutput{Email: in.Email, ExpiresIn: 30 * time.Second}, nil
}

func (f *fakeUC) LoginVerify(context.Context, usecase.LoginVerifyInput) (*usecase.LoginVerifyOutput, error) {
	return &usecase.LoginVerifyOutput{AccessToken: "token"}, nil
}

func (f *fakeUC) LoginResend(_ context.Context, in usecase.LoginResendInput) error {
	f.resendIn = &in
	return nil
}

func (f *fakeUC) Register(context.Context, usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return &usecase.RegisterOutput{}, nil
}

func (f *fakeUC) RegisterVerify(context.Context, usecase.RegisterVerifyInput) (*usecase.RegisterVerifyOutput, error) {
	return &usecase.RegisterVerifyOutput{}, nil
}

func (f *fakeUC) RegisterResend(context.Context, usecase.RegisterResendInput) error { return nil }

func (f *fakeUC) RecoveryStart(context.Context, usecase.RecoveryStartInput) (*usecase.RecoveryStartOutput, error) {
	return &usecase.RecoveryStartOutput{}, nil
}

func (f *fakeUC) RecoveryVerify(context.Context, usecase.RecoveryVerifyInput) (*usecase.RecoveryVerifyOutput, error) {
	return &usecase.RecoveryVerifyOutput{}, nil
}

func (f *fakeUC) RecoveryResend(context.Context, usecase.RecoveryResendInput) error { return nil }

func (f *fakeUC) PasswordReset(context.Context, usecase.PasswordResetInput) error { return nil }

func (f *fakeUC) OAuthURL(context.Context, usecase.OAuthURLInput) (*usecase.OAuthURLOutput, error) {
	return &usecase.OAuthURLOutput{URL: "https://idp.test/authorize?state=abc"}, nil
}

func (f *fakeUC) OAuthCallback(_ context.Context, in usecase.OAuthCallbackInput) (*usecase.OAuthCallbackOutput, error) {
	f.callbackIn = &in
	return &usecase.OAuthCallbackOutput{AccessToken: "token", Email: "fed@site.test"}, nil
}

func (f *fakeUC) Logout(context.Context, usecase.LogoutInput) error { return nil }

func (f *fakeUC) Contact(context.Context, usecase.ContactInput) error { return nil }

func (f *fakeUC) Profile(context.Context) (*usecase.ProfileOutput, error) {
	return &usecase.ProfileOutput{}, nil
}

func newRequest(t *testing.T, method, target, body string) *router.Request {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r = r.WithContext(router.SetSessionID(r.Context(), "sid-1"))
	r.RemoteAddr = "203.0.113.9"

	return &router.Request{Request: r}
}

func TestLoginHandler(t *testing.T) {
	t.Run("FillsSessionAndClientIPFromRequest", func(t *testing.T) {
		// Arrange
		fake := &fakeUC{}
		end := &HTTPEndpoint{uc: fake}
		req := newRequest(t, http.MethodPost, "/api/v1/auth/login",
			`{"email":"user@site.test","password":"pw","captcha_token":"ct"}`)

		// Act
		resp, err := end.Login(req)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.loginIn.SessionID != "sid-1" {
			t.Fatalf("session id must come from the cookie context, got %q", fake.loginIn.SessionID)
		}
		if fake.loginIn.ClientIP != "203.0.113.9" {
			t.Fatalf("client ip must come from the request, got %q", fake.loginIn.ClientIP)
		}
		out, ok := resp.(LoginResponse)
		if !ok || out.ExpiresIn != 30 {
			t.Fatalf("unexpected response: %#v", resp)
		}
	})

	t.Run("RejectsUnknownFields", func(t *testing.T) {
		// Arrange
		end := &HTTPEndpoint{uc: &fakeUC{}}
		req := newRequest(t, http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","nope":1}`)

		// Act
		_, err := end.Login(req)

		// Assert
		if err == nil {
			t.Fatal("expected a decode error")
		}
	})
}

func TestLoginResendHandler(t *testing.T) {
	// Arrange
	fake := &fakeUC{}
	end := &HTTPEndpoint{uc: fake}
	req := newRequest(t, http.MethodPost, "/api/v1/auth/login/resend", "")

	// Act
	resp, err := end.LoginResend(req)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != nil {
		t.Fatalf("resend must answer with an empty body, got %#v", resp)
	}
	if fake.resendIn.SessionID != "sid-1" {
		t.Fatalf("unexpected session id: %q", fake.resendIn.SessionID)
	}
}

func TestOAuthStartHandler(t *testing.T) {
	// Arrange
	end := &HTTPEndpoint{uc: &fakeUC{}}
	rec := httptest.NewRecorder()
	req := newRequest(t, http.MethodGet, "/api/v1/auth/oauth/google", "")

	// Act
	end.OAuthStart().ServeHTTP(rec, req.Request)

	// Assert
	if rec.Code != http.StatusFound {
		t.Fatalf("expected a redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://idp.test/authorize?state=abc" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestOAuthCallbackHandler(t *testing.T) {
	t.Run("PassesQueryParams", func(t *testing.T) {
		// Arrange
		fake := &fakeUC{}
		end := &HTTPEndpoint{uc: fake}
		req := newRequest(t, http.MethodGet,
			"/api/v1/auth/oauth/google/callback?state=abc&code=xyz", "")

		// Act
		resp, err := end.OAuthCallback(req)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.callbackIn.State != "abc" || fake.callbackIn.Code != "xyz" {
			t.Fatalf("unexpected input: %+v", fake.callbackIn)
		}
		if _, ok := resp.(OAuthCallbackResponse); !ok {
			t.Fatalf("unexpected response: %#v", resp)
		}
	})

	t.Run("ProviderErrorShortCircuits", func(t *testing.T) {
		// Arrange
		fake := &fakeUC{}
		end := &HTTPEndpoint{uc: fake}
		req := newRequest(t, http.MethodGet,
			"/api/v1/auth/oauth/google/callback?error=access_denied", "")

		// Act
		_, err := end.OAuthCallback(req)

		// Assert
		if err == nil {
			t.Fatal("expected an error")
		}
		if fake.callbackIn != nil {
			t.Fatal("the callback flow must not run when the provider reports an error")
		}
	})
}

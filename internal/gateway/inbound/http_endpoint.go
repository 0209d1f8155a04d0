package inbound

import (
	"errors"
	"net/http"

	"github.com/shandysiswandi/authgate/internal/gateway/usecase"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the authentication workflows.
type HTTPEndpoint struct {
	uc uc
}

// Login checks the bot token and credentials, then dispatches a one-time
// passcode to the account email.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		SessionID:    router.GetSessionID(r.Context()),
		Email:        req.Email,
		Password:     req.Password,
		CaptchaToken: req.CaptchaToken,
		ClientIP:     r.ClientIP(),
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		Email:     resp.Email,
		ExpiresIn: int(resp.ExpiresIn.Seconds()),
	}, nil
}

// LoginVerify completes the second factor and returns an access token.
func (h *HTTPEndpoint) LoginVerify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginVerify(r.Context(), usecase.LoginVerifyInput{
		SessionID: router.GetSessionID(r.Context()),
		Code:      req.Code,
	})
	if err != nil {
		return nil, err
	}

	return TokenResponse{AccessToken: resp.AccessToken}, nil
}

// LoginResend dispatches a fresh login passcode, replacing the previous one.
func (h *HTTPEndpoint) LoginResend(r *router.Request) (any, error) {
	return nil, h.uc.LoginResend(r.Context(), usecase.LoginResendInput{
		SessionID: router.GetSessionID(r.Context()),
	})
}

// Register stages a new account and dispatches the verification passcode.
// No row is created until the email is proven.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		SessionID: router.GetSessionID(r.Context()),
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		Email:     resp.Email,
		ExpiresIn: int(resp.ExpiresIn.Seconds()),
	}, nil
}

// RegisterVerify promotes the staged registration to a real account.
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		SessionID: router.GetSessionID(r.Context()),
		Code:      req.Code,
	})
	if err != nil {
		return nil, err
	}

	return RegisterVerifyResponse{Email: resp.Email}, nil
}

// RegisterResend dispatches a fresh registration passcode.
func (h *HTTPEndpoint) RegisterResend(r *router.Request) (any, error) {
	return nil, h.uc.RegisterResend(r.Context(), usecase.RegisterResendInput{
		SessionID: router.GetSessionID(r.Context()),
	})
}

// RecoveryStart begins password recovery by emailing a passcode to the
// account address.
func (h *HTTPEndpoint) RecoveryStart(r *router.Request) (any, error) {
	var req RecoveryStartRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RecoveryStart(r.Context(), usecase.RecoveryStartInput{
		SessionID: router.GetSessionID(r.Context()),
		Email:     req.Email,
	})
	if err != nil {
		return nil, err
	}

	return RecoveryStartResponse{
		Email:     resp.Email,
		ExpiresIn: int(resp.ExpiresIn.Seconds()),
	}, nil
}

// RecoveryVerify proves email ownership for the pending recovery.
func (h *HTTPEndpoint) RecoveryVerify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RecoveryVerify(r.Context(), usecase.RecoveryVerifyInput{
		SessionID: router.GetSessionID(r.Context()),
		Code:      req.Code,
	})
	if err != nil {
		return nil, err
	}

	return RecoveryVerifyResponse{Email: resp.Email}, nil
}

// RecoveryResend dispatches a fresh recovery passcode.
func (h *HTTPEndpoint) RecoveryResend(r *router.Request) (any, error) {
	return nil, h.uc.RecoveryResend(r.Context(), usecase.RecoveryResendInput{
		SessionID: router.GetSessionID(r.Context()),
	})
}

// PasswordReset sets a new password after a verified recovery.
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		SessionID: router.GetSessionID(r.Context()),
		Password:  req.Password,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// OAuthStart redirects the browser to the provider's consent screen. It is a
// raw handler because the response is a redirect, not a JSON envelope.
func (h *HTTPEndpoint) OAuthStart() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.uc.OAuthURL(r.Context(), usecase.OAuthURLInput{
			SessionID: router.GetSessionID(r.Context()),
		})
		if err != nil {
			var gerr *goerror.Error
			if errors.As(err, &gerr) {
				http.Error(w, gerr.Msg(), gerr.StatusCode())
				return
			}
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, resp.URL, http.StatusFound)
	})
}

// OAuthCallback completes the provider sign-in and returns an access token.
func (h *HTTPEndpoint) OAuthCallback(r *router.Request) (any, error) {
	if reason := r.GetQuery("error"); reason != "" {
		return nil, goerror.NewBusiness("Sign-in was cancelled at the provider", goerror.CodeUnauthorized)
	}

	resp, err := h.uc.OAuthCallback(r.Context(), usecase.OAuthCallbackInput{
		SessionID: router.GetSessionID(r.Context()),
		State:     r.GetQuery("state"),
		Code:      r.GetQuery("code"),
	})
	if err != nil {
		return nil, err
	}

	return OAuthCallbackResponse{
		AccessToken: resp.AccessToken,
		Email:       resp.Email,
	}, nil
}

// Logout destroys the server-side session.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{
		SessionID: router.GetSessionID(r.Context()),
	}); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// Contact relays a message from the contact form to the site inbox.
func (h *HTTPEndpoint) Contact(r *router.Request) (any, error) {
	var req ContactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Contact(r.Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}); err != nil {
		return nil, err
	}

	return ContactResponse{}, nil
}

// Profile returns the authenticated caller's identity.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		AccountID: resp.AccountID,
		Email:     resp.Email,
		FullName:  resp.FullName,
	}, nil
}

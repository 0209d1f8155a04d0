package inbound

type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captcha_token"`
}

type LoginResponse struct {
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"`
}

func (LoginResponse) Message() string {
	return "A verification code has been sent to your email."
}

// VerifyRequest is shared by all three code-entry endpoints.
type VerifyRequest struct {
	Code string `json:"code"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type RegisterResponse struct {
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"`
}

func (RegisterResponse) Message() string {
	return "A verification code has been sent to your email."
}

type RegisterVerifyResponse struct {
	Email string `json:"email"`
}

func (RegisterVerifyResponse) Message() string {
	return "Your account has been created. You can now sign in."
}

type RecoveryStartRequest struct {
	Email string `json:"email"`
}

type RecoveryStartResponse struct {
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"`
}

func (RecoveryStartResponse) Message() string {
	return "A recovery code has been sent to your email."
}

type RecoveryVerifyResponse struct {
	Email string `json:"email"`
}

func (RecoveryVerifyResponse) Message() string {
	return "Email verified. You can now set a new password."
}

type PasswordResetRequest struct {
	Password string `json:"password"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string {
	return "Your password has been updated."
}

type OAuthCallbackResponse struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
}

func (OAuthCallbackResponse) Message() string {
	return "Signed in with your provider account."
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "You have been signed out."
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactResponse struct{}

func (ContactResponse) Message() string {
	return "Thanks for reaching out. We will get back to you soon."
}

type ProfileResponse struct {
	AccountID int64  `json:"account_id,string"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
}

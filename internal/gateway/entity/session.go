package entity

import "time"

// Challenge is the unit of one-time-passcode state for a single flow.
//
// The code itself is never stored; only a keyed digest is, so a leaked
// session dump does not leak live codes.
type Challenge struct {
	// CodeHash is the keyed digest of the expected code.
	CodeHash string `json:"code_hash"`
	// IssuedAt is when the code was generated.
	IssuedAt time.Time `json:"issued_at"`
	// TTL is the validity window measured from IssuedAt.
	TTL time.Duration `json:"ttl"`
	// Address is the email the code was delivered to.
	Address string `json:"address"`
	// Sent records that the delivery for this generation already fired.
	Sent bool `json:"sent"`
}

// ExpiresAt returns the absolute expiry instant.
func (c Challenge) ExpiresAt() time.Time {
	return c.IssuedAt.Add(c.TTL)
}

// Expired reports whether the challenge is past its validity window at now.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt())
}

// PendingRegistration holds a not-yet-persisted account. It is promoted to a
// durable row only after the register-flow challenge validates; abandoning
// the flow simply lets it die with the session.
type PendingRegistration struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Phone        string `json:"phone,omitempty"`
}

// Session is the per-browser verification state. It lives server-side keyed
// by an opaque cookie value; the client only ever sees the key.
type Session struct {
	// ID is the opaque session identifier from the cookie.
	ID string `json:"id"`

	// Challenges holds at most one live challenge per flow.
	Challenges map[Flow]Challenge `json:"challenges,omitempty"`

	// LoginEmail is the candidate identity recorded by the credential gate,
	// pending its second factor.
	LoginEmail string `json:"login_email,omitempty"`

	// VerifyEmail is the address being proven by the recovery flow.
	VerifyEmail string `json:"verify_email,omitempty"`

	// RecoveryVerified marks email ownership proven for password reset.
	RecoveryVerified bool `json:"recovery_verified,omitempty"`

	// Pending is the registration payload awaiting its challenge.
	Pending *PendingRegistration `json:"pending,omitempty"`

	// OAuthState is the anti-forgery nonce for the in-flight OAuth redirect.
	OAuthState string `json:"oauth_state,omitempty"`

	// OAuthToken is the provider access token, kept for revocation at logout.
	OAuthToken string `json:"oauth_token,omitempty"`

	// AccountID and Email identify the authenticated account, if any.
	AccountID int64  `json:"account_id,omitempty"`
	Email     string `json:"email,omitempty"`
}

// NewSession returns an empty session for the given identifier.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// Challenge returns the live challenge for the flow, if one exists.
func (s *Session) Challenge(flow Flow) (Challenge, bool) {
	ch, ok := s.Challenges[flow]
	return ch, ok
}

// SetChallenge stores ch for the flow, overwriting any prior challenge.
func (s *Session) SetChallenge(flow Flow, ch Challenge) {
	if s.Challenges == nil {
		s.Challenges = make(map[Flow]Challenge, 1)
	}
	s.Challenges[flow] = ch
}

// ClearChallenge removes the challenge for the flow.
func (s *Session) ClearChallenge(flow Flow) {
	delete(s.Challenges, flow)
}

// Reset wipes everything except the identifier. Used when a flow completes
// and the session must start clean.
func (s *Session) Reset() {
	*s = Session{ID: s.ID}
}

// Account is a durable account row.
type Account struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Phone        string
	CreatedAt    time.Time
}

// Profile is the identity returned by an external provider.
type Profile struct {
	Subject string
	Email   string
	Name    string
}

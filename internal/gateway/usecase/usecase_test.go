package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shandysiswandi/authgate/internal/gateway/challenge"
	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/config"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/authgate/internal/pkg/hash"
	"github.com/shandysiswandi/authgate/internal/pkg/instrument"
	"github.com/shandysiswandi/authgate/internal/pkg/jwt"
	"github.com/shandysiswandi/authgate/internal/pkg/validator"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// seqCodes yields a deterministic sequence of distinct numeric codes.
type seqCodes struct {
	n int
}

func (g *seqCodes) Generate() (string, error) {
	g.n++
	return fmt.Sprintf("%06d", g.n), nil
}

// Last returns the most recently generated code.
func (g *seqCodes) Last() string {
	return fmt.Sprintf("%06d", g.n)
}

type fakeSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	address string
	subject string
	body    string
}

func (s *fakeSender) Send(_ context.Context, address, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{address: address, subject: subject, body: body})
	return nil
}

type fakeBot struct {
	ok    bool
	err   error
	calls int
}

func (b *fakeBot) Verify(context.Context, string, string) (bool, error) {
	b.calls++
	return b.ok, b.err
}

type fakeDB struct {
	accounts map[string]entity.Account
	getCalls int
}

func newFakeDB() *fakeDB {
	return &fakeDB{accounts: make(map[string]entity.Account)}
}

func (d *fakeDB) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	d.getCalls++
	acct, ok := d.accounts[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &acct, nil
}

func (d *fakeDB) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := d.accounts[email]
	return ok, nil
}

func (d *fakeDB) CreateAccount(_ context.Context, acct entity.Account) error {
	// The unique index is the serialization point for duplicate emails.
	if _, ok := d.accounts[acct.Email]; ok {
		return goerror.ErrConflict
	}
	d.accounts[acct.Email] = acct
	return nil
}

func (d *fakeDB) UpdatePassword(_ context.Context, email, passwordHash string) error {
	acct, ok := d.accounts[email]
	if !ok {
		return goerror.ErrNotFound
	}
	acct.PasswordHash = passwordHash
	d.accounts[email] = acct
	return nil
}

type fakeSessions struct {
	store map[string]entity.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{store: make(map[string]entity.Session)}
}

func (f *fakeSessions) Get(_ context.Context, id string) (*entity.Session, error) {
	sess, ok := f.store[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sess, nil
}

func (f *fakeSessions) Save(_ context.Context, sess *entity.Session) error {
	f.store[sess.ID] = *sess
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	delete(f.store, id)
	return nil
}

type fakeIDP struct {
	exchangeErr error
	profile     *entity.Profile
	revoked     []string
}

func (p *fakeIDP) AuthorizeURL(state string) string {
	return "https://idp.test/authorize?state=" + state
}

func (p *fakeIDP) Exchange(_ context.Context, code string) (string, error) {
	if p.exchangeErr != nil {
		return "", p.exchangeErr
	}
	return "provider-token-" + code, nil
}

func (p *fakeIDP) FetchProfile(_ context.Context, _ string) (*entity.Profile, error) {
	if p.profile == nil {
		return nil, errors.New("no profile scripted")
	}
	return p.profile, nil
}

func (p *fakeIDP) Revoke(_ context.Context, token string) error {
	p.revoked = append(p.revoked, token)
	return nil
}

type fakeJWT struct{}

func (fakeJWT) Generate(accountID int64, email string) (string, error) {
	return fmt.Sprintf("jwt-%d-%s", accountID, email), nil
}

func (fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

type seqNumberID struct {
	n int64
}

func (g *seqNumberID) Generate() int64 {
	g.n++
	return g.n
}

type fixedStringID struct {
	v string
}

func (g fixedStringID) Generate() string {
	return g.v
}

type fixtures struct {
	db       *fakeDB
	sessions *fakeSessions
	clock    *fakeClock
	codes    *seqCodes
	sender   *fakeSender
	bot      *fakeBot
	idp      *fakeIDP
	bcrypt   hash.Hash
	gor      *goroutine.Manager
}

func newTestUsecase(t *testing.T) (*Usecase, *fixtures) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte("contact:\n  inbox: inbox@site.test\n"))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	f := &fixtures{
		db:       newFakeDB(),
		sessions: newFakeSessions(),
		clock:    &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		codes:    &seqCodes{},
		sender:   &fakeSender{},
		bot:      &fakeBot{ok: true},
		idp:      &fakeIDP{},
		bcrypt:   hash.NewBcrypt(4, ""),
		gor:      goroutine.NewManager(4),
	}

	eng := challenge.NewEngine(challenge.Config{
		Codes:  f.codes,
		Hasher: hash.NewHMACSHA256("test-secret"),
		Sender: f.sender,
		Clock:  f.clock,
		TTL:    30 * time.Second,
	})

	uc := New(Dependency{
		RepoDB:      f.db,
		RepoSession: f.sessions,
		IDP:         f.idp,
		Engine:      eng,
		BotCheck:    f.bot,
		Sender:      f.sender,
		Validator:   v10,
		Config:      cfg,
		Bcrypt:      f.bcrypt,
		UID:         &seqNumberID{},
		UUID:        fixedStringID{v: "fixed-uuid"},
		Clock:       f.clock,
		JWT:         fakeJWT{},
		Instrument:  instrument.NewNoop(),
		Goroutine:   f.gor,
	})

	return uc, f
}

// seedAccount registers an account directly in the fake store.
func (f *fixtures) seedAccount(t *testing.T, email, password string) entity.Account {
	t.Helper()

	hashed, err := f.bcrypt.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	acct := entity.Account{
		ID:           int64(len(f.db.accounts) + 100),
		FullName:     "Seeded Account",
		Email:        email,
		PasswordHash: string(hashed),
	}
	f.db.accounts[email] = acct
	return acct
}

var errDelivery = errors.New("smtp down")

func asGoerror(err error, target **goerror.Error) bool {
	return errors.As(err, target)
}

func assertBusinessCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a structured error, got %v", err)
	}
	if gerr.Code() != code {
		t.Fatalf("expected error code %s, got %s (%v)", code, gerr.Code(), err)
	}
}

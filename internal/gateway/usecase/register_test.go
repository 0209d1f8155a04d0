package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

func registerInput(sessionID string) RegisterInput {
	return RegisterInput{
		SessionID: sessionID,
		FullName:  "New Person",
		Email:     "new@site.test",
		Password:  "a long enough password",
	}
}

func TestRegister(t *testing.T) {
	t.Run("StagesWithoutPersisting", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)

		// Act
		out, err := uc.Register(context.Background(), registerInput("s1"))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "new@site.test" {
			t.Fatalf("unexpected email: %q", out.Email)
		}
		if len(f.db.accounts) != 0 {
			t.Fatal("nothing may be persisted before the code validates")
		}
		sess := f.sessions.store["s1"]
		if sess.Pending == nil || sess.Pending.Email != "new@site.test" {
			t.Fatalf("expected staged registration, got %+v", sess.Pending)
		}
		if sess.Pending.PasswordHash == "a long enough password" {
			t.Fatal("staged password must be hashed")
		}
		if len(f.sender.sent) != 1 {
			t.Fatalf("expected one code dispatch, got %d", len(f.sender.sent))
		}
	})

	t.Run("DuplicatePreCheck", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "new@site.test", "whatever password")

		// Act
		_, err := uc.Register(context.Background(), registerInput("s1"))

		// Assert
		assertBusinessCode(t, err, goerror.CodeConflict)
	})

	t.Run("WeakPasswordRejected", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)
		in := registerInput("s1")
		in.Password = "short"

		// Act
		_, err := uc.Register(context.Background(), in)

		// Assert
		if err == nil {
			t.Fatal("expected validation error for a short password")
		}
	})
}

func TestRegisterVerify(t *testing.T) {
	t.Run("PromotesToAccountRow", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		if _, err := uc.Register(context.Background(), registerInput("s1")); err != nil {
			t.Fatalf("register: %v", err)
		}

		// Act
		out, err := uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "new@site.test" {
			t.Fatalf("unexpected email: %q", out.Email)
		}
		acct, ok := f.db.accounts["new@site.test"]
		if !ok {
			t.Fatal("expected a durable account row")
		}
		if acct.FullName != "New Person" || acct.ID == 0 {
			t.Fatalf("unexpected account row: %+v", acct)
		}
		sess := f.sessions.store["s1"]
		if sess.Pending != nil {
			t.Fatal("staged registration must be discarded after promotion")
		}
	})

	t.Run("InsertRaceSurfacesDuplicate", func(t *testing.T) {
		// Arrange: two sessions pass the pre-check for the same unused email.
		uc, f := newTestUsecase(t)
		if _, err := uc.Register(context.Background(), registerInput("s1")); err != nil {
			t.Fatalf("register s1: %v", err)
		}
		codeA := f.codes.Last()
		if _, err := uc.Register(context.Background(), registerInput("s2")); err != nil {
			t.Fatalf("register s2: %v", err)
		}
		codeB := f.codes.Last()

		// Act
		_, errA := uc.RegisterVerify(context.Background(), RegisterVerifyInput{SessionID: "s1", Code: codeA})
		_, errB := uc.RegisterVerify(context.Background(), RegisterVerifyInput{SessionID: "s2", Code: codeB})

		// Assert: exactly one insert wins, the loser sees a duplicate.
		if errA != nil {
			t.Fatalf("first verify should win the insert, got %v", errA)
		}
		assertBusinessCode(t, errB, goerror.CodeConflict)
		if len(f.db.accounts) != 1 {
			t.Fatalf("expected exactly one account row, got %d", len(f.db.accounts))
		}
	})

	t.Run("ExpiredForcesReissue", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		if _, err := uc.Register(context.Background(), registerInput("s1")); err != nil {
			t.Fatalf("register: %v", err)
		}
		f.clock.Advance(31 * time.Second)

		// Act
		_, err := uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
		if len(f.db.accounts) != 0 {
			t.Fatal("no account may be written on an expired code")
		}

		// And a resend brings the flow back to life.
		if err := uc.RegisterResend(context.Background(), RegisterResendInput{SessionID: "s1"}); err != nil {
			t.Fatalf("resend: %v", err)
		}
		if _, err := uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		}); err != nil {
			t.Fatalf("verify after resend: %v", err)
		}
	})

	t.Run("NoStagedRegistration", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			SessionID: "s1", Code: "123456",
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestRegisterFlowIsolation(t *testing.T) {
	// Arrange: a login challenge must not satisfy the register flow.
	uc, f := newTestUsecase(t)
	f.seedAccount(t, "user@site.test", "correct horse battery")
	if _, err := uc.Login(context.Background(), LoginInput{
		SessionID: "s1", Email: "user@site.test",
		Password: "correct horse battery", CaptchaToken: "c",
	}); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Act
	_, err := uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		SessionID: "s1", Code: f.codes.Last(),
	})

	// Assert
	assertBusinessCode(t, err, goerror.CodeUnauthorized)
	if sess := f.sessions.store["s1"]; len(sess.Challenges) != 1 {
		t.Fatal("the login challenge must survive a register-flow probe")
	}
}

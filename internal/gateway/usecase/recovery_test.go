package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

func TestRecoveryStart(t *testing.T) {
	t.Run("KnownEmail", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "user@site.test", "old password here")

		// Act
		out, err := uc.RecoveryStart(context.Background(), RecoveryStartInput{
			SessionID: "s1", Email: "user@site.test",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "user@site.test" {
			t.Fatalf("unexpected email: %q", out.Email)
		}
		sess := f.sessions.store["s1"]
		if sess.VerifyEmail != "user@site.test" || sess.RecoveryVerified {
			t.Fatalf("unexpected session state: %+v", sess)
		}
		if len(f.sender.sent) != 1 {
			t.Fatalf("expected one code dispatch, got %d", len(f.sender.sent))
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)

		// Act
		_, err := uc.RecoveryStart(context.Background(), RecoveryStartInput{
			SessionID: "s1", Email: "ghost@site.test",
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeNotFound)
		if len(f.sender.sent) != 0 {
			t.Fatal("no code may be dispatched for an unknown email")
		}
	})
}

func TestRecoveryVerifyAndReset(t *testing.T) {
	start := func(t *testing.T, uc *Usecase, f *fixtures) {
		t.Helper()
		f.seedAccount(t, "user@site.test", "old password here")
		if _, err := uc.RecoveryStart(context.Background(), RecoveryStartInput{
			SessionID: "s1", Email: "user@site.test",
		}); err != nil {
			t.Fatalf("recovery start: %v", err)
		}
	}

	t.Run("FullPath", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		start(t, uc, f)

		// Act
		if _, err := uc.RecoveryVerify(context.Background(), RecoveryVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		}); err != nil {
			t.Fatalf("recovery verify: %v", err)
		}
		if err := uc.PasswordReset(context.Background(), PasswordResetInput{
			SessionID: "s1", Password: "brand new password",
		}); err != nil {
			t.Fatalf("password reset: %v", err)
		}

		// Assert
		acct := f.db.accounts["user@site.test"]
		if !f.bcrypt.Verify(acct.PasswordHash, "brand new password") {
			t.Fatal("expected the stored hash to match the new password")
		}
		sess := f.sessions.store["s1"]
		if sess.RecoveryVerified || sess.VerifyEmail != "" || len(sess.Challenges) != 0 {
			t.Fatalf("expected recovery state cleared after reset, got %+v", sess)
		}
	})

	t.Run("ResetWithoutVerificationRejected", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		start(t, uc, f)

		// Act: straight to reset, skipping the code.
		err := uc.PasswordReset(context.Background(), PasswordResetInput{
			SessionID: "s1", Password: "brand new password",
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeForbidden)
		acct := f.db.accounts["user@site.test"]
		if !f.bcrypt.Verify(acct.PasswordHash, "old password here") {
			t.Fatal("the password must be untouched")
		}
	})

	t.Run("ResetGateClosesAfterUse", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		start(t, uc, f)
		if _, err := uc.RecoveryVerify(context.Background(), RecoveryVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		}); err != nil {
			t.Fatalf("recovery verify: %v", err)
		}
		if err := uc.PasswordReset(context.Background(), PasswordResetInput{
			SessionID: "s1", Password: "brand new password",
		}); err != nil {
			t.Fatalf("first reset: %v", err)
		}

		// Act
		err := uc.PasswordReset(context.Background(), PasswordResetInput{
			SessionID: "s1", Password: "yet another password",
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeForbidden)
	})

	t.Run("ExpiredCodeThenResend", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		start(t, uc, f)
		expiredCode := f.codes.Last()
		f.clock.Advance(31 * time.Second)

		// Act
		_, errExpired := uc.RecoveryVerify(context.Background(), RecoveryVerifyInput{
			SessionID: "s1", Code: expiredCode,
		})
		if err := uc.RecoveryResend(context.Background(), RecoveryResendInput{SessionID: "s1"}); err != nil {
			t.Fatalf("resend: %v", err)
		}
		_, errFresh := uc.RecoveryVerify(context.Background(), RecoveryVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		})

		// Assert
		assertBusinessCode(t, errExpired, goerror.CodeUnauthorized)
		if errFresh != nil {
			t.Fatalf("expected fresh code to validate, got %v", errFresh)
		}
	})
}

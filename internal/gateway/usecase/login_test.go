package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "user@site.test", "correct horse battery")

		// Act
		out, err := uc.Login(context.Background(), LoginInput{
			SessionID:    "s1",
			Email:        "User@Site.Test",
			Password:     "correct horse battery",
			CaptchaToken: "cap-token",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "user@site.test" {
			t.Fatalf("expected normalized email, got %q", out.Email)
		}
		if len(f.sender.sent) != 1 || f.sender.sent[0].address != "user@site.test" {
			t.Fatalf("expected one code dispatch to the account email, got %v", f.sender.sent)
		}
		sess := f.sessions.store["s1"]
		if sess.LoginEmail != "user@site.test" {
			t.Fatalf("expected candidate identity recorded, got %q", sess.LoginEmail)
		}
		if _, ok := sess.Challenges[entity.FlowLogin]; !ok {
			t.Fatal("expected a live login challenge")
		}
	})

	t.Run("BotCheckFailedSkipsCredentialGate", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "user@site.test", "correct horse battery")
		f.bot.ok = false

		// Act
		_, err := uc.Login(context.Background(), LoginInput{
			SessionID:    "s1",
			Email:        "user@site.test",
			Password:     "correct horse battery",
			CaptchaToken: "cap-token",
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeForbidden)
		if f.db.getCalls != 0 {
			t.Fatal("credential gate must not run when the bot check rejects")
		}
		if len(f.sender.sent) != 0 {
			t.Fatal("no code may be dispatched when the bot check rejects")
		}
	})

	t.Run("UnknownEmailAndWrongPasswordShareMessage", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "user@site.test", "correct horse battery")

		// Act
		_, errUnknown := uc.Login(context.Background(), LoginInput{
			SessionID: "s1", Email: "ghost@site.test", Password: "whatever", CaptchaToken: "c",
		})
		_, errWrong := uc.Login(context.Background(), LoginInput{
			SessionID: "s1", Email: "user@site.test", Password: "wrong", CaptchaToken: "c",
		})

		// Assert
		assertBusinessCode(t, errUnknown, goerror.CodeUnauthorized)
		assertBusinessCode(t, errWrong, goerror.CodeUnauthorized)

		var g1, g2 *goerror.Error
		if !asGoerror(errUnknown, &g1) || !asGoerror(errWrong, &g2) || g1.Msg() != g2.Msg() {
			t.Fatalf("expected identical messages, got %q vs %q", errUnknown, errWrong)
		}
	})

	t.Run("PendingChallengeSuppressesDuplicateDispatch", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "user@site.test", "correct horse battery")
		in := LoginInput{
			SessionID: "s1", Email: "user@site.test",
			Password: "correct horse battery", CaptchaToken: "c",
		}

		// Act: a page load racing a second submit.
		if _, err := uc.Login(context.Background(), in); err != nil {
			t.Fatalf("first login: %v", err)
		}
		if _, err := uc.Login(context.Background(), in); err != nil {
			t.Fatalf("second login: %v", err)
		}

		// Assert
		if len(f.sender.sent) != 1 {
			t.Fatalf("expected a single dispatch while the challenge is fresh, got %d", len(f.sender.sent))
		}
	})

	t.Run("DeliveryFailureDoesNotAdvanceState", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "user@site.test", "correct horse battery")
		f.sender.err = errDelivery

		// Act
		_, err := uc.Login(context.Background(), LoginInput{
			SessionID: "s1", Email: "user@site.test",
			Password: "correct horse battery", CaptchaToken: "c",
		})

		// Assert
		if err == nil {
			t.Fatal("expected error when delivery fails")
		}
		if sess, ok := f.sessions.store["s1"]; ok {
			if _, live := sess.Challenges[entity.FlowLogin]; live {
				t.Fatal("a failed send must not leave a live challenge")
			}
		}
	})
}

func TestLoginVerify(t *testing.T) {
	login := func(t *testing.T, uc *Usecase) {
		t.Helper()
		if _, err := uc.Login(context.Background(), LoginInput{
			SessionID: "s1", Email: "user@site.test",
			Password: "correct horse battery", CaptchaToken: "c",
		}); err != nil {
			t.Fatalf("login: %v", err)
		}
	}

	t.Run("SuccessStartsClean", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		acct := f.seedAccount(t, "user@site.test", "correct horse battery")
		login(t, uc)

		// Act
		out, err := uc.LoginVerify(context.Background(), LoginVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" {
			t.Fatal("expected an access token")
		}
		sess := f.sessions.store["s1"]
		if sess.LoginEmail != "" || len(sess.Challenges) != 0 {
			t.Fatal("expected verification state wiped after login")
		}
		if sess.AccountID != acct.ID || sess.Email != acct.Email {
			t.Fatalf("expected authenticated identity on session, got %+v", sess)
		}
	})

	t.Run("MismatchAllowsRetry", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "user@site.test", "correct horse battery")
		login(t, uc)

		// Act
		_, errWrong := uc.LoginVerify(context.Background(), LoginVerifyInput{
			SessionID: "s1", Code: "000000",
		})
		out, errRight := uc.LoginVerify(context.Background(), LoginVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		})

		// Assert
		assertBusinessCode(t, errWrong, goerror.CodeUnauthorized)
		if errRight != nil {
			t.Fatalf("expected retry with the right code to pass, got %v", errRight)
		}
		if out.AccessToken == "" {
			t.Fatal("expected an access token on retry")
		}
	})

	t.Run("ExpiredEvenWithExactCode", func(t *testing.T) {
		// Arrange
		uc, f := newTestUsecase(t)
		f.seedAccount(t, "user@site.test", "correct horse battery")
		login(t, uc)
		f.clock.Advance(31 * time.Second)

		// Act
		_, err := uc.LoginVerify(context.Background(), LoginVerifyInput{
			SessionID: "s1", Code: f.codes.Last(),
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("NoPendingLogin", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.LoginVerify(context.Background(), LoginVerifyInput{
			SessionID: "s1", Code: "123456",
		})

		// Assert
		assertBusinessCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestLoginResend(t *testing.T) {
	// Arrange
	uc, f := newTestUsecase(t)
	f.seedAccount(t, "user@site.test", "correct horse battery")
	if _, err := uc.Login(context.Background(), LoginInput{
		SessionID: "s1", Email: "user@site.test",
		Password: "correct horse battery", CaptchaToken: "c",
	}); err != nil {
		t.Fatalf("login: %v", err)
	}
	oldCode := f.codes.Last()

	// Act: resend bypasses the staleness check even though the old challenge
	// is still fresh.
	if err := uc.LoginResend(context.Background(), LoginResendInput{SessionID: "s1"}); err != nil {
		t.Fatalf("resend: %v", err)
	}

	// Assert: old code is dead, new one works.
	_, errOld := uc.LoginVerify(context.Background(), LoginVerifyInput{SessionID: "s1", Code: oldCode})
	assertBusinessCode(t, errOld, goerror.CodeUnauthorized)

	if _, err := uc.LoginVerify(context.Background(), LoginVerifyInput{
		SessionID: "s1", Code: f.codes.Last(),
	}); err != nil {
		t.Fatalf("expected reissued code to validate, got %v", err)
	}
	if len(f.sender.sent) != 2 {
		t.Fatalf("expected two dispatches, got %d", len(f.sender.sent))
	}
}

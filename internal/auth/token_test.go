package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aduvernay/staffing-api/internal/auth"
)

const testSecret = "token-test-secret-at-least-32-chars!!"

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := auth.NewIssuer([]byte(testSecret), time.Hour)

	tok, err := issuer.Issue(42, "test@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ident, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ident.PersonID != 42 {
		t.Errorf("person id = %d, want 42", ident.PersonID)
	}
	if ident.Email != "test@example.com" {
		t.Errorf("email = %q, want test@example.com", ident.Email)
	}
}

func TestVerify_Expired_ReturnsErrTokenExpired(t *testing.T) {
	issuer := auth.NewIssuer([]byte(testSecret), -time.Minute)

	tok, err := issuer.Issue(1, "a@b.co")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = issuer.Verify(tok)
	if !errors.Is(err, auth.ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerify_Garbage_ReturnsErrTokenMalformed(t *testing.T) {
	issuer := auth.NewIssuer([]byte(testSecret), time.Hour)

	_, err := issuer.Verify("not-a-token")
	if !errors.Is(err, auth.ErrTokenMalformed) {
		t.Errorf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestVerify_WrongKey_ReturnsErrTokenInvalid(t *testing.T) {
	issuer := auth.NewIssuer([]byte(testSecret), time.Hour)
	other := auth.NewIssuer([]byte("a-different-secret-also-32-chars!!!!"), time.Hour)

	tok, err := other.Issue(1, "a@b.co")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = issuer.Verify(tok)
	if !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_TamperedPayload_ReturnsErrTokenInvalid(t *testing.T) {
	issuer := auth.NewIssuer([]byte(testSecret), time.Hour)

	tok, err := issuer.Issue(1, "a@b.co")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	parts[1] = "eyJpZCI6OTk5fQ" // {"id":999}
	_, err = issuer.Verify(strings.Join(parts, "."))
	if !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestHashPassword_CheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}

	ok, err := auth.CheckPassword("s3cret-pass", hash)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = auth.CheckPassword("wrong-pass", hash)
	if err != nil {
		t.Fatalf("check mismatch: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestCheckPassword_CorruptHash_ReturnsError(t *testing.T) {
	ok, err := auth.CheckPassword("anything", "not-a-bcrypt-hash")
	if err == nil {
		t.Error("corrupt hash: err = nil, want internal error")
	}
	if ok {
		t.Error("corrupt hash reported as match")
	}
}

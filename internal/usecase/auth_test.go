package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aduvernay/staffing-api/internal/auth"
	"github.com/aduvernay/staffing-api/internal/domain"
	"github.com/aduvernay/staffing-api/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

// ---- fakes ----

type fakePersonRepo struct {
	create      func(ctx context.Context, p *domain.Person) (*domain.Person, error)
	findByEmail func(ctx context.Context, email string) (*domain.Person, error)
	findByID    func(ctx context.Context, id int64) (*domain.Person, error)
}

func (r *fakePersonRepo) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	return r.create(ctx, p)
}

func (r *fakePersonRepo) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakePersonRepo) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	return r.findByID(ctx, id)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.send == nil {
		return nil
	}
	return s.send(ctx, to, subject, body)
}

// ---- helpers ----

const testJWTKey = "usecase-test-secret-at-least-32-ch!!"

func newAuthUsecase(repo *fakePersonRepo, sender *fakeEmailSender) *usecase.AuthUsecase {
	issuer := auth.NewIssuer([]byte(testJWTKey), time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewAuthUsecase(repo, issuer, sender, logger)
}

func notFound(_ context.Context, _ string) (*domain.Person, error) {
	return nil, domain.ErrPersonNotFound
}

// ---- Register ----

func TestRegister_HashesPasswordBeforeInsert(t *testing.T) {
	var stored *domain.Person
	repo := &fakePersonRepo{
		findByEmail: notFound,
		create: func(_ context.Context, p *domain.Person) (*domain.Person, error) {
			stored = p
			out := *p
			out.ID = 7
			return &out, nil
		},
	}

	person, err := newAuthUsecase(repo, &fakeEmailSender{}).Register(context.Background(), usecase.RegisterInput{
		Email:     "new@example.com",
		Password:  "secret42",
		Name:      "Martin",
		FirstName: "Alice",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if person.ID != 7 {
		t.Errorf("id = %d, want 7", person.ID)
	}
	if stored.PasswordHash == "secret42" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret42")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegister_ExistingEmail_ReturnsErrEmailTaken(t *testing.T) {
	repo := &fakePersonRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.Person, error) {
			return &domain.Person{ID: 1, Email: "dup@example.com"}, nil
		},
	}

	_, err := newAuthUsecase(repo, &fakeEmailSender{}).Register(context.Background(), usecase.RegisterInput{
		Email: "dup@example.com", Password: "secret42", Name: "Dup", FirstName: "Dup",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_InsertUniqueViolation_ReturnsErrEmailTaken(t *testing.T) {
	// Simulates the losing side of two concurrent registrations: the lookup
	// sees nothing, the insert hits the unique constraint.
	repo := &fakePersonRepo{
		findByEmail: notFound,
		create: func(_ context.Context, _ *domain.Person) (*domain.Person, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	_, err := newAuthUsecase(repo, &fakeEmailSender{}).Register(context.Background(), usecase.RegisterInput{
		Email: "race@example.com", Password: "secret42", Name: "Race", FirstName: "Race",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_EmailSendFailure_StillSucceeds(t *testing.T) {
	repo := &fakePersonRepo{
		findByEmail: notFound,
		create: func(_ context.Context, p *domain.Person) (*domain.Person, error) {
			out := *p
			out.ID = 3
			return &out, nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error {
			return errors.New("smtp down")
		},
	}

	_, err := newAuthUsecase(repo, sender).Register(context.Background(), usecase.RegisterInput{
		Email: "ok@example.com", Password: "secret42", Name: "Okay", FirstName: "Okay",
	})
	if err != nil {
		t.Errorf("register: %v, want success despite email failure", err)
	}
}

// ---- Login ----

func personWithPassword(t *testing.T, id int64, email, password string) *domain.Person {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &domain.Person{ID: id, Email: email, PasswordHash: hash, Name: "Martin", FirstName: "Alice"}
}

func TestLogin_Success_TokenCarriesPersonID(t *testing.T) {
	stored := personWithPassword(t, 42, "user@example.com", "secret42")
	repo := &fakePersonRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.Person, error) {
			return stored, nil
		},
	}

	token, person, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), "user@example.com", "secret42")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if person.ID != 42 {
		t.Errorf("person id = %d, want 42", person.ID)
	}

	ident, err := auth.NewIssuer([]byte(testJWTKey), time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if ident.PersonID != 42 {
		t.Errorf("token subject = %d, want 42", ident.PersonID)
	}
	if ident.Email != "user@example.com" {
		t.Errorf("token email = %q, want user@example.com", ident.Email)
	}
}

func TestLogin_UnknownEmail_ReturnsErrBadCredentials(t *testing.T) {
	repo := &fakePersonRepo{findByEmail: notFound}

	_, _, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("err = %v, want ErrBadCredentials", err)
	}
}

func TestLogin_WrongPassword_ReturnsErrBadCredentials(t *testing.T) {
	stored := personWithPassword(t, 1, "user@example.com", "right-pass")
	repo := &fakePersonRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.Person, error) {
			return stored, nil
		},
	}

	_, _, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), "user@example.com", "wrong-pass")
	if !errors.Is(err, domain.ErrBadCredentials) {
		t.Errorf("err = %v, want ErrBadCredentials", err)
	}
}

func TestLogin_CorruptHash_ReturnsInternalError(t *testing.T) {
	repo := &fakePersonRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.Person, error) {
			return &domain.Person{ID: 1, Email: "user@example.com", PasswordHash: "garbage"}, nil
		},
	}

	_, _, err := newAuthUsecase(repo, &fakeEmailSender{}).Login(context.Background(), "user@example.com", "whatever")
	if err == nil {
		t.Fatal("err = nil, want internal error")
	}
	if errors.Is(err, domain.ErrBadCredentials) {
		t.Error("hashing failure reported as bad credentials")
	}
}

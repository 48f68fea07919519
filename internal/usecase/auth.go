package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aduvernay/staffing-api/internal/auth"
	"github.com/aduvernay/staffing-api/internal/domain"
	"github.com/aduvernay/staffing-api/internal/email"
	"github.com/aduvernay/staffing-api/internal/repository"
)

type AuthUsecase struct {
	persons repository.PersonRepository
	tokens  *auth.Issuer
	email   email.Sender
	logger  *slog.Logger
}

func NewAuthUsecase(persons repository.PersonRepository, tokens *auth.Issuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		persons: persons,
		tokens:  tokens,
		email:   emailSender,
		logger:  logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	FirstName string
}

// Register creates a new person with a bcrypt-hashed password. Returns
// domain.ErrEmailTaken when the email is already registered — detected by the
// pre-insert lookup or, for concurrent registrations, by the unique
// constraint on insert. A welcome email is sent best-effort.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*domain.Person, error) {
	_, err := u.persons.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrPersonNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	person, err := u.persons.Create(ctx, &domain.Person{
		Name:         in.Name,
		FirstName:    in.FirstName,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	subject := "Welcome aboard"
	body := fmt.Sprintf("<p>Hi %s, your account is ready. Sign in to see your tasks.</p>", person.FirstName)
	if err := u.email.Send(ctx, person.Email, subject, body); err != nil {
		u.logger.Warn("welcome email", "error", err)
	}

	return person, nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password both map to domain.ErrBadCredentials so the response
// does not reveal which one occurred.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, *domain.Person, error) {
	person, err := u.persons.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return "", nil, domain.ErrBadCredentials
		}
		return "", nil, fmt.Errorf("lookup email: %w", err)
	}

	ok, err := auth.CheckPassword(password, person.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, domain.ErrBadCredentials
	}

	token, err := u.tokens.Issue(person.ID, person.Email)
	if err != nil {
		return "", nil, err
	}
	return token, person, nil
}

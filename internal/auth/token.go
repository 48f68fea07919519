package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenInvalid   = errors.New("token is invalid")
)

// Identity is the decoded subject of a verified token.
type Identity struct {
	PersonID int64
	Email    string
}

type claims struct {
	jwt.RegisteredClaims
	PersonID int64  `json:"id"`
	Email    string `json:"email"`
}

// Issuer signs and verifies bearer tokens with a process-wide HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the person's id and email, valid for the
// issuer's TTL.
func (i *Issuer) Issue(personID int64, email string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		PersonID: personID,
		Email:    email,
	})

	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and checks a raw token. Failures are tagged: ErrTokenExpired,
// ErrTokenMalformed, or ErrTokenInvalid for anything else (bad signature,
// wrong algorithm, missing subject).
func (i *Issuer) Verify(raw string) (*Identity, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	if !token.Valid || c.PersonID == 0 {
		return nil, ErrTokenInvalid
	}

	return &Identity{PersonID: c.PersonID, Email: c.Email}, nil
}

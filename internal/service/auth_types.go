package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AdminTokenIssuer interface {
	IssueAdminToken(subject string) (string, time.Duration, error)
	TTL() time.Duration
}

// SecondFactorVerifier checks a one-time code presented at login.
type SecondFactorVerifier interface {
	Verify(code string, at time.Time) bool
}

// Message is one outbound email. HTML is optional.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MailDispatcher hands a message to the mail transport. A nil error means the
// transport accepted it.
type MailDispatcher interface {
	Send(ctx context.Context, msg Message) error
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

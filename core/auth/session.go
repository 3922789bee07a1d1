package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/spaceacademy/backoffice/core"
)

// Durable session record keys; the values travel as two strings under these
// names wherever the session is persisted.
const (
	SessionKeyAuthenticated = "isAuthenticated"
	SessionKeyEmail         = "userEmail"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Session is the singleton authentication state. It is rehydrated from its
// durable record on every request and remains valid until explicit logout.
type Session struct {
	Authenticated bool   `json:"is_authenticated"`
	Email         string `json:"email,omitempty"`
}

// Anonymous is the unauthenticated session.
var Anonymous = Session{}

// NewSession returns the authenticated session for email.
func NewSession(email string) Session {
	return Session{Authenticated: true, Email: email}
}

// Record encodes the session as its durable key/value record.
func (s Session) Record() map[string]string {
	if !s.Authenticated {
		return map[string]string{}
	}
	return map[string]string{
		SessionKeyAuthenticated: "true",
		SessionKeyEmail:         s.Email,
	}
}

// SessionFromRecord rehydrates a session from its durable record; a missing
// or malformed record yields the anonymous session.
func SessionFromRecord(rec map[string]string) Session {
	if rec[SessionKeyAuthenticated] != "true" || rec[SessionKeyEmail] == "" {
		return Anonymous
	}
	return NewSession(rec[SessionKeyEmail])
}

// Allow is the route-guard predicate: unauthenticated sessions may only reach
// the login path.
func (s Session) Allow(path string) bool {
	return s.Authenticated || path == "/login"
}

type (
	// Authenticator checks a credential pair. The back office ships a fixed
	// allow-list; a real directory service slots in behind the same interface.
	Authenticator interface {
		Authenticate(email, password string) error
	}

	allowList struct {
		email        string
		passwordHash []byte
	}
)

// NewAllowListAuthenticator builds an Authenticator over the single admin
// credential from config. The plaintext password is only hashed when no hash
// is configured.
func NewAllowListAuthenticator(conf core.AdminConfig) (Authenticator, error) {
	hash := []byte(conf.PasswordHash)
	if len(hash) == 0 {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(conf.Password), bcrypt.DefaultCost); err != nil {
			return nil, err
		}
	}
	return &allowList{
		email:        core.CleanString(conf.Email, true /* lower */),
		passwordHash: hash,
	}, nil
}

func (a *allowList) Authenticate(email, password string) error {
	if core.CleanString(email, true /* lower */) != a.email {
		// burn a comparison anyway so both failure paths cost the same
		_ = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

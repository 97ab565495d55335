package auth

import (
	"github.com/confessly-dev/confessly/internal/models"
	"github.com/confessly-dev/confessly/internal/store"
)

// Service is the session authenticator: it turns credentials into sessions
// and session tokens back into users. Login and Logout are the only
// state-mutating transitions; Resolve is read-only.
type Service struct {
	users    *store.UserStore
	sessions *store.SessionStore
	tokens   *TokenManager
}

func NewService(users *store.UserStore, sessions *store.SessionStore, tokens *TokenManager) *Service {
	return &Service{users: users, sessions: sessions, tokens: tokens}
}

func (s *Service) Register(username, email, password string) (*models.User, error) {
	return s.users.Register(username, email, password)
}

// Login verifies the credentials, creates a fresh session row and returns
// the signed token for the cookie. Surfaces overwrite any existing cookie
// with this token, so a prior session never carries over into a new login.
func (s *Service) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.Verify(email, password)

	if err != nil {
		return nil, "", err
	}

	session, err := s.sessions.Create(user.ID)

	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(session.ID, user.ID, session.ExpiresAt)

	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Resolve maps a token back to its user. It fails when the signature is bad,
// the session row is gone or expired, or the user row no longer exists.
func (s *Service) Resolve(token string) (*models.User, error) {
	sessionID, _, err := s.tokens.Verify(token)

	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(sessionID)

	if err != nil {
		return nil, err
	}

	return s.users.Get(session.UserID)
}

// Logout deletes the session row named by the token. Resolving the same
// token afterwards fails.
func (s *Service) Logout(token string) error {
	sessionID, _, err := s.tokens.Verify(token)

	if err != nil {
		return err
	}

	return s.sessions.Delete(sessionID)
}

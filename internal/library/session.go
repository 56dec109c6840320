package library

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Session holds the acting user. It is loaded from the store when opened
// and persisted on every change.
type Session struct {
	store types.Store
	user  string
	opts  options
}

// OpenSession loads the stored user, if any.
func OpenSession(store types.Store, opts ...Option) (*Session, error) {
	user, _, err := store.Get(types.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	return &Session{store: store, user: user, opts: buildOptions(opts)}, nil
}

// Login records user as the acting user. The name is stored trimmed; a
// blank name is rejected with ErrValidation.
func (s *Session) Login(user string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return fmt.Errorf("%w: username is required", types.ErrValidation)
	}
	if err := s.store.Set(types.KeyUser, user); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	s.user = user
	loginsTotal.Inc()
	s.opts.logger.Info("logged in", "user", user)
	return nil
}

// CurrentUser returns the acting user and whether one is set.
func (s *Session) CurrentUser() (string, bool) {
	return s.user, s.user != ""
}

// Logout forgets the acting user. Logging out with nobody logged in is not
// an error.
func (s *Session) Logout() error {
	if err := s.store.Remove(types.KeyUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if s.user != "" {
		s.opts.logger.Info("logged out", "user", s.user)
	}
	s.user = ""
	return nil
}

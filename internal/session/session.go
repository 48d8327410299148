package session

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

// SlotKey is the storage key holding the signed-in user
const SlotKey = "user"

// Store manages the signed-in session and its favorites.
// No credentials are verified; any well-formed input signs in.
// Favorites live in memory only and die with the session.
type Store struct {
	slot   domain.Slot
	logger *slog.Logger

	mu        sync.RWMutex
	current   *domain.Session
	favorites map[string]struct{}
}

// NewStore creates a session store persisting through slot
func NewStore(slot domain.Slot, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		slot:      slot,
		logger:    logger,
		favorites: make(map[string]struct{}),
	}
}

// SignIn starts a session for email. The username is the email's local part.
func (s *Store) SignIn(email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	return s.begin(email, usernameFromEmail(email)), nil
}

// Register starts a session for email under an explicit username
func (s *Store) Register(email, username, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	return s.begin(email, username), nil
}

func (s *Store) begin(email, username string) *domain.Session {
	sess := &domain.Session{
		ID:       newID(),
		Email:    email,
		Username: username,
	}

	s.mu.Lock()
	s.current = sess
	s.favorites = make(map[string]struct{})
	s.mu.Unlock()

	s.persist(sess)
	s.logger.Info("signed in", "username", username)
	return sess
}

// SignOut ends the session, clearing favorites and the persisted slot.
// Safe to call when signed out.
func (s *Store) SignOut() {
	s.mu.Lock()
	s.current = nil
	s.favorites = make(map[string]struct{})
	s.mu.Unlock()

	if err := s.slot.Delete(SlotKey); err != nil {
		s.logger.Warn("failed to clear session slot", "error", err)
	}
}

// Restore loads the persisted session. Returns nil when the slot is empty
// or holds anything other than a valid session record.
func (s *Store) Restore() *domain.Session {
	data, ok := s.slot.Get(SlotKey)
	if !ok {
		return nil
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("ignoring malformed session record", "error", err)
		return nil
	}
	if !sess.Valid() {
		s.logger.Warn("ignoring incomplete session record")
		return nil
	}
	if sess.Username == "" {
		sess.Username = usernameFromEmail(sess.Email)
	}

	s.mu.Lock()
	s.current = &sess
	s.favorites = make(map[string]struct{})
	s.mu.Unlock()

	s.logger.Debug("session restored", "username", sess.Username)
	return &sess
}

// Current returns the active session, or nil when signed out
func (s *Store) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	sess := *s.current
	return &sess
}

// SignedIn reports whether a session is active
func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// ToggleFavorite flips id's membership in the favorite set and returns the new
// state. Returns domain.ErrSignInRequired, mutating nothing, when signed out.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false, domain.ErrSignInRequired
	}
	if _, ok := s.favorites[id]; ok {
		delete(s.favorites, id)
		return false, nil
	}
	s.favorites[id] = struct{}{}
	return true, nil
}

// IsFavorite reports whether id is in the favorite set
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[id]
	return ok
}

// Favorites returns the favorite ids, sorted
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// persist writes the session to the slot. Failures are logged, not returned:
// the session stays valid for this process.
func (s *Store) persist(sess *domain.Session) {
	data, err := json.Marshal(sess)
	if err != nil {
		s.logger.Error("failed to encode session", "error", err)
		return
	}
	if err := s.slot.Put(SlotKey, data); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}
}

// usernameFromEmail returns the part before "@", or the whole string without one
func usernameFromEmail(email string) string {
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return email
}

// newID returns a time-ordered unique session id
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

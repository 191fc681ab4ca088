package user

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Repository defines the data access methods for users.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Delete(id int64) error
}

// SessionStore is the slice of the settings table the session machine
// needs: the currentUserId pointer.
type SessionStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

const sessionKey = "currentUserId"

// Service handles registration, credential checks and the session state.
type Service struct {
	repo     Repository
	sessions SessionStore
	logger   *slog.Logger

	current *User
}

func NewService(repo Repository, sessions SessionStore, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a new account. New hashes are bcrypt; the legacy
// unsalted SHA-256 format is only ever read, never written.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("registration validation failed", "error", err)
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("registration rejected: email taken", "email", dto.Email)
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        dto.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies credentials and, on success, moves the session to
// authenticated and persists the pointer.
func (s *Service) Login(dto LoginDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(dto.Email)
	if err != nil || u == nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return nil, ErrInvalidCredentials
	}

	if !verifyPassword(u.PasswordHash, dto.Password) {
		s.logger.Warn("login failed: bad password", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	if err := s.sessions.Set(sessionKey, strconv.FormatInt(u.ID, 10)); err != nil {
		s.logger.Error("failed to persist session pointer", "error", err, "user_id", u.ID)
		return nil, err
	}

	s.current = u
	s.logger.Info("user logged in", "user_id", u.ID)
	return u, nil
}

// Restore loads the session from the persisted currentUserId key.
func (s *Service) Restore() (*User, error) {
	raw, ok, err := s.sessions.Get(sessionKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSession
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// A corrupt pointer is treated as no session, not a crash.
		s.logger.Warn("discarding corrupt session pointer", "value", raw)
		_ = s.sessions.Remove(sessionKey)
		return nil, ErrNoSession
	}

	u, err := s.repo.GetByID(id)
	if err != nil || u == nil {
		_ = s.sessions.Remove(sessionKey)
		return nil, ErrNoSession
	}

	s.current = u
	s.logger.Info("session restored", "user_id", u.ID)
	return u, nil
}

// Logout clears the persisted pointer and the in-memory session.
func (s *Service) Logout() error {
	if err := s.sessions.Remove(sessionKey); err != nil {
		s.logger.Error("failed to clear session pointer", "error", err)
		return err
	}
	s.current = nil
	s.logger.Info("user logged out")
	return nil
}

func (s *Service) State() SessionState {
	if s.current != nil {
		return SessionAuthenticated
	}
	return SessionUnauthenticated
}

func (s *Service) CurrentUser() *User {
	return s.current
}

// DeleteAccount removes the user; the store cascades to wallets, expenses
// and luggage items.
func (s *Service) DeleteAccount(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
		_ = s.sessions.Remove(sessionKey)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// verifyPassword accepts current bcrypt hashes and falls back to the
// legacy unsalted SHA-256 hex written by older app versions.
func verifyPassword(stored, password string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}

	sum := sha256.Sum256([]byte(password))
	legacy := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(stored), []byte(legacy)) == 1
}

// LegacyHash is the SHA-256 hex format older app versions stored. Kept for
// seeding fixtures that mimic a migrated database.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

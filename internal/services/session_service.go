package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"moviedeck/internal/config"
	"moviedeck/internal/models"
	"moviedeck/internal/session"
	"moviedeck/internal/storage"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("no account found for this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveSession    = errors.New("no active session")
)

// SessionService owns the authentication lifecycle: the durable user
// registry, the credential table and the single persisted session.
type SessionService struct {
	store storage.Store
	cfg   *config.Config

	mu   sync.Mutex
	snap session.Snapshot
}

func NewSessionService(store storage.Store, cfg *config.Config) *SessionService {
	return &SessionService{
		store: store,
		cfg:   cfg,
		snap:  session.Initial(),
	}
}

// Initialize seeds the demo account and restores a persisted session.
// Storage failures degrade to an unauthenticated session instead of
// failing startup.
func (s *SessionService) Initialize(ctx context.Context) {
	if err := s.seedDemoAccount(ctx); err != nil {
		slog.Error("seed account setup failed", "error", err)
	}

	user := s.restoreSession(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.snap.Restore(user)
	if err != nil {
		slog.Error("session restore transition rejected", "error", err)
		return
	}
	s.snap = snap
	slog.Info("session initialized", "status", snap.Status.String())
}

// seedDemoAccount creates the demo account on first startup. Registering the
// same email is skipped on every later run.
func (s *SessionService) seedDemoAccount(ctx context.Context) error {
	registry, err := s.loadRegistry(ctx)
	if err != nil {
		return err
	}
	if findUserByEmail(registry, s.cfg.SeedEmail) != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Email:       s.cfg.SeedEmail,
		Name:        s.cfg.SeedName,
		CreatedAt:   time.Now().UTC(),
		Preferences: models.DefaultPreferences(),
	}

	if err := s.store.Set(ctx, storage.PasswordKey(user.ID.String()), string(hash)); err != nil {
		return err
	}
	if err := s.saveRegistry(ctx, append(registry, user)); err != nil {
		s.discardCredential(ctx, user.ID.String())
		return err
	}
	slog.Info("seed account created", "email", user.Email)
	return nil
}

// restoreSession reads the persisted session record. Missing or corrupt
// records yield nil; corrupt ones are removed so the next startup is clean.
func (s *SessionService) restoreSession(ctx context.Context) *models.User {
	raw, err := s.store.Get(ctx, storage.KeyAuthUser)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		slog.Error("session read failed", "error", err)
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == uuid.Nil {
		slog.Warn("persisted session corrupt, discarding")
		if err := s.store.Delete(ctx, storage.KeyAuthUser); err != nil {
			slog.Error("failed to discard corrupt session", "error", err)
		}
		return nil
	}
	return &user
}

// Register creates a new account and signs it in. All writes land before the
// transition becomes observable.
func (s *SessionService) Register(ctx context.Context, name, email, password, confirmPassword string) (models.User, string, error) {
	if password != confirmPassword {
		return models.User{}, "", ErrPasswordMismatch
	}
	if len(password) < 6 {
		return models.User{}, "", ErrPasswordTooShort
	}

	registry, err := s.loadRegistry(ctx)
	if err != nil {
		return models.User{}, "", err
	}
	if findUserByEmail(registry, email) != nil {
		return models.User{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Email:       email,
		Name:        name,
		CreatedAt:   time.Now().UTC(),
		Preferences: models.DefaultPreferences(),
	}

	if err := s.store.Set(ctx, storage.PasswordKey(user.ID.String()), string(hash)); err != nil {
		return models.User{}, "", err
	}
	if err := s.saveRegistry(ctx, append(registry, user)); err != nil {
		s.discardCredential(ctx, user.ID.String())
		return models.User{}, "", err
	}
	if err := s.persistSession(ctx, user); err != nil {
		// Undo the durable writes so a failed registration leaves no
		// trace: a retry with the same email must not hit ErrEmailTaken.
		if rbErr := s.saveRegistry(ctx, registry); rbErr != nil {
			slog.Error("registry rollback failed after session write error", "error", rbErr)
		}
		s.discardCredential(ctx, user.ID.String())
		return models.User{}, "", err
	}

	token, err := s.generateAccessToken(&user)
	if err != nil {
		return models.User{}, "", err
	}

	if err := s.signIn(user); err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login authenticates against the registry and the stored credential.
func (s *SessionService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	registry, err := s.loadRegistry(ctx)
	if err != nil {
		return models.User{}, "", err
	}

	user := findUserByEmail(registry, email)
	if user == nil {
		return models.User{}, "", ErrUserNotFound
	}

	hash, err := s.store.Get(ctx, storage.PasswordKey(user.ID.String()))
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	if err := s.persistSession(ctx, *user); err != nil {
		return models.User{}, "", err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return models.User{}, "", err
	}

	if err := s.signIn(*user); err != nil {
		return models.User{}, "", err
	}
	return *user, token, nil
}

// Logout removes the persisted session record. Registry and credentials are
// untouched. Logging out an unauthenticated session is a no-op.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeyAuthUser); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Status != session.StatusAuthenticated {
		return nil
	}
	snap, err := s.snap.SignOut()
	if err != nil {
		return err
	}
	s.snap = snap
	return nil
}

// UpdateUser merges the partial update into the current user and writes the
// merged record to both the session slot and the registry entry. On failure
// the previous state stays intact, including a best-effort rewrite of the
// session slot if only the registry write failed.
func (s *SessionService) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	s.mu.Lock()
	snap := s.snap
	s.mu.Unlock()

	if !snap.Authenticated() {
		return models.User{}, ErrNoActiveSession
	}
	previous := *snap.User
	merged := update.Apply(previous)

	registry, err := s.loadRegistry(ctx)
	if err != nil {
		return models.User{}, err
	}

	if err := s.persistSession(ctx, merged); err != nil {
		return models.User{}, err
	}

	replaced := false
	for i := range registry {
		if registry[i].ID == merged.ID {
			registry[i] = merged
			replaced = true
			break
		}
	}
	if !replaced {
		registry = append(registry, merged)
	}
	if err := s.saveRegistry(ctx, registry); err != nil {
		if rbErr := s.persistSession(ctx, previous); rbErr != nil {
			slog.Error("session rollback failed after registry write error", "error", rbErr)
		}
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	newSnap, err := s.snap.WithUser(merged)
	if err != nil {
		return models.User{}, err
	}
	s.snap = newSnap
	return merged, nil
}

// CurrentUser returns a copy of the signed-in user.
func (s *SessionService) CurrentUser() (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.Authenticated() {
		return models.User{}, ErrNoActiveSession
	}
	return *s.snap.User, nil
}

// Snapshot returns the current session state.
func (s *SessionService) Snapshot() session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

// WipeAll deletes every stored key, including registry and credentials, and
// resets the session. This is the only path that hard-deletes accounts.
func (s *SessionService) WipeAll(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = session.Snapshot{Status: session.StatusUnauthenticated}
	slog.Info("all persisted data wiped")
	return nil
}

func (s *SessionService) signIn(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Status == session.StatusAuthenticated {
		// Switching accounts without an explicit logout: sign the
		// previous user out first.
		snap, err := s.snap.SignOut()
		if err != nil {
			return err
		}
		s.snap = snap
	}
	snap, err := s.snap.SignIn(user)
	if err != nil {
		return err
	}
	s.snap = snap
	return nil
}

func (s *SessionService) discardCredential(ctx context.Context, userID string) {
	if err := s.store.Delete(ctx, storage.PasswordKey(userID)); err != nil {
		slog.Error("credential rollback failed", "user_id", userID, "error", err)
	}
}

func (s *SessionService) persistSession(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.store.Set(ctx, storage.KeyAuthUser, string(data))
}

// loadRegistry reads the registered users. A corrupt registry is treated as
// empty and repaired with a valid empty encoding.
func (s *SessionService) loadRegistry(ctx context.Context) ([]models.User, error) {
	raw, err := s.store.Get(ctx, storage.KeyRegisteredUsers)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var registry []models.User
	if err := json.Unmarshal([]byte(raw), &registry); err != nil {
		slog.Warn("user registry corrupt, resetting", "error", err)
		if err := s.saveRegistry(ctx, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return registry, nil
}

func (s *SessionService) saveRegistry(ctx context.Context, registry []models.User) error {
	if registry == nil {
		registry = []models.User{}
	}
	data, err := json.Marshal(registry)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	return s.store.Set(ctx, storage.KeyRegisteredUsers, string(data))
}

func (s *SessionService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// findUserByEmail matches case-insensitively; email is the login key.
func findUserByEmail(registry []models.User, email string) *models.User {
	for i := range registry {
		if strings.EqualFold(registry[i].Email, email) {
			return &registry[i]
		}
	}
	return nil
}

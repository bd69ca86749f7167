package identity

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/solhaven/astrocade/internal/dependencies/clock"
	"github.com/solhaven/astrocade/internal/model"
)

// CookieName is the session cookie attached after a successful callback
const CookieName = "session"

// Session represents an authenticated session established after an
// identity provider callback.
type Session struct {
	Token       string
	Identity    model.Identity
	DisplayName string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Config holds configuration for the session gate
type Config struct {
	SessionDuration time.Duration
	// Secret is the HMAC key used to sign session tokens
	Secret string
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service is the session/identity gate. Sessions live in an in-process
// map; durable session storage is deliberately out of scope.
type Service struct {
	clock  clock.Clock
	secret []byte

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// New creates a new identity service
func New(clk clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		clock:           clk,
		secret:          []byte(cfg.Secret),
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// CreateSession establishes a session for an exchanged profile
func (s *Service) CreateSession(profile *Profile) *Session {
	now := s.clock.Now()

	session := &Session{
		Token:       s.newToken(),
		Identity:    profile.ID,
		DisplayName: profile.Username,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// ValidateSession checks a token's signature and expiry and returns the
// session, or model.ErrInvalidSession.
func (s *Service) ValidateSession(token string) (*Session, error) {
	if !s.verifyToken(token) {
		return nil, model.ErrInvalidSession
	}

	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, model.ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// SessionFromRequest resolves the request's session from the
// Authorization header or the session cookie.
func (s *Service) SessionFromRequest(r *http.Request) (*Session, error) {
	token := extractToken(r)
	if token == "" {
		return nil, model.ErrInvalidSession
	}
	return s.ValidateSession(token)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// SessionCookie builds the cookie carrying a session token
func SessionCookie(session *Session) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds an expired cookie to remove the session
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := r.Cookie(CookieName)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// newToken generates a signed random token: the random part and its HMAC
// under the session secret, so a forged or truncated cookie is rejected
// before the map lookup.
func (s *Service) newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	id := base64.RawURLEncoding.EncodeToString(b)
	return id + "." + s.sign(id)
}

func (s *Service) verifyToken(token string) bool {
	id, sig, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sig), []byte(s.sign(id))) == 1
}

func (s *Service) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

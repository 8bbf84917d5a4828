package internal

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/esprit/pkg/logger"
	"github.com/dmitrymomot/esprit/pkg/session"
)

// Default session configuration.
const (
	defaultSessionCookieName = "__sid"
	defaultSessionMaxAge     = 86400 * 30 // 30 days
)

// SessionStarter begins the session of a request and persists it before
// the response is sent.
type SessionStarter interface {
	StartSession(ctx context.Context, env Environment) (*session.Session, error)
	CommitSession(ctx context.Context, out *Output, sess *session.Session) error
}

// SessionManager keeps sessions in a store, addressed by a cookie.
type SessionManager struct {
	store      session.Store
	log        *logger.Logger
	cookieName string
	domain     string
	path       string
	maxAge     int
	sameSite   http.SameSite
	secure     bool
	httpOnly   bool
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a new SessionManager with the given store and options.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:      store,
		log:        logger.NewNope(),
		cookieName: defaultSessionCookieName,
		maxAge:     defaultSessionMaxAge,
		path:       "/",
		httpOnly:   true,
		sameSite:   http.SameSiteLaxMode,
	}

	for _, opt := range opts {
		opt(sm)
	}

	return sm
}

// WithSessionCookieName sets the session cookie name.
func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// WithSessionMaxAge sets the session lifetime.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if d >= time.Second {
			sm.maxAge = int(d / time.Second)
		}
	}
}

// WithSessionDomain sets the session cookie domain.
func WithSessionDomain(domain string) SessionOption {
	return func(sm *SessionManager) {
		sm.domain = domain
	}
}

// WithSessionSecure sets the session cookie Secure flag.
func WithSessionSecure(secure bool) SessionOption {
	return func(sm *SessionManager) {
		sm.secure = secure
	}
}

// WithSessionSameSite sets the session cookie SameSite attribute.
func WithSessionSameSite(sameSite http.SameSite) SessionOption {
	return func(sm *SessionManager) {
		sm.sameSite = sameSite
	}
}

// WithSessionLogger sets the logger for store failures.
func WithSessionLogger(l *logger.Logger) SessionOption {
	return func(sm *SessionManager) {
		if l != nil {
			sm.log = l
		}
	}
}

// StartSession loads the session named by the request cookie. Missing,
// unknown and expired sessions are replaced by a new one.
func (sm *SessionManager) StartSession(ctx context.Context, env Environment) (*session.Session, error) {
	if token, ok := env.Cookie(sm.cookieName); ok && token != "" {
		sess, err := sm.store.Get(ctx, token)
		switch {
		case err == nil:
			sess.LastActiveAt = time.Now()
			return sess, nil
		case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired), errors.Is(err, session.ErrInvalidToken):
			sm.log.FinestContext(ctx, "discarding session cookie", slog.String("reason", err.Error()))
		default:
			return nil, err
		}
	}
	return sm.createSession(ctx, env)
}

func (sm *SessionManager) createSession(ctx context.Context, env Environment) (*session.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	expiresAt := time.Now().Add(time.Duration(sm.maxAge) * time.Second)

	sess := session.New(uuid.NewString(), token, expiresAt)
	sess.IP = env.Server[ServerRemoteAddr]
	sess.UserAgent = env.Server[ServerUserAgent]

	if err := sm.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	sess.ClearDirty()
	return sess, nil
}

// CommitSession sets the cookie of a new session and saves changed
// values. It must run before the response header is sent.
func (sm *SessionManager) CommitSession(ctx context.Context, out *Output, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	if sess.IsNew() {
		sm.SaveCookie(out, sess)
		sess.ClearNew()
	}
	if !sess.IsDirty() {
		return nil
	}
	if err := sm.store.Update(ctx, sess); err != nil {
		return err
	}
	sess.ClearDirty()
	return nil
}

// SaveCookie writes the session cookie to the response.
func (sm *SessionManager) SaveCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    sess.Token,
		Path:     sm.path,
		Domain:   sm.domain,
		MaxAge:   sm.maxAge,
		Secure:   sm.secure,
		HttpOnly: sm.httpOnly,
		SameSite: sm.sameSite,
	})
}

// RotateToken gives the session a new token, invalidating the old one.
// Call it after authentication.
func (sm *SessionManager) RotateToken(ctx context.Context, out *Output, sess *session.Session) error {
	oldToken := sess.Token
	newToken, err := generateToken()
	if err != nil {
		return fmt.Errorf("generate session token: %w", err)
	}

	sess.Token = newToken
	if err := sm.store.Create(ctx, sess); err != nil {
		sess.Token = oldToken
		return err
	}
	if err := sm.store.Delete(ctx, oldToken); err != nil {
		sm.log.WarningContext(ctx, "failed to delete rotated session", slog.Any("error", err))
	}
	sess.ClearDirty()
	sm.SaveCookie(out, sess)
	return nil
}

// DestroySession deletes the session and clears the cookie.
func (sm *SessionManager) DestroySession(ctx context.Context, out *Output, sess *session.Session) error {
	http.SetCookie(out, &http.Cookie{
		Name:     sm.cookieName,
		Value:    "",
		Path:     sm.path,
		Domain:   sm.domain,
		MaxAge:   -1,
		Secure:   sm.secure,
		HttpOnly: sm.httpOnly,
		SameSite: sm.sameSite,
	})
	return sm.store.Delete(ctx, sess.Token)
}

// Store returns the underlying session store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

// generateToken creates a cryptographically secure random token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

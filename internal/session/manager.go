package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "inkwell_session"

// Manager glues the store and the cookie codec together for the HTTP layer.
type Manager struct {
	store Store
	codec *TokenCodec
	ttl   time.Duration
}

// NewManager builds a Manager around the given store.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		codec: NewTokenCodec(secret),
		ttl:   ttl,
	}
}

// Issue creates a session bound to the user and sets the signed cookie.
func (m *Manager) Issue(c *fiber.Ctx, userID uint) error {
	sess, err := m.store.Create(c.Context(), userID, m.ttl)
	if err != nil {
		return err
	}

	token, err := m.codec.Encode(sess.ID, sess.ExpiresAt)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Resolve returns the user ID bound to the request's session cookie.
// Any failure along the way (no cookie, bad signature, expired token,
// unknown session) resolves to anonymous, never an error: public pages
// must keep working for unauthenticated visitors.
func (m *Manager) Resolve(c *fiber.Ctx) (uint, bool) {
	token := c.Cookies(CookieName)
	if token == "" {
		return 0, false
	}

	sessionID, err := m.codec.Decode(token)
	if err != nil {
		return 0, false
	}

	sess, err := m.store.Get(c.Context(), sessionID)
	if err != nil || sess == nil {
		return 0, false
	}
	return sess.UserID, true
}

// Clear deletes the server-side session and expires the cookie.
func (m *Manager) Clear(c *fiber.Ctx) error {
	token := c.Cookies(CookieName)
	if token != "" {
		if sessionID, err := m.codec.Decode(token); err == nil {
			if err := m.store.Delete(c.Context(), sessionID); err != nil {
				return err
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Ping reports whether the backing store is reachable.
func (m *Manager) Ping(c *fiber.Ctx) error {
	return m.store.Ping(c.Context())
}

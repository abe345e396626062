package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "go-cart-session"

	sessionIDKey = "sessionID"
	userIDKey    = "userID"
	tokenKey     = "authToken"
)

// SessionStore keeps the per-browser identifiers in a signed, encrypted
// cookie. The cart itself lives server side, keyed by the session id.
type SessionStore interface {
	SessionID(w http.ResponseWriter, r *http.Request) (string, error)
	GetAuth(r *http.Request) (userID, token string)
	SetAuth(w http.ResponseWriter, r *http.Request, userID, token string) error
	ClearAuth(w http.ResponseWriter, r *http.Request) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

// getSession never fails on a bad cookie: a cookie that no longer decodes,
// for example after a key rotation, yields a fresh session.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, _ := c.store.Get(r, sessionCookieName)
	if session == nil {
		opts := *c.store.Options
		session = sessions.NewSession(c.store, sessionCookieName)
		session.Options = &opts
		session.IsNew = true
	}
	return session
}

// SessionID returns the id of the browser session, issuing one when the
// request carries none.
func (c *CookieSessionStore) SessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	session := c.getSession(r)
	if id, ok := session.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.New().String()
	session.Values[sessionIDKey] = id
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}

func (c *CookieSessionStore) GetAuth(r *http.Request) (string, string) {
	session := c.getSession(r)
	userID, _ := session.Values[userIDKey].(string)
	token, _ := session.Values[tokenKey].(string)
	return userID, token
}

func (c *CookieSessionStore) SetAuth(w http.ResponseWriter, r *http.Request, userID, token string) error {
	session := c.getSession(r)
	session.Values[userIDKey] = userID
	session.Values[tokenKey] = token
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearAuth(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	delete(session.Values, userIDKey)
	delete(session.Values, tokenKey)
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

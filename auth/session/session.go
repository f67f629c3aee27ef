/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/auth/users"
	"github.com/nuts-foundation/wallet-authz/crypto"
	"github.com/nuts-foundation/wallet-authz/storage"
)

// CookieName is the name of the cookie that carries the browser session ID.
const CookieName = "authz-session"

type contextKey struct{}

var sessionContextKey = contextKey{}

// ErrNoSession is returned when the request has no session.
var ErrNoSession = errors.New("no browser session")

// ErrInvalidSessionID is returned when the session ID can't be used as storage key.
var ErrInvalidSessionID = errors.New("invalid browser session ID")

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{16,128}$`)

// Data is the state of a browser session.
type Data struct {
	// Principal is the authenticated user, nil if the user didn't authenticate (yet).
	Principal *users.Principal `json:"principal,omitempty"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Authenticated returns true if a user authenticated in this session.
func (d Data) Authenticated() bool {
	return d.Principal != nil
}

// Manager is Echo middleware that ensures a browser session is available in the request context (unless skipped).
// If no session is available, a new session is created.
type Manager struct {
	// Skipper defines a function to skip middleware.
	Skipper middleware.Skipper
	// TimeOut is the maximum lifetime of a browser session.
	TimeOut time.Duration
	// Store is the session store to use for storing browser sessions.
	Store storage.SessionStore
	// Secure sets the Secure attribute on the session cookie. Enabled in strict mode.
	Secure bool
}

// NewManager creates a Manager that stores sessions in the given database.
func NewManager(db storage.SessionDatabase, timeOut time.Duration, secure bool) *Manager {
	return &Manager{
		Skipper: middleware.DefaultSkipper,
		TimeOut: timeOut,
		Store:   db.GetStore(timeOut, "browser_session"),
		Secure:  secure,
	}
}

func (m Manager) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(echoCtx echo.Context) error {
		if m.Skipper != nil && m.Skipper(echoCtx) {
			return next(echoCtx)
		}
		_, sessionData, err := m.load(echoCtx)
		if err != nil {
			// Should only really occur in exceptional circumstances (e.g. cookie survived after intended max age).
			log.Logger().WithError(err).Info("Invalid browser session, a new session will be created")
		}
		if sessionData == nil {
			if sessionData, err = m.create(echoCtx, nil); err != nil {
				return fmt.Errorf("create browser session: %w", err)
			}
		}
		setData(echoCtx, sessionData)
		return next(echoCtx)
	}
}

// CurrentID resolves the session ID of the request.
// The request cookie takes precedence if it refers to a live session.
// Otherwise, the session cookie written to the response in this request cycle is used, since the session may have just been created.
func (m Manager) CurrentID(echoCtx echo.Context) (string, error) {
	var sessionID string
	if cookie, err := echoCtx.Cookie(CookieName); err == nil && m.Store.Exists(cookie.Value) {
		sessionID = cookie.Value
	} else if cookie := responseCookie(echoCtx.Response().Header()); cookie != nil {
		sessionID = cookie.Value
	}
	if sessionID == "" {
		return "", ErrNoSession
	}
	if !sessionIDPattern.MatchString(sessionID) {
		return "", ErrInvalidSessionID
	}
	return sessionID, nil
}

// Rotate replaces the current session with a new session (with a new ID) for the given principal.
// This prevents session fixation: an ID that was known before authentication, is not valid after it.
func (m Manager) Rotate(echoCtx echo.Context, principal users.Principal) error {
	if oldID, err := m.CurrentID(echoCtx); err == nil {
		if err := m.Store.Delete(oldID); err != nil {
			return fmt.Errorf("delete browser session: %w", err)
		}
	}
	sessionData, err := m.create(echoCtx, &principal)
	if err != nil {
		return fmt.Errorf("create browser session: %w", err)
	}
	setData(echoCtx, sessionData)
	return nil
}

// load loads the browser session given the session ID in the cookie.
// If there is no session cookie (new browser, or the session expired), nil is returned.
func (m Manager) load(echoCtx echo.Context) (string, *Data, error) {
	cookie, err := echoCtx.Cookie(CookieName)
	if err != nil {
		// Cookie only returns http.ErrNoCookie
		return "", nil, nil
	}
	sessionID := cookie.Value
	if !sessionIDPattern.MatchString(sessionID) {
		return "", nil, ErrInvalidSessionID
	}
	sessionData := new(Data)
	if err = m.Store.Get(sessionID, sessionData); errors.Is(err, storage.ErrNotFound) {
		return "", nil, errors.New("unknown or expired session")
	} else if err != nil {
		return "", nil, fmt.Errorf("invalid browser session: %w", err)
	}
	if sessionData.ExpiresAt.Before(time.Now()) {
		return "", nil, errors.New("expired session")
	}
	return sessionID, sessionData, nil
}

func (m Manager) create(echoCtx echo.Context, principal *users.Principal) (*Data, error) {
	sessionID := crypto.GenerateNonce()
	sessionData := &Data{
		Principal: principal,
		ExpiresAt: time.Now().Add(m.TimeOut),
	}
	if err := m.Store.Put(sessionID, sessionData); err != nil {
		return nil, err
	}
	echoCtx.SetCookie(m.createCookie(sessionID))
	return sessionData, nil
}

func (m Manager) createCookie(sessionID string) *http.Cookie {
	// Do not set Expires: then it isn't a session cookie anymore.
	return &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(m.TimeOut.Seconds()),
		Secure:   m.Secure,
		HttpOnly: true,
		// Lax, since the browser returns from the wallet through a cross-site top-level navigation
		SameSite: http.SameSiteLaxMode,
	}
}

// responseCookie returns the last session cookie set on the response, or nil if there is none.
func responseCookie(header http.Header) *http.Cookie {
	var result *http.Cookie
	for _, cookie := range (&http.Response{Header: header}).Cookies() {
		if cookie.Name == CookieName {
			result = cookie
		}
	}
	return result
}

func setData(echoCtx echo.Context, data *Data) {
	echoCtx.SetRequest(echoCtx.Request().WithContext(context.WithValue(echoCtx.Request().Context(), sessionContextKey, data)))
}

// Get retrieves the browser session from the request context.
// If the browser session is not found, an error is returned.
func Get(ctx context.Context) (*Data, error) {
	result, ok := ctx.Value(sessionContextKey).(*Data)
	if !ok {
		return nil, ErrNoSession
	}
	return result, nil
}

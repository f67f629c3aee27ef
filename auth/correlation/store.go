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

package correlation

import (
	"errors"
	"fmt"
	"time"

	"github.com/nuts-foundation/wallet-authz/auth/log"
	"github.com/nuts-foundation/wallet-authz/core"
	"github.com/nuts-foundation/wallet-authz/storage"
)

// DefaultFlowTimeout is the default time a browser has to complete the round trip to the wallet.
const DefaultFlowTimeout = 5 * time.Minute

// ErrNoCorrelation is returned when a session has no pending wallet authentication (never started, already consumed or expired).
var ErrNoCorrelation = errors.New("no pending wallet authentication for session")

// PendingPresentation is the presentation transaction the verifier created for a session.
type PendingPresentation struct {
	Nonce          string `json:"nonce"`
	PresentationID string `json:"presentation_id"`
}

// Store correlates a browser session with the authorization request that was interrupted for wallet authentication.
// A session has at most one pending correlation: starting a new one replaces the previous (last write wins).
// Entries expire after the flow timeout.
type Store interface {
	// Begin records the return URL and pending presentation for the session.
	// Either both are stored, or neither.
	Begin(sessionID string, returnURL string, presentation PendingPresentation) error
	// TakeReturnURL atomically retrieves and removes the return URL of the session.
	// It returns ErrNoCorrelation if there is none.
	TakeReturnURL(sessionID string) (string, error)
	// TakePresentation atomically retrieves and removes the pending presentation of the session.
	// It returns ErrNoCorrelation if there is none.
	TakePresentation(sessionID string) (*PendingPresentation, error)
	// Discard removes all correlation entries of the session.
	Discard(sessionID string) error
}

// NewSessionStore creates a Store on the given session database.
func NewSessionStore(db storage.SessionDatabase, flowTimeout time.Duration) Store {
	return &sessionStore{
		returnURLs:    db.GetStore(flowTimeout, "correlation", "return_url"),
		presentations: db.GetStore(flowTimeout, "correlation", "presentation"),
	}
}

type sessionStore struct {
	returnURLs    storage.SessionStore
	presentations storage.SessionStore
}

func (s sessionStore) Begin(sessionID string, returnURL string, presentation PendingPresentation) error {
	if err := s.returnURLs.Put(sessionID, returnURL); err != nil {
		return fmt.Errorf("unable to store return URL: %w", err)
	}
	if err := s.presentations.Put(sessionID, presentation); err != nil {
		if rollbackErr := s.returnURLs.Delete(sessionID); rollbackErr != nil {
			log.Logger().WithError(rollbackErr).
				WithField(core.LogFieldSessionID, core.TruncateID(sessionID)).
				Error("Failed to roll back return URL")
		}
		return fmt.Errorf("unable to store pending presentation: %w", err)
	}
	return nil
}

func (s sessionStore) TakeReturnURL(sessionID string) (string, error) {
	var result string
	if err := take(s.returnURLs, sessionID, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (s sessionStore) TakePresentation(sessionID string) (*PendingPresentation, error) {
	result := new(PendingPresentation)
	if err := take(s.presentations, sessionID, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s sessionStore) Discard(sessionID string) error {
	return errors.Join(s.returnURLs.Delete(sessionID), s.presentations.Delete(sessionID))
}

func take(store storage.SessionStore, sessionID string, target interface{}) error {
	err := store.GetAndDelete(sessionID, target)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNoCorrelation
	}
	return err
}

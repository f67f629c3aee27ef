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
	"sync"
	"testing"
	"time"

	"github.com/nuts-foundation/wallet-authz/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/mock/gomock"
)

const sessionID = "S1-session-identifier-0123456789"

var presentation = PendingPresentation{Nonce: "nonce", PresentationID: "presentation"}

func TestSessionStore_Begin(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		store := NewSessionStore(storage.NewTestInMemorySessionDatabase(t), time.Minute)

		require.NoError(t, store.Begin(sessionID, "https://authz.example.com/oauth2/authorize?client_id=app1", presentation))

		returnURL, err := store.TakeReturnURL(sessionID)
		require.NoError(t, err)
		assert.Equal(t, "https://authz.example.com/oauth2/authorize?client_id=app1", returnURL)
		actual, err := store.TakePresentation(sessionID)
		require.NoError(t, err)
		assert.Equal(t, presentation, *actual)
	})
	t.Run("last write wins", func(t *testing.T) {
		store := NewSessionStore(storage.NewTestInMemorySessionDatabase(t), time.Minute)
		second := PendingPresentation{Nonce: "nonce2", PresentationID: "presentation2"}

		require.NoError(t, store.Begin(sessionID, "first", presentation))
		require.NoError(t, store.Begin(sessionID, "second", second))

		returnURL, _ := store.TakeReturnURL(sessionID)
		assert.Equal(t, "second", returnURL)
		actual, _ := store.TakePresentation(sessionID)
		assert.Equal(t, second, *actual)
	})
	t.Run("error - second write fails, first write is rolled back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		returnURLs := storage.NewMockSessionStore(ctrl)
		presentations := storage.NewMockSessionStore(ctrl)
		returnURLs.EXPECT().Put(sessionID, "url").Return(nil)
		presentations.EXPECT().Put(sessionID, presentation).Return(assert.AnError)
		returnURLs.EXPECT().Delete(sessionID).Return(nil)
		store := sessionStore{returnURLs: returnURLs, presentations: presentations}

		err := store.Begin(sessionID, "url", presentation)

		assert.ErrorIs(t, err, assert.AnError)
		assert.ErrorContains(t, err, "unable to store pending presentation")
	})
	t.Run("error - first write fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		returnURLs := storage.NewMockSessionStore(ctrl)
		returnURLs.EXPECT().Put(sessionID, "url").Return(assert.AnError)
		store := sessionStore{returnURLs: returnURLs, presentations: storage.NewMockSessionStore(ctrl)}

		err := store.Begin(sessionID, "url", presentation)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestSessionStore_TakeReturnURL(t *testing.T) {
	t.Run("taken once", func(t *testing.T) {
		store := NewSessionStore(storage.NewTestInMemorySessionDatabase(t), time.Minute)
		require.NoError(t, store.Begin(sessionID, "url", presentation))

		_, err := store.TakeReturnURL(sessionID)
		require.NoError(t, err)
		_, err = store.TakeReturnURL(sessionID)

		assert.ErrorIs(t, err, ErrNoCorrelation)
	})
	t.Run("taken once by concurrent callers", func(t *testing.T) {
		store := NewSessionStore(storage.NewTestInMemorySessionDatabase(t), time.Minute)
		require.NoError(t, store.Begin(sessionID, "url", presentation))
		const callers = 50
		taken := atomic.NewInt32(0)
		wg := sync.WaitGroup{}
		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func() {
				defer wg.Done()
				if _, err := store.TakeReturnURL(sessionID); err == nil {
					taken.Inc()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), taken.Load())
	})
	t.Run("unknown session", func(t *testing.T) {
		store := NewSessionStore(storage.NewTestInMemorySessionDatabase(t), time.Minute)

		_, err := store.TakeReturnURL("S2")

		assert.ErrorIs(t, err, ErrNoCorrelation)
	})
	t.Run("expired", func(t *testing.T) {
		store := NewSessionStore(storage.NewTestInMemorySessionDatabase(t), 10*time.Millisecond)
		require.NoError(t, store.Begin(sessionID, "url", presentation))
		time.Sleep(20 * time.Millisecond)

		_, err := store.TakeReturnURL(sessionID)

		assert.ErrorIs(t, err, ErrNoCorrelation)
	})
	t.Run("error - storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		returnURLs := storage.NewMockSessionStore(ctrl)
		returnURLs.EXPECT().GetAndDelete(sessionID, gomock.Any()).Return(assert.AnError)
		store := sessionStore{returnURLs: returnURLs}

		_, err := store.TakeReturnURL(sessionID)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestSessionStore_TakePresentation(t *testing.T) {
	store := NewSessionStore(storage.NewTestInMemorySessionDatabase(t), time.Minute)
	require.NoError(t, store.Begin(sessionID, "url", presentation))

	actual, err := store.TakePresentation(sessionID)
	require.NoError(t, err)
	assert.Equal(t, presentation, *actual)

	_, err = store.TakePresentation(sessionID)
	assert.ErrorIs(t, err, ErrNoCorrelation)
	t.Run("return URL is not affected", func(t *testing.T) {
		returnURL, err := store.TakeReturnURL(sessionID)

		require.NoError(t, err)
		assert.Equal(t, "url", returnURL)
	})
}

func TestSessionStore_Discard(t *testing.T) {
	store := NewSessionStore(storage.NewTestInMemorySessionDatabase(t), time.Minute)
	require.NoError(t, store.Begin(sessionID, "url", presentation))

	require.NoError(t, store.Discard(sessionID))

	_, err := store.TakeReturnURL(sessionID)
	assert.ErrorIs(t, err, ErrNoCorrelation)
	_, err = store.TakePresentation(sessionID)
	assert.ErrorIs(t, err, ErrNoCorrelation)
	t.Run("nothing to discard", func(t *testing.T) {
		assert.NoError(t, store.Discard("unknown"))
	})
}

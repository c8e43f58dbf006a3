// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/studydeck/internal/engine"
)

// SessionStore loads and saves engine snapshots keyed by user id. Callers
// persist around transitions, never inside them; a failed save is non-fatal
// to the in-memory session.
type SessionStore struct {
	kv KVStore
}

// NewSessionStore wraps a KVStore.
func NewSessionStore(kv KVStore) *SessionStore {
	return &SessionStore{kv: kv}
}

// sessionEnvelope wraps a snapshot with save metadata.
type sessionEnvelope struct {
	User    string              `json:"user"`
	SavedAt time.Time           `json:"saved_at"`
	State   engine.SessionState `json:"state"`
}

func sessionKey(userID string) string {
	return fmt.Sprintf("studydeck:session:%s", userID)
}

// Load returns the persisted snapshot for the user, or ErrNotFound if the
// user has never saved one.
func (s *SessionStore) Load(ctx context.Context, userID string) (*engine.SessionState, error) {
	data, err := s.kv.Get(ctx, sessionKey(userID))
	if err != nil {
		return nil, err
	}
	var env sessionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal session for %s: %w", userID, err)
	}
	return &env.State, nil
}

// Save persists the snapshot for the user.
func (s *SessionStore) Save(ctx context.Context, userID string, state engine.SessionState) error {
	env := sessionEnvelope{User: userID, SavedAt: time.Now().UTC(), State: state}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal session for %s: %w", userID, err)
	}
	if err := s.kv.Set(ctx, sessionKey(userID), data); err != nil {
		return fmt.Errorf("save session for %s: %w", userID, err)
	}
	return nil
}

// Delete removes the persisted snapshot for the user.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.kv.Delete(ctx, sessionKey(userID))
}

package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clipwave/clipwave/constant"
	"github.com/zalando/go-keyring"
)

const (
	service = constant.Clipwave
	user    = "session"
)

// Save stores the session in the system keyring.
func Save(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return keyring.Set(service, user, string(data))
}

// Load returns the stored session, or ErrNoSession.
func Load() (Session, error) {
	raw, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("read keyring: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}

	if !s.Authenticated() {
		return Session{}, ErrNoSession
	}

	return s, nil
}

// Delete forgets the stored session. Deleting a missing session is not an error.
func Delete() error {
	if err := keyring.Delete(service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

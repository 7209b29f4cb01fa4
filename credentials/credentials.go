// credentials/credentials.go
// Package credentials defines the secure-storage collaborator the client's callers use to
// persist login details between runs. The client itself never persists credentials.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// Storage keys.
const (
	KeyUsername = "username"
	KeyPassword = "password"
	KeyJamfURL  = "jamfURL"
)

// Environment variables read by EnvStore.
const (
	EnvUsername = "JAMF_USERNAME"
	EnvPassword = "JAMF_PASSWORD"
	EnvJamfURL  = "JAMF_URL"
)

var (
	// ErrNotFound is returned by Load when nothing is stored under the key.
	ErrNotFound = errors.New("credential not found")
	// ErrReadOnly is returned by Save on stores that cannot be written.
	ErrReadOnly = errors.New("credential store is read-only")
	// ErrUnknownKey is returned for keys other than KeyUsername, KeyPassword and KeyJamfURL.
	ErrUnknownKey = errors.New("unknown credential key")
)

// Store is a keyed secret store such as a keychain.
type Store interface {
	Load(key string) (string, error)
	Save(key, value string) error
}

// Credentials is the set of values kept in a Store.
type Credentials struct {
	Username string
	Password string
	JamfURL  string
}

// LoadAll reads all three keys. Missing keys are left empty; any other error is returned.
func LoadAll(s Store) (Credentials, error) {
	var creds Credentials
	for key, dst := range map[string]*string{
		KeyUsername: &creds.Username,
		KeyPassword: &creds.Password,
		KeyJamfURL:  &creds.JamfURL,
	} {
		value, err := s.Load(key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Credentials{}, fmt.Errorf("loading %s: %w", key, err)
		}
		*dst = value
	}
	return creds, nil
}

// SaveAll writes all three keys.
func SaveAll(s Store, creds Credentials) error {
	for _, kv := range [][2]string{
		{KeyUsername, creds.Username},
		{KeyPassword, creds.Password},
		{KeyJamfURL, creds.JamfURL},
	} {
		if err := s.Save(kv[0], kv[1]); err != nil {
			return fmt.Errorf("saving %s: %w", kv[0], err)
		}
	}
	return nil
}

func validKey(key string) bool {
	return key == KeyUsername || key == KeyPassword || key == KeyJamfURL
}

// MemoryStore keeps credentials for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Load implements Store.
func (m *MemoryStore) Load(key string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

// Save implements Store.
func (m *MemoryStore) Save(key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

// EnvStore reads credentials from JAMF_USERNAME, JAMF_PASSWORD and JAMF_URL.
type EnvStore struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

var envByKey = map[string]string{
	KeyUsername: EnvUsername,
	KeyPassword: EnvPassword,
	KeyJamfURL:  EnvJamfURL,
}

// Load implements Store.
func (e EnvStore) Load(key string) (string, error) {
	name, ok := envByKey[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	lookup := e.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(name)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return value, nil
}

// Save implements Store. The environment is never written.
func (e EnvStore) Save(key, value string) error {
	return ErrReadOnly
}

package session

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const credentialFileExtension = ".json"

// Store errors.
var (
	ErrNoCredentials  = errors.New("not logged in")
	ErrInvalidBaseURL = errors.New("API base URL cannot be empty")
)

// Credential is a stored access token for one API.
type Credential struct {
	BaseURL     string    `json:"base_url"`
	AccessToken string    `json:"access_token"`
	Subject     string    `json:"subject,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// ExpiresAt is zero when the token carries no expiry.
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// IsExpired reports whether the credential has passed its expiry.
func (c Credential) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && !time.Now().Before(c.ExpiresAt)
}

// Store keeps credentials as JSON files in a directory.
// It is safe for concurrent use.
type Store struct {
	directory string
	mu        sync.RWMutex

	// now is replaceable in tests.
	now func() time.Time
}

// NewStore creates the credentials directory if needed.
func NewStore(directory string) (*Store, error) {
	if directory == "" {
		return nil, errors.New("credentials directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return nil, fmt.Errorf("creating credentials directory: %w", err)
	}
	return &Store{directory: directory, now: time.Now}, nil
}

// Save stores token for baseURL, replacing any previous one. The subject and
// expiry are read from the token when it is a JWT.
func (s *Store) Save(baseURL, token string) (Credential, error) {
	key := normalizeBaseURL(baseURL)
	if key == "" {
		return Credential{}, ErrInvalidBaseURL
	}
	if token == "" {
		return Credential{}, ErrMalformedToken
	}

	cred := Credential{
		BaseURL:     key,
		AccessToken: token,
		CreatedAt:   s.now().UTC(),
	}
	if claims, err := ParseToken(token); err == nil {
		cred.Subject = claims.Subject
		cred.ExpiresAt = claims.ExpiresAt.UTC()
	}

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return Credential{}, fmt.Errorf("encoding credential: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(key)
	tmp := path + ".tmp"
	if writeErr := os.WriteFile(tmp, data, 0o600); writeErr != nil {
		return Credential{}, fmt.Errorf("writing credential: %w", writeErr)
	}
	if renameErr := os.Rename(tmp, path); renameErr != nil {
		_ = os.Remove(tmp)
		return Credential{}, fmt.Errorf("replacing credential: %w", renameErr)
	}
	return cred, nil
}

// Load returns the credential for baseURL. Missing and expired credentials
// both yield ErrNoCredentials; an expired file is removed.
func (s *Store) Load(baseURL string) (Credential, error) {
	key := normalizeBaseURL(baseURL)
	if key == "" {
		return Credential{}, ErrInvalidBaseURL
	}

	s.mu.RLock()
	path := s.pathFor(key)
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credential{}, ErrNoCredentials
		}
		return Credential{}, fmt.Errorf("reading credential: %w", err)
	}

	var cred Credential
	if jsonErr := json.Unmarshal(data, &cred); jsonErr != nil {
		return Credential{}, fmt.Errorf("decoding credential: %w", jsonErr)
	}

	if !cred.ExpiresAt.IsZero() && !s.now().Before(cred.ExpiresAt) {
		_ = s.Delete(key)
		return Credential{}, fmt.Errorf("%w: session expired at %s", ErrNoCredentials, cred.ExpiresAt.Format(time.RFC3339))
	}
	return cred, nil
}

// Delete removes the credential for baseURL. Deleting a missing credential is not an error.
func (s *Store) Delete(baseURL string) error {
	key := normalizeBaseURL(baseURL)
	if key == "" {
		return ErrInvalidBaseURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credential: %w", err)
	}
	return nil
}

// Capabilities resolves what the stored credential for baseURL permits.
// Any load failure yields anonymous capabilities.
func (s *Store) Capabilities(baseURL string) Capabilities {
	cred, err := s.Load(baseURL)
	if err != nil {
		return Capabilities{}
	}
	return FromCredential(cred)
}

func (s *Store) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.directory, hex.EncodeToString(sum[:16])+credentialFileExtension)
}

func normalizeBaseURL(u string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(u)), "/")
}

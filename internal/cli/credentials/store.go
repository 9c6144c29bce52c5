// Package credentials keeps Ask Kodiak API credentials in the OS keychain,
// one entry per named profile.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/99designs/keyring"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/acl"
)

const (
	serviceName    = "kodiak-cli"
	DefaultProfile = "default"

	envKeyringBackend  = "KODIAK_KEYRING_BACKEND"
	envKeyringPassword = "KODIAK_KEYRING_PASSWORD"
	envCredentialsDir  = "KODIAK_CREDENTIALS_DIR"
)

// ErrNotConfigured is returned when a profile has no stored credentials.
var ErrNotConfigured = errors.New("no credentials stored, run 'kodiak auth login' first")

// Opener opens a keyring. Tests swap in keyring.NewArrayKeyring.
type Opener func(keyring.Config) (keyring.Keyring, error)

// Store reads and writes credentials through a keyring.
type Store struct {
	open Opener
}

// NewStore returns a Store over the system keyring, falling back to an
// encrypted file on headless Linux.
func NewStore() *Store {
	return &Store{open: keyring.Open}
}

// NewStoreWith returns a Store that opens keyrings with open.
func NewStoreWith(open Opener) *Store {
	return &Store{open: open}
}

type item struct {
	GroupID string `json:"group_id"`
	APIKey  string `json:"api_key"`
}

// Save stores creds under profile.
func (s *Store) Save(profile string, creds acl.Credentials) error {
	if creds.GroupID == "" || creds.APIKey == "" {
		return errors.New("group ID and API key are both required")
	}

	ring, err := s.open(keyringConfig())
	if err != nil {
		return fmt.Errorf("open keyring: %w", err)
	}

	data, err := json.Marshal(item{GroupID: creds.GroupID, APIKey: creds.APIKey})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	err = ring.Set(keyring.Item{
		Key:   profileKey(profile),
		Data:  data,
		Label: serviceName + " " + normalize(profile),
	})
	if err != nil {
		return fmt.Errorf("save profile %q: %w", normalize(profile), err)
	}

	return nil
}

// Load returns the credentials stored under profile.
func (s *Store) Load(profile string) (acl.Credentials, error) {
	ring, err := s.open(keyringConfig())
	if err != nil {
		return acl.Credentials{}, fmt.Errorf("open keyring: %w", err)
	}

	stored, err := ring.Get(profileKey(profile))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return acl.Credentials{}, ErrNotConfigured
		}

		return acl.Credentials{}, fmt.Errorf("load profile %q: %w", normalize(profile), err)
	}

	var it item
	if err := json.Unmarshal(stored.Data, &it); err != nil {
		return acl.Credentials{}, fmt.Errorf("decode profile %q: %w", normalize(profile), err)
	}

	return acl.Credentials{GroupID: it.GroupID, APIKey: it.APIKey}, nil
}

// Delete removes profile. Deleting a missing profile is not an error.
func (s *Store) Delete(profile string) error {
	ring, err := s.open(keyringConfig())
	if err != nil {
		return fmt.Errorf("open keyring: %w", err)
	}

	if err := ring.Remove(profileKey(profile)); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("delete profile %q: %w", normalize(profile), err)
	}

	return nil
}

func normalize(profile string) string {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return DefaultProfile
	}

	return profile
}

func profileKey(profile string) string {
	return "profile:" + normalize(profile)
}

func keyringConfig() keyring.Config {
	cfg := keyring.Config{
		ServiceName:      serviceName,
		FileDir:          fileDir(),
		FilePasswordFunc: filePassword,
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv(envKeyringBackend)))
	if backend == "file" || (backend == "" && runtime.GOOS == "linux" && os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "") {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	return cfg
}

func fileDir() string {
	if dir := strings.TrimSpace(os.Getenv(envCredentialsDir)); dir != "" {
		return dir
	}

	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, serviceName, "keyring")
	}

	return filepath.Join(os.TempDir(), serviceName, "keyring")
}

func filePassword(prompt string) (string, error) {
	if password := os.Getenv(envKeyringPassword); password != "" {
		return password, nil
	}

	return keyring.TerminalPrompt(prompt)
}

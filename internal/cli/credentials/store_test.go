package credentials

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/acl"
)

func arrayStore(ring keyring.Keyring) *Store {
	return NewStoreWith(func(keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	})
}

func TestStore_SaveLoadDelete(t *testing.T) {
	store := arrayStore(keyring.NewArrayKeyring(nil))
	creds := acl.Credentials{GroupID: "group-1", APIKey: "key-1"}

	require.NoError(t, store.Save("work", creds))

	got, err := store.Load("work")
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	_, err = store.Load("")
	assert.ErrorIs(t, err, ErrNotConfigured)

	require.NoError(t, store.Delete("work"))
	require.NoError(t, store.Delete("work"))

	_, err = store.Load("work")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStore_BlankProfileIsDefault(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)
	store := arrayStore(ring)

	require.NoError(t, store.Save("  ", acl.Credentials{GroupID: "g", APIKey: "k"}))

	keys, err := ring.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"profile:default"}, keys)

	got, err := store.Load(DefaultProfile)
	require.NoError(t, err)
	assert.Equal(t, "g", got.GroupID)
}

func TestStore_SaveRequiresBothHalves(t *testing.T) {
	store := arrayStore(keyring.NewArrayKeyring(nil))

	assert.Error(t, store.Save("", acl.Credentials{GroupID: "g"}))
	assert.Error(t, store.Save("", acl.Credentials{APIKey: "k"}))
}

func TestStore_CorruptEntry(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: "profile:default", Data: []byte("{")}})

	_, err := arrayStore(ring).Load("")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestStore_OpenFailure(t *testing.T) {
	boom := errors.New("keychain locked")
	store := NewStoreWith(func(keyring.Config) (keyring.Keyring, error) {
		return nil, boom
	})

	_, err := store.Load("")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Save("", acl.Credentials{GroupID: "g", APIKey: "k"}), boom)
	assert.ErrorIs(t, store.Delete(""), boom)
}

func TestKeyringConfig_FileBackendOverride(t *testing.T) {
	t.Setenv(envKeyringBackend, "file")
	t.Setenv(envCredentialsDir, "/tmp/kodiak-test")

	cfg := keyringConfig()

	assert.Equal(t, serviceName, cfg.ServiceName)
	assert.Equal(t, []keyring.BackendType{keyring.FileBackend}, cfg.AllowedBackends)
	assert.Equal(t, "/tmp/kodiak-test", cfg.FileDir)
}

package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("device-secret")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	assert.Len(t, key1, KeySize)
	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same key for same inputs")
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	secret := []byte("device-secret")

	key1 := DeriveKey(secret, []byte("salt-1"))
	key2 := DeriveKey(secret, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different keys for different salts")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("s"), []byte("salt"))

	sealed, err := Seal([]byte("abc123"), key)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "abc123")

	plain, err := Open(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, "abc123", string(plain))
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	key := DeriveKey([]byte("s"), []byte("salt"))

	a, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	b, err := Seal([]byte("same"), key)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_Errors(t *testing.T) {
	key := DeriveKey([]byte("s"), []byte("salt"))
	other := DeriveKey([]byte("other"), []byte("salt"))

	sealed, err := Seal([]byte("token"), key)
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := Open(sealed, other)
		assert.Error(t, err)
	})

	t.Run("short input", func(t *testing.T) {
		_, err := Open([]byte{1, 2}, key)
		assert.ErrorIs(t, err, ErrShortCiphertext)
	})

	t.Run("bad key size", func(t *testing.T) {
		_, err := Seal([]byte("x"), []byte("short"))
		assert.Error(t, err)
	})
}

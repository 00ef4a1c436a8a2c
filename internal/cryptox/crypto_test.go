package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

func TestDeriveKey_Deterministic(t *testing.T) {
	k1, err := DeriveKey([]byte("secret-passphrase"), []byte("fixed-salt"))
	require.NoError(t, err)
	k2, err := DeriveKey([]byte("secret-passphrase"), []byte("fixed-salt"))
	require.NoError(t, err)

	assert.Len(t, k1, KeySize)
	// одинаковые входы -> одинаковый ключ
	assert.True(t, bytes.Equal(k1, k2))
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	k1, err := DeriveKey([]byte("secret-passphrase"), []byte("salt-1"))
	require.NoError(t, err)
	k2, err := DeriveKey([]byte("secret-passphrase"), []byte("salt-2"))
	require.NoError(t, err)

	assert.False(t, bytes.Equal(k1, k2))
}

func TestDeriveKey_EmptyPassphrase(t *testing.T) {
	_, err := DeriveKey(nil, []byte("salt"))
	require.ErrorIs(t, err, ErrEmptyPassphrase)
}

func TestSealOpenJSON_RoundTrip(t *testing.T) {
	key, err := DeriveKey([]byte("pass"), []byte("salt"))
	require.NoError(t, err)

	in := sample{AccessToken: "eyJhbGciOi...", ExpiresAt: 1760000000}
	ct, nonce, err := SealJSON(in, key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)
	require.NotContains(t, string(ct), "eyJhbGciOi")

	var out sample
	require.NoError(t, OpenJSON(ct, nonce, key, &out))
	assert.Equal(t, in, out)
}

func TestSealJSON_FreshNonceEachCall(t *testing.T) {
	key := bytes.Repeat([]byte{7}, KeySize)

	_, n1, err := SealJSON(sample{}, key)
	require.NoError(t, err)
	_, n2, err := SealJSON(sample{}, key)
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
}

func TestOpenJSON_WrongKey(t *testing.T) {
	key := bytes.Repeat([]byte{1}, KeySize)
	other := bytes.Repeat([]byte{2}, KeySize)

	ct, nonce, err := SealJSON(sample{AccessToken: "t"}, key)
	require.NoError(t, err)

	var out sample
	require.Error(t, OpenJSON(ct, nonce, other, &out))
}

func TestSealJSON_BadKeyLength(t *testing.T) {
	_, _, err := SealJSON(sample{}, []byte("short"))
	require.Error(t, err)
}

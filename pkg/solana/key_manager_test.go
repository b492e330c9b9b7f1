package solana

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, dir string, raw interface{}) string {
	t.Helper()
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	path := filepath.Join(dir, "wallet.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestKeyManager(t *testing.T) {
	km := NewKeyManager()

	// Test key pair generation
	t.Run("Generate Key Pair", func(t *testing.T) {
		account, err := km.GenerateKeyPair()
		require.NoError(t, err)
		assert.NotNil(t, account)
		assert.NotEmpty(t, account.PublicKey.ToBase58())
		assert.Equal(t, 64, len(account.PrivateKey), "Private key should be 64 bytes")
	})

	t.Run("Save and Load Keypair File", func(t *testing.T) {
		account, err := km.GenerateKeyPair()
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "keys", "wallet.json")
		require.NoError(t, km.SaveKeypairFile(account, path, false))

		// the file must be a plain JSON array of numbers
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var raw []int
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Len(t, raw, 64)

		key, err := km.LoadKeypairFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, account.PublicKey.ToBase58(), key.PublicKey().String())
	})

	t.Run("Loading Is Deterministic", func(t *testing.T) {
		account, err := km.GenerateKeyPair()
		require.NoError(t, err)
		raw := make([]int, len(account.PrivateKey))
		for i, b := range account.PrivateKey {
			raw[i] = int(b)
		}
		path := writeKeyFile(t, t.TempDir(), raw)

		first, err := km.LoadKeypairFromFile(path)
		require.NoError(t, err)
		second, err := km.LoadKeypairFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, first.PublicKey(), second.PublicKey())
	})

	t.Run("Refuse Overwrite", func(t *testing.T) {
		account, err := km.GenerateKeyPair()
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "wallet.json")
		require.NoError(t, km.SaveKeypairFile(account, path, false))
		assert.Error(t, km.SaveKeypairFile(account, path, false))
		assert.NoError(t, km.SaveKeypairFile(account, path, true))
	})

	// Test error cases
	t.Run("Error Cases", func(t *testing.T) {
		dir := t.TempDir()

		_, err := km.LoadKeypairFromFile(filepath.Join(dir, "nonexistent.json"))
		assert.Error(t, err)

		_, err = km.KeypairFromJSON([]byte("not json"))
		assert.Error(t, err)

		_, err = km.KeypairFromJSON([]byte("[1,2,3]"))
		assert.Error(t, err, "short keys must be rejected")

		tooBig := make([]int, 64)
		tooBig[3] = 300
		_, err = km.KeypairFromJSON(mustJSON(t, tooBig))
		assert.Error(t, err)

		account, err := km.GenerateKeyPair()
		require.NoError(t, err)
		raw := make([]int, 64)
		for i, b := range account.PrivateKey {
			raw[i] = int(b)
		}
		raw[40] ^= 0xff
		_, err = km.KeypairFromJSON(mustJSON(t, raw))
		assert.ErrorIs(t, err, ErrKeypairMismatch)
	})
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

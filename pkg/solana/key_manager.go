package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/gagliardetto/solana-go"
)

// ErrKeypairMismatch is returned when the public half of a keypair file does not
// belong to its secret seed.
var ErrKeypairMismatch = errors.New("keypair public key does not match secret key")

// KeyManager handles Solana keypair files in the solana-keygen JSON array format
type KeyManager struct {
	// No fields needed for now
}

// NewKeyManager creates a new KeyManager instance
func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// GenerateKeyPair generates a new Solana key pair
func (km *KeyManager) GenerateKeyPair() (*types.Account, error) {
	account := types.NewAccount()
	return &account, nil
}

// LoadKeypairFromFile reads a keypair file and returns the signing key it holds
func (km *KeyManager) LoadKeypairFromFile(path string) (solana.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair file: %w", err)
	}

	key, err := km.KeypairFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("invalid keypair file %s: %w", path, err)
	}
	return key, nil
}

// KeypairFromJSON decodes a JSON array of 64 bytes into a signing key
func (km *KeyManager) KeypairFromJSON(data []byte) (solana.PrivateKey, error) {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse keypair json: %w", err)
	}

	secret := make([]byte, len(raw))
	for i, v := range raw {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("keypair byte %d out of range: %d", i, v)
		}
		secret[i] = byte(v)
	}

	account, err := types.AccountFromBytes(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create account from private key: %w", err)
	}

	// AccountFromBytes trusts the trailing 32 bytes, so re-derive them from the seed
	derived := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize]).Public().(ed25519.PublicKey)
	if !bytes.Equal(derived, account.PublicKey.Bytes()) {
		return nil, ErrKeypairMismatch
	}

	return solana.PrivateKey(account.PrivateKey), nil
}

// SaveKeypairFile writes an account as a solana-keygen compatible JSON array
func (km *KeyManager) SaveKeypairFile(account *types.Account, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("keypair file %s already exists", path)
		}
	}

	raw := make([]int, len(account.PrivateKey))
	for i, b := range account.PrivateKey {
		raw[i] = int(b)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal keypair: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create keypair directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write keypair file: %w", err)
	}
	return nil
}

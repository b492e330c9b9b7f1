// Package tokeninfo reads and writes the token-info-<symbol>.json side-car
// written next to the project after a mint.
package tokeninfo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultDecimals is assumed when a side-car has no decimals field
const DefaultDecimals uint8 = 9

// ErrNotFound is returned when no side-car matches the requested mint
var ErrNotFound = errors.New("token info not found")

// Descriptor is the metadata recorded when a token is created
type Descriptor struct {
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol"`
	Decimals     *uint8    `json:"decimals,omitempty"`
	TotalSupply  uint64    `json:"totalSupply"`
	MintAddress  string    `json:"mintAddress"`
	TokenAccount string    `json:"tokenAccount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DecimalsOrDefault returns the recorded decimals, or 9 when missing
func (d *Descriptor) DecimalsOrDefault() uint8 {
	if d.Decimals == nil {
		return DefaultDecimals
	}
	return *d.Decimals
}

// FileName returns the side-car file name for symbol
func FileName(symbol string) string {
	return fmt.Sprintf("token-info-%s.json", strings.ToLower(symbol))
}

// Save writes d into dir and returns the written path
func Save(dir string, d *Descriptor) (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode token info: %w", err)
	}
	path := filepath.Join(dir, FileName(d.Symbol))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Load reads a single side-car file
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &d, nil
}

// FindForMint returns the first side-car in dir whose mintAddress equals mint.
// Files that cannot be read or parsed are skipped.
func FindForMint(dir, mint string) (*Descriptor, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "token-info-*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	for _, path := range matches {
		d, err := Load(path)
		if err != nil {
			continue
		}
		if d.MintAddress == mint {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

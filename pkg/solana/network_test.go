package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointForNetwork(t *testing.T) {
	cases := map[string]string{
		"":             rpc.TestNet_RPC,
		"testnet":      rpc.TestNet_RPC,
		"devnet":       rpc.DevNet_RPC,
		"Mainnet-Beta": rpc.MainNetBeta_RPC,
		"mainnet":      rpc.MainNetBeta_RPC,
		"localnet":     rpc.LocalNet_RPC,
	}
	for name, want := range cases {
		got, err := EndpointForNetwork(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := EndpointForNetwork("moonnet")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestNewRPCClientOverride(t *testing.T) {
	client, endpoint, err := NewRPCClient("devnet", "http://127.0.0.1:9999")
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "http://127.0.0.1:9999", endpoint)

	_, _, err = NewRPCClient("moonnet", "")
	assert.Error(t, err)
}

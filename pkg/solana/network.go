package solana

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

// DefaultNetwork is used when no network name is configured
const DefaultNetwork = "testnet"

// ErrUnknownNetwork is returned for cluster names that have no public endpoint
var ErrUnknownNetwork = errors.New("unknown solana network")

// EndpointForNetwork returns the public RPC endpoint for a cluster name
func EndpointForNetwork(network string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(network)) {
	case "", DefaultNetwork:
		return rpc.TestNet_RPC, nil
	case "devnet":
		return rpc.DevNet_RPC, nil
	case "mainnet", "mainnet-beta":
		return rpc.MainNetBeta_RPC, nil
	case "localnet", "localhost":
		return rpc.LocalNet_RPC, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
}

// NewRPCClient creates an RPC client for the named cluster.
// A non-empty override URL takes precedence over the cluster endpoint.
func NewRPCClient(network, override string) (*rpc.Client, string, error) {
	endpoint := strings.TrimSpace(override)
	if endpoint == "" {
		var err error
		endpoint, err = EndpointForNetwork(network)
		if err != nil {
			return nil, "", err
		}
	}
	return rpc.New(endpoint), endpoint, nil
}

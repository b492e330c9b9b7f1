package token

import (
	"errors"

	"github.com/sirupsen/logrus"

	"soltoken/internal/ledger"
	"soltoken/pkg/config"
	stsolana "soltoken/pkg/solana"
)

// ErrNoWallet is returned when WALLET_PRIVATE_KEY is not configured
var ErrNoWallet = errors.New("WALLET_PRIVATE_KEY is not set")

// NewLedger loads the wallet and picks the ledger implementation from the
// simulation setting.
func NewLedger(settings *config.Settings, logger logrus.FieldLogger) (ledger.Client, error) {
	if settings.WalletPath == "" {
		return nil, ErrNoWallet
	}
	wallet, err := stsolana.NewKeyManager().LoadKeypairFromFile(settings.WalletPath)
	if err != nil {
		return nil, err
	}

	if settings.SimulationMode {
		return ledger.NewSimulated(wallet.PublicKey()), nil
	}

	client, endpoint, err := stsolana.NewRPCClient(settings.Network, settings.RPCURL)
	if err != nil {
		return nil, err
	}
	logger.WithField("endpoint", endpoint).Debug("Using RPC endpoint")

	return ledger.NewRPC(client, wallet, ConfirmOptionsFor(settings, endpoint), logger), nil
}

// ConfirmOptionsFor applies CONFIRM_TIMEOUT and the pubsub endpoint of
// rpcEndpoint (or SOLANA_WS_URL) to the default confirmation options.
func ConfirmOptionsFor(settings *config.Settings, rpcEndpoint string) stsolana.ConfirmOptions {
	confirm := stsolana.DefaultConfirmOptions()
	if settings.ConfirmTimeout > 0 {
		confirm.Timeout = settings.ConfirmTimeout
	}
	confirm.WSEndpoint = settings.WSURL
	if confirm.WSEndpoint == "" {
		if ws, err := stsolana.WebsocketEndpoint(rpcEndpoint); err == nil {
			confirm.WSEndpoint = ws
		}
	}
	return confirm
}

// NewFromSettings builds a Service with the ledger chosen by NewLedger
func NewFromSettings(settings *config.Settings, logger logrus.FieldLogger, opts ...Option) (*Service, error) {
	client, err := NewLedger(settings, logger)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithNetwork(settings.Network)}, opts...)
	return NewService(client, logger, opts...), nil
}

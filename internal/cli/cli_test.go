package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soltoken/internal/ledger"
	"soltoken/internal/tokeninfo"
	stsolana "soltoken/pkg/solana"
)

// setupSimulation prepares a working dir with a wallet and an environment
// in simulation mode. It returns the dir and the wallet address.
func setupSimulation(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	km := stsolana.NewKeyManager()
	account, err := km.GenerateKeyPair()
	require.NoError(t, err)
	walletPath := filepath.Join(dir, "wallet.json")
	require.NoError(t, km.SaveKeypairFile(account, walletPath, false))

	for _, key := range []string{
		"SOLANA_NETWORK", "SOLANA_RPC_URL", "SOLANA_WS_URL", "TOKEN_MINT_ADDRESS", "TOKEN_NAME", "TOKEN_SYMBOL",
		"TOKEN_DECIMALS", "TOKEN_SUPPLY", "CONFIRM_TIMEOUT", "RABBITMQ_HOST", "DB_HOST", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SIMULATION_MODE", "true")
	t.Setenv("WALLET_PRIVATE_KEY", walletPath)

	return dir, account.PublicKey.ToBase58()
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--dir", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestMintWritesSideCarAndEnv(t *testing.T) {
	dir, _ := setupSimulation(t)
	t.Setenv("TOKEN_DECIMALS", "9")
	t.Setenv("TOKEN_SUPPLY", "1000")
	t.Setenv("TOKEN_SYMBOL", "TST")

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("SOLANA_NETWORK=testnet\n#TOKEN_MINT_ADDRESS=old\n"), 0644))

	out, err := run(t, dir, "mint")
	require.NoError(t, err)
	assert.Contains(t, out, "Token created successfully!")
	assert.Contains(t, out, ".env file updated with token mint address")
	assert.Contains(t, out, "Token Mint Address: "+ledger.SimulatedMintAddress)

	raw, err := os.ReadFile(filepath.Join(dir, "token-info-tst.json"))
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &info))
	assert.EqualValues(t, 1000, info["totalSupply"])
	assert.EqualValues(t, 9, info["decimals"])
	assert.Equal(t, ledger.SimulatedMintAddress, info["mintAddress"])
	assert.Equal(t, ledger.SimulatedTokenAccount, info["tokenAccount"])
	assert.Equal(t, "TST", info["symbol"])

	env, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, "SOLANA_NETWORK=testnet\nTOKEN_MINT_ADDRESS="+ledger.SimulatedMintAddress+"\n", string(env))
}

func TestMintFlagsOverrideAndNoEnvFile(t *testing.T) {
	dir, _ := setupSimulation(t)

	out, err := run(t, dir, "mint", "--symbol", "ABC", "--decimals", "0", "--supply", "42")
	require.NoError(t, err)
	assert.NotContains(t, out, ".env file updated")
	assert.Contains(t, out, "- Decimals: 9")

	d, err := tokeninfo.FindForMint(dir, ledger.SimulatedMintAddress)
	require.NoError(t, err)
	assert.Equal(t, "ABC", d.Symbol)
	assert.Equal(t, uint64(42), d.TotalSupply)

	_, err = os.Stat(filepath.Join(dir, ".env"))
	assert.True(t, os.IsNotExist(err))
}

func TestBalanceRescalesWithMatchingSideCar(t *testing.T) {
	dir, _ := setupSimulation(t)
	decimals := uint8(9)
	_, err := tokeninfo.Save(dir, &tokeninfo.Descriptor{Symbol: "DFLT", Decimals: &decimals, MintAddress: ledger.SimulatedMintAddress})
	require.NoError(t, err)

	out, err := run(t, dir, "balance", "--mint", ledger.SimulatedMintAddress)
	require.NoError(t, err)
	assert.Contains(t, out, "Wallet: Owner wallet (from .env file)")
	assert.Contains(t, out, "Token Balance: 1000000000")
	assert.Contains(t, out, "Actual Balance: 1 DFLT")
}

func TestBalanceRawWithoutMatchingSideCar(t *testing.T) {
	dir, _ := setupSimulation(t)
	_, err := tokeninfo.Save(dir, &tokeninfo.Descriptor{Symbol: "OTHER", MintAddress: "someothermint"})
	require.NoError(t, err)
	other := solanaAddress(t)

	out, err := run(t, dir, "balance", "--mint", ledger.SimulatedMintAddress, "--wallet", other)
	require.NoError(t, err)
	assert.Contains(t, out, "Wallet: "+other)
	assert.Contains(t, out, "Token Balance: 100000000")
	assert.NotContains(t, out, "Actual Balance")
}

func TestBalanceUsesMintFromEnvironment(t *testing.T) {
	dir, _ := setupSimulation(t)
	t.Setenv("TOKEN_MINT_ADDRESS", ledger.SimulatedMintAddress)

	out, err := run(t, dir, "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "Token: "+ledger.SimulatedMintAddress)
}

func TestBalanceWithoutMintPrintsUsage(t *testing.T) {
	dir, _ := setupSimulation(t)

	out, err := run(t, dir, "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: Token mint address not provided")
	assert.Contains(t, out, "Usage: "+balanceUsage)
}

func TestTransfer(t *testing.T) {
	dir, _ := setupSimulation(t)
	to := solanaAddress(t)

	out, err := run(t, dir, "transfer", "--mint", ledger.SimulatedMintAddress, "--to", to, "--amount", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "Current balance: 1000000000")
	assert.Contains(t, out, "Transaction signature: "+ledger.SimulatedTransferSignature)
	assert.Contains(t, out, "New balance: 1000000000")
}

func TestTransferAbortsOnInsufficientBalance(t *testing.T) {
	dir, _ := setupSimulation(t)

	out, err := run(t, dir, "transfer", "--mint", ledger.SimulatedMintAddress, "--to", solanaAddress(t), "--amount", "1000000001")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: Insufficient token balance. Available: 1000000000, Required: 1000000001")
	assert.NotContains(t, out, "Transfer complete!")
}

func TestTransferInputValidation(t *testing.T) {
	dir, _ := setupSimulation(t)
	mint := ledger.SimulatedMintAddress

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--to", "x", "--amount", "1"}, "Token mint address not provided."},
		{[]string{"--mint", mint, "--amount", "1"}, "Recipient address not provided."},
		{[]string{"--mint", mint, "--to", "x"}, "Amount not provided."},
		{[]string{"--mint", mint, "--to", "x", "--amount", "abc"}, "Invalid amount. Must be a positive number."},
		{[]string{"--mint", mint, "--to", "x", "--amount", "0"}, "Invalid amount. Must be a positive number."},
		{[]string{"--mint", mint, "--to", "x", "--amount", "-5"}, "Invalid amount. Must be a positive number."},
	}
	for _, tt := range tests {
		out, err := run(t, dir, append([]string{"transfer"}, tt.args...)...)
		require.NoError(t, err)
		assert.Contains(t, out, tt.want)
		assert.NotContains(t, out, "Transfer complete!")
	}
}

func TestTransferInvalidRecipientFails(t *testing.T) {
	dir, _ := setupSimulation(t)

	_, err := run(t, dir, "transfer", "--mint", ledger.SimulatedMintAddress, "--to", "not-an-address", "--amount", "1")
	assert.ErrorIs(t, err, ledger.ErrInvalidAddress)
}

func TestDisableMintingNeedsConfirmation(t *testing.T) {
	dir, _ := setupSimulation(t)

	out, err := run(t, dir, "disable-minting", "--mint", ledger.SimulatedMintAddress)
	require.NoError(t, err)
	assert.Contains(t, out, "WARNING: This operation is irreversible!")
	assert.NotContains(t, out, "Transaction signature")

	out, err = run(t, dir, "disable-minting", "--mint", ledger.SimulatedMintAddress, "--confirm", "no")
	require.NoError(t, err)
	assert.NotContains(t, out, "Minting disabled successfully!")

	out, err = run(t, dir, "disable-minting", "--mint", ledger.SimulatedMintAddress, "--confirm", "yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Minting disabled successfully!")
	assert.Contains(t, out, "Transaction signature: "+ledger.SimulatedDisableSignature)
}

func TestStatusSimulation(t *testing.T) {
	dir, wallet := setupSimulation(t)
	t.Setenv("TOKEN_MINT_ADDRESS", ledger.SimulatedMintAddress)

	out, err := run(t, dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Network: testnet")
	assert.Contains(t, out, "Simulation Mode: ENABLED")
	assert.Contains(t, out, "Wallet Address: "+wallet)
	assert.Contains(t, out, "Current Token: "+ledger.SimulatedMintAddress)
	assert.Contains(t, out, "NOTE: Running in simulation mode.")
}

func TestMissingWalletFails(t *testing.T) {
	dir, _ := setupSimulation(t)
	t.Setenv("WALLET_PRIVATE_KEY", "")

	_, err := run(t, dir, "status")
	assert.Error(t, err)

	_, err = run(t, dir, "balance", "--mint", ledger.SimulatedMintAddress)
	assert.Error(t, err)
}

func TestAirdropRefusesInSimulation(t *testing.T) {
	dir, _ := setupSimulation(t)

	out, err := run(t, dir, "airdrop", "--amount", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "SIMULATION_MODE is enabled")

	out, err = run(t, dir, "airdrop", "--amount", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: Invalid amount")
}

func TestKeygen(t *testing.T) {
	dir, _ := setupSimulation(t)

	out, err := run(t, dir, "keygen", "--out", "new.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Public key: ")

	key, err := stsolana.NewKeyManager().LoadKeypairFromFile(filepath.Join(dir, "new.json"))
	require.NoError(t, err)
	assert.Contains(t, out, key.PublicKey().String())

	_, err = run(t, dir, "keygen", "--out", "new.json")
	assert.Error(t, err)

	_, err = run(t, dir, "keygen", "--out", "new.json", "--force")
	assert.NoError(t, err)
}

func TestMigrateNeedsDatabase(t *testing.T) {
	dir, _ := setupSimulation(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "migrations"), 0755))

	_, err := run(t, dir, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")

	_, err = run(t, dir, "migrate", "sideways")
	assert.Error(t, err)
}

func TestMigratePathIsRelativeToDir(t *testing.T) {
	dir, _ := setupSimulation(t)

	_, err := run(t, dir, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(dir, "migrations"))

	app := &App{workDir: dir}
	assert.Equal(t, filepath.Join(dir, "db"), app.inWorkDir("db"))
	assert.Equal(t, "/abs/db", app.inWorkDir("/abs/db"))
}

func solanaAddress(t *testing.T) string {
	t.Helper()
	account, err := stsolana.NewKeyManager().GenerateKeyPair()
	require.NoError(t, err)
	return account.PublicKey.ToBase58()
}

package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soltoken/internal/handlers"
	"soltoken/internal/ledger"
	"soltoken/internal/models"
	"soltoken/internal/store"
	"soltoken/internal/token"
	stsolana "soltoken/pkg/solana"
	"soltoken/pkg/solana/solanatest"
)

type memRegistry struct {
	tokens []models.TokenConfig
	ops    []models.TokenOperation
	limit  int
	mint   string
}

func (m *memRegistry) ListTokenConfigs(ctx context.Context) ([]models.TokenConfig, error) {
	return m.tokens, nil
}

func (m *memRegistry) GetTokenConfigByMint(ctx context.Context, mint string) (*models.TokenConfig, error) {
	for i := range m.tokens {
		if m.tokens[i].Mint == mint {
			return &m.tokens[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memRegistry) ListOperations(ctx context.Context, mint string, limit int) ([]models.TokenOperation, error) {
	m.mint, m.limit = mint, limit
	return m.ops, nil
}

type stubBalances struct {
	balance uint64
	err     error
}

func (s *stubBalances) Balance(ctx context.Context, mint, wallet string) (uint64, error) {
	return s.balance, s.err
}

func newTestRouter(reg *memRegistry, bal *stubBalances) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(handlers.NewHandler(reg, bal), nil)
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := get(newTestRouter(&memRegistry{}, &stubBalances{}), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestTokenConfigRoutes(t *testing.T) {
	reg := &memRegistry{tokens: []models.TokenConfig{{Mint: ledger.SimulatedMintAddress, Symbol: "DFLT", Decimals: 9}}}
	r := newTestRouter(reg, &stubBalances{})

	w := get(r, "/token-config")
	require.Equal(t, http.StatusOK, w.Code)
	var tokens []models.TokenConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	assert.Len(t, tokens, 1)

	w = get(r, "/token-config/by-mint/"+ledger.SimulatedMintAddress)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/token-config/by-mint/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTokenOperationsLimit(t *testing.T) {
	reg := &memRegistry{}
	r := newTestRouter(reg, &stubBalances{})

	w := get(r, "/token-operations?mint=abc&limit=5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", reg.mint)
	assert.Equal(t, 5, reg.limit)

	get(r, "/token-operations?limit=junk")
	assert.Equal(t, 50, reg.limit)
}

func TestBalanceRoute(t *testing.T) {
	reg := &memRegistry{tokens: []models.TokenConfig{{Mint: ledger.SimulatedMintAddress, Symbol: "DFLT", Decimals: 9}}}
	r := newTestRouter(reg, &stubBalances{balance: 1_500_000_000})

	w := get(r, "/balance/"+ledger.SimulatedMintAddress)
	require.Equal(t, http.StatusOK, w.Code)
	var resp handlers.BalanceResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1_500_000_000), resp.Balance)
	assert.Equal(t, "1.5", resp.BalanceReadable)
	assert.Equal(t, "DFLT", resp.Symbol)

	w = get(r, "/balance/unregistered")
	require.Equal(t, http.StatusOK, w.Code)
	resp = handlers.BalanceResp{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.BalanceReadable)
	assert.Nil(t, resp.Decimals)
}

func TestBalanceRouteErrors(t *testing.T) {
	r := newTestRouter(&memRegistry{}, &stubBalances{err: errors.New("rpc unavailable")})
	assert.Equal(t, http.StatusBadGateway, get(r, "/balance/x").Code)

	r = newTestRouter(&memRegistry{}, &stubBalances{err: fmt.Errorf("%w: bad", ledger.ErrInvalidAddress)})
	assert.Equal(t, http.StatusBadRequest, get(r, "/balance/x").Code)
}

func TestBalanceRouteSendsNoTransaction(t *testing.T) {
	node := solanatest.NewNode(t)
	logger, _ := test.NewNullLogger()
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	confirm := stsolana.ConfirmOptions{Commitment: rpc.CommitmentConfirmed, Timeout: time.Second, PollInterval: 10 * time.Millisecond}
	svc := token.NewService(ledger.NewRPC(rpc.New(node.URL), payer, confirm, logger), logger)

	gin.SetMode(gin.TestMode)
	r := SetupRouter(handlers.NewHandler(&memRegistry{}, svc), nil)

	mint := solana.NewWallet().PublicKey()
	stranger := solana.NewWallet().PublicKey()
	w := get(r, fmt.Sprintf("/balance/%s?wallet=%s", mint, stranger))
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.BalanceResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Balance)

	calls := node.Calls()
	assert.Zero(t, calls["sendTransaction"])
	assert.Zero(t, calls["getLatestBlockhash"])
	assert.Equal(t, 1, calls["getAccountInfo"])
}

func TestCORSAllowedOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://example.com")
	r := newTestRouter(&memRegistry{}, &stubBalances{})

	req := httptest.NewRequest(http.MethodOptions, "/token-config", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

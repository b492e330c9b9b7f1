// Package solanatest provides an in-process JSON-RPC node for tests.
//
// The node answers the handful of methods the token operations use, decodes
// every sent transaction, and records each call so tests can assert what
// reached the cluster.
package solanatest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
)

// RentExemptMint is returned by getMinimumBalanceForRentExemption
const RentExemptMint uint64 = 1461600

// Blockhash is returned by getLatestBlockhash
var Blockhash = solana.Hash{1, 2, 3, 4, 5, 6, 7, 8}

// Handler answers one method. A non-nil error becomes a JSON-RPC error.
type Handler func(params []json.RawMessage) (interface{}, error)

// Error is a JSON-RPC error returned by a Handler
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return fmt.Sprintf("%d %s", e.Code, e.Message) }

// Instruction is a compiled instruction of a sent transaction with its
// accounts resolved
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []solana.PublicKey
	Data      []byte
}

// Node is a fake cluster
type Node struct {
	URL string

	mu       sync.Mutex
	calls    map[string]int
	handlers map[string]Handler
	accounts map[string]bool
	balances map[string]uint64
	sent     []*solana.Transaction
	status   string
}

// NewNode starts a node that is closed with the test
func NewNode(t *testing.T) *Node {
	t.Helper()
	n := &Node{
		calls:    map[string]int{},
		handlers: map[string]Handler{},
		accounts: map[string]bool{},
		balances: map[string]uint64{},
		status:   "finalized",
	}
	srv := httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(srv.Close)
	n.URL = srv.URL
	return n
}

// Handle overrides the answer for method
func (n *Node) Handle(method string, h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = h
}

// SetAccount makes getAccountInfo find address
func (n *Node) SetAccount(address solana.PublicKey) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts[address.String()] = true
}

// SetTokenBalance registers a token account holding amount
func (n *Node) SetTokenBalance(account solana.PublicKey, amount uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts[account.String()] = true
	n.balances[account.String()] = amount
}

// SetConfirmationStatus changes what getSignatureStatuses reports for every
// signature. An empty status reports the signature as unknown.
func (n *Node) SetConfirmationStatus(status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.status = status
}

// Calls returns how many times each method was called
func (n *Node) Calls() map[string]int {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]int, len(n.calls))
	for k, v := range n.calls {
		out[k] = v
	}
	return out
}

// Sent returns the transactions received by sendTransaction, in order
func (n *Node) Sent() []*solana.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*solana.Transaction(nil), n.sent...)
}

// Instructions flattens the instructions of every sent transaction
func (n *Node) Instructions() []Instruction {
	var out []Instruction
	for _, tx := range n.Sent() {
		keys := tx.Message.AccountKeys
		for _, ci := range tx.Message.Instructions {
			ix := Instruction{ProgramID: keys[ci.ProgramIDIndex], Data: []byte(ci.Data)}
			for _, idx := range ci.Accounts {
				ix.Accounts = append(ix.Accounts, keys[idx])
			}
			out = append(out, ix)
		}
	}
	return out
}

type request struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func (n *Node) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.ID) == 0 {
		req.ID = json.RawMessage("1")
	}

	n.mu.Lock()
	n.calls[req.Method]++
	h, ok := n.handlers[req.Method]
	n.mu.Unlock()
	if !ok {
		h = n.builtin(req.Method)
	}

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	result, err := h(req.Params)
	if err != nil {
		rpcErr, ok := err.(*Error)
		if !ok {
			rpcErr = &Error{Code: -32000, Message: err.Error()}
		}
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func rpcContext() map[string]interface{} {
	return map[string]interface{}{"slot": 1}
}

func firstString(params []json.RawMessage) string {
	if len(params) == 0 {
		return ""
	}
	var s string
	json.Unmarshal(params[0], &s)
	return s
}

func (n *Node) builtin(method string) Handler {
	switch method {
	case "getLatestBlockhash":
		return func([]json.RawMessage) (interface{}, error) {
			return map[string]interface{}{
				"context": rpcContext(),
				"value": map[string]interface{}{
					"blockhash":            Blockhash.String(),
					"lastValidBlockHeight": 100,
				},
			}, nil
		}
	case "getMinimumBalanceForRentExemption":
		return func([]json.RawMessage) (interface{}, error) {
			return RentExemptMint, nil
		}
	case "sendTransaction":
		return n.sendTransaction
	case "getSignatureStatuses":
		return n.signatureStatuses
	case "getAccountInfo":
		return n.accountInfo
	case "getTokenAccountBalance":
		return n.tokenAccountBalance
	}
	return func([]json.RawMessage) (interface{}, error) {
		return nil, &Error{Code: -32601, Message: "Method not found"}
	}
}

func (n *Node) sendTransaction(params []json.RawMessage) (interface{}, error) {
	tx, err := solana.TransactionFromBase64(firstString(params))
	if err != nil {
		return nil, &Error{Code: -32602, Message: "invalid transaction: " + err.Error()}
	}
	if len(tx.Signatures) == 0 {
		return nil, &Error{Code: -32602, Message: "unsigned transaction"}
	}
	n.mu.Lock()
	n.sent = append(n.sent, tx)
	n.mu.Unlock()
	return tx.Signatures[0].String(), nil
}

func (n *Node) signatureStatuses(params []json.RawMessage) (interface{}, error) {
	var sigs []string
	if len(params) > 0 {
		json.Unmarshal(params[0], &sigs)
	}
	n.mu.Lock()
	status := n.status
	n.mu.Unlock()

	value := make([]interface{}, len(sigs))
	if status != "" {
		for i := range sigs {
			value[i] = map[string]interface{}{
				"slot":               1,
				"confirmations":      nil,
				"err":                nil,
				"confirmationStatus": status,
			}
		}
	}
	return map[string]interface{}{"context": rpcContext(), "value": value}, nil
}

func (n *Node) accountInfo(params []json.RawMessage) (interface{}, error) {
	address := firstString(params)
	n.mu.Lock()
	exists := n.accounts[address]
	n.mu.Unlock()

	if !exists {
		return map[string]interface{}{"context": rpcContext(), "value": nil}, nil
	}
	return map[string]interface{}{
		"context": rpcContext(),
		"value": map[string]interface{}{
			"data":       []string{"", "base64"},
			"executable": false,
			"lamports":   2039280,
			"owner":      solana.TokenProgramID.String(),
			"rentEpoch":  0,
		},
	}, nil
}

func (n *Node) tokenAccountBalance(params []json.RawMessage) (interface{}, error) {
	address := firstString(params)
	n.mu.Lock()
	amount, ok := n.balances[address]
	n.mu.Unlock()

	if !ok {
		return nil, &Error{Code: -32602, Message: "Invalid param: could not find account"}
	}
	return map[string]interface{}{
		"context": rpcContext(),
		"value": map[string]interface{}{
			"amount":         strconv.FormatUint(amount, 10),
			"decimals":       0,
			"uiAmountString": strconv.FormatUint(amount, 10),
		},
	}, nil
}

package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// WebsocketEndpoint derives the pubsub URL of an RPC endpoint: https becomes
// wss, http becomes ws, and the local validator port 8899 becomes 8900.
func WebsocketEndpoint(rpcURL string) (string, error) {
	u, err := url.Parse(rpcURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported RPC scheme %q", u.Scheme)
	}
	if u.Port() == "8899" {
		u.Host = strings.TrimSuffix(u.Host, "8899") + "8900"
	}
	return u.String(), nil
}

const subscribeID = 1

type wsRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type wsMessage struct {
	ID     *int            `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *wsRPCError     `json:"error"`
	Method string          `json:"method"`
	Params *struct {
		Result struct {
			Value struct {
				Err interface{} `json:"err"`
			} `json:"value"`
		} `json:"result"`
	} `json:"params"`
}

// WatchSignature subscribes to sig over the pubsub endpoint and returns once
// the node notifies it at commitment. A failed transaction yields a
// *TransactionError.
//
// onSubscribed, when set, runs once after the node acknowledges the
// subscription. Returning true ends the watch successfully; an error ends it
// with that error.
func WatchSignature(ctx context.Context, wsURL string, sig solana.Signature, commitment rpc.CommitmentType, onSubscribed func(context.Context) (bool, error)) error {
	c, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer c.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()

	subscribeMsg := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      subscribeID,
		"method":  "signatureSubscribe",
		"params": []interface{}{
			sig.String(),
			map[string]interface{}{
				"commitment": commitment,
			},
		},
	}
	if err := c.WriteJSON(subscribeMsg); err != nil {
		return fmt.Errorf("failed to send subscription message: %w", err)
	}

	subscribed := false
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("error reading message: %w", err)
		}

		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.WithError(err).Debug("Skipping undecodable websocket message")
			continue
		}
		if msg.Error != nil {
			return fmt.Errorf("signatureSubscribe failed: %d %s", msg.Error.Code, msg.Error.Message)
		}
		if msg.ID != nil && *msg.ID == subscribeID && !subscribed {
			subscribed = true
			if onSubscribed != nil {
				reached, err := onSubscribed(ctx)
				if err != nil || reached {
					return err
				}
			}
			continue
		}
		if msg.Method != "signatureNotification" || msg.Params == nil {
			continue
		}
		if txErr := msg.Params.Result.Value.Err; txErr != nil {
			return &TransactionError{Signature: sig, Err: txErr}
		}
		return nil
	}
}

// Package events describes the token operations published for the registry worker.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// QueueName is the RabbitMQ queue carrying token operation events
const QueueName = "token_operations"

// Operation names a kind of token operation
type Operation string

const (
	OperationMint           Operation = "mint"
	OperationTransfer       Operation = "transfer"
	OperationDisableMinting Operation = "disable_minting"
)

// Event is one completed token operation
type Event struct {
	Operation    Operation `json:"operation"`
	Network      string    `json:"network"`
	Simulated    bool      `json:"simulated"`
	Mint         string    `json:"mint"`
	TokenAccount string    `json:"token_account,omitempty"`
	From         string    `json:"from,omitempty"`
	To           string    `json:"to,omitempty"`
	Amount       uint64    `json:"amount"`
	Decimals     uint8     `json:"decimals"`
	Symbol       string    `json:"symbol,omitempty"`
	Name         string    `json:"name,omitempty"`
	Signature    string    `json:"signature,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Decode parses and checks an event received from the queue
func Decode(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	switch ev.Operation {
	case OperationMint, OperationTransfer, OperationDisableMinting:
	default:
		return Event{}, fmt.Errorf("unknown operation %q", ev.Operation)
	}
	if ev.Mint == "" {
		return Event{}, errors.New("event has no mint")
	}
	// registry columns are BIGINT
	if ev.Amount > math.MaxInt64 {
		return Event{}, fmt.Errorf("amount %d exceeds the registry range", ev.Amount)
	}
	return ev, nil
}

// Recorder receives events after an operation succeeds
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Nop discards every event
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }

// Publisher is the subset of the RabbitMQ publisher used here
type Publisher interface {
	Publish(queueName string, message interface{}) error
}

// QueueRecorder publishes events to QueueName
type QueueRecorder struct {
	publisher Publisher
}

// NewQueueRecorder wraps a publisher
func NewQueueRecorder(p Publisher) *QueueRecorder {
	return &QueueRecorder{publisher: p}
}

func (q *QueueRecorder) Record(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return q.publisher.Publish(QueueName, ev)
}

package mirror

import (
	"context"
	"encoding/json"
)

// Gateway is the contract of the remote store the ledger mirrors into. Every
// method is best effort: failures are reported through the return value, never
// through an error, and never reach the engine's callers.
type Gateway interface {
	// Fetch returns the stored payloads for a table; empty on any failure.
	Fetch(ctx context.Context, table string) []json.RawMessage

	// Create mirrors a local append. Failure is logged by the caller only.
	Create(ctx context.Context, table, id string, payload json.RawMessage) bool

	// Update mirrors a local mutation.
	Update(ctx context.Context, table, id string, payload json.RawMessage) bool

	// Delete mirrors a local removal.
	Delete(ctx context.Context, table, id string) bool
}

// NoopGateway satisfies the contract without a remote store; the engine works
// identically with the mirror absent.
type NoopGateway struct{}

func (NoopGateway) Fetch(context.Context, string) []json.RawMessage { return nil }

func (NoopGateway) Create(context.Context, string, string, json.RawMessage) bool { return true }

func (NoopGateway) Update(context.Context, string, string, json.RawMessage) bool { return true }

func (NoopGateway) Delete(context.Context, string, string) bool { return true }

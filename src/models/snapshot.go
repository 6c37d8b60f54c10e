package models

import "time"

// Snapshot is the single JSON document exchanged with the persistence layer:
// the full in-memory state keyed by entity-collection name. The engine only
// produces and accepts it; loading and rewriting the file is someone else's job.
type Snapshot struct {
	Items        []InventoryItem     `json:"items"`
	Movements    []StockMovement     `json:"movements"`
	Formulas     []ProductionFormula `json:"formulas"`
	Orders       []ProductionOrder   `json:"orders"`
	Units        []ProductionUnit    `json:"units"`
	Transactions []Transaction       `json:"transactions"`
	Accounts     []Account           `json:"accounts"`

	GeneratedAt time.Time `json:"generated_at"`
}

package services

import (
	"encoding/json"
	"os"
	"time"

	"production-ledger/src/models"
	"production-ledger/src/repositories"
)

// ============ SNAPSHOT SERVICE ============
// SnapshotService exposes the full in-memory state as one serializable
// document and accepts one on load. Persisting the file on every mutation is
// the job of the excluded persistence layer; the engine only offers the
// snapshot and the restore.
type SnapshotService struct {
	Inventory  *repositories.InventoryRepository
	Production *repositories.ProductionRepository
	Finance    *repositories.FinanceRepository
}

func (s *SnapshotService) Snapshot() models.Snapshot {
	items, movements := s.Inventory.SnapshotState()
	formulas, orders, units := s.Production.SnapshotState()
	transactions, accounts := s.Finance.SnapshotState()

	return models.Snapshot{
		Items:        items,
		Movements:    movements,
		Formulas:     formulas,
		Orders:       orders,
		Units:        units,
		Transactions: transactions,
		Accounts:     accounts,
		GeneratedAt:  time.Now(),
	}
}

func (s *SnapshotService) Restore(snap models.Snapshot) {
	s.Inventory.RestoreState(snap.Items, snap.Movements)
	s.Production.RestoreState(snap.Formulas, snap.Orders, snap.Units)
	s.Finance.RestoreState(snap.Transactions, snap.Accounts)
}

// SaveFile writes the snapshot document to disk.
func (s *SnapshotService) SaveFile(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFile restores state from a snapshot file. A missing file is not an
// error: the engine simply starts empty.
func (s *SnapshotService) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.Restore(snap)
	return nil
}

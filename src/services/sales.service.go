package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"production-ledger/src/models"
)

// WeighedSaleRequest is a weight-priced sale line: scale readings in, stock
// deduction and a pending revenue posting out.
type WeighedSaleRequest struct {
	ItemID      string
	GrossWeight decimal.Decimal
	TareWeight  decimal.Decimal
	AccountID   string
	UserID      string
}

type WeighedSale struct {
	DocumentID    string          `json:"document_id"`
	TransactionID string          `json:"transaction_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Total         decimal.Decimal `json:"total"`
	Derivation    string          `json:"derivation"`
}

// ============ SALES SERVICE ============
// SalesService is the dispatch glue between the weighing converter and the two
// ledgers: convert the reading, deduct stock, post the revenue. Monetary
// totals are recomputed from the converted quantity, never entered by hand.
type SalesService struct {
	Stock   *StockService
	Finance *FinanceService
}

func (s *SalesService) RecordWeighedSale(req WeighedSaleRequest) (WeighedSale, error) {
	item, err := s.Stock.GetItem(req.ItemID)
	if err != nil {
		return WeighedSale{}, err
	}

	result, err := ConvertWeighing(req.GrossWeight, req.TareWeight, item)
	if err != nil {
		return WeighedSale{}, err
	}

	documentID := uuid.NewString()
	reason := fmt.Sprintf("Venda pesada %s", result.Derivation)
	if _, err := s.Stock.Adjust(item.ID, result.Quantity.Neg(), reason, documentID, req.UserID); err != nil {
		return WeighedSale{}, err
	}

	total := result.Quantity.Mul(item.Price).Round(2)
	transaction := models.Transaction{
		ID:          uuid.NewString(),
		Date:        time.Now(),
		Description: fmt.Sprintf("Venda %s %s %s", result.Quantity, item.Unit, item.Name),
		Category:    "Vendas",
		AccountID:   req.AccountID,
		Amount:      total,
		Type:        models.TransactionReceita,
		Status:      models.StatusPendente,
		LedgerCode:  "3.1.1",
		DocumentID:  documentID,
	}
	if err := s.Finance.Post(transaction); err != nil {
		return WeighedSale{}, err
	}

	return WeighedSale{
		DocumentID:    documentID,
		TransactionID: transaction.ID,
		Quantity:      result.Quantity,
		Unit:          result.Unit,
		Total:         total,
		Derivation:    result.Derivation,
	}, nil
}

package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"production-ledger/src/mirror"
	"production-ledger/src/models"
	"production-ledger/src/repositories"
)

// NegativeBalancePolicy decides what happens when a reconciled expense would
// drive an account negative. It is a business policy hook, not a ledger
// invariant; the default demands an explicit authorization step.
type NegativeBalancePolicy func(accountID string, shortfall decimal.Decimal) error

func DefaultNegativeBalancePolicy(accountID string, shortfall decimal.Decimal) error {
	return &models.AuthorizationRequiredError{AccountID: accountID, Shortfall: shortfall}
}

// ============ FINANCE SERVICE ============
// FinanceService owns the transaction log and derives every balance from it.
// No balance is ever stored: recomputation on each read is the price paid for
// making balance drift impossible.
type FinanceService struct {
	Repo *repositories.FinanceRepository
	Log  *logrus.Logger

	// Policy guards reconciled expense postings; nil disables the guard.
	Policy NegativeBalancePolicy

	Mirror *mirror.Queue
}

// ============ ACCOUNTS ============

func (s *FinanceService) CreateAccount(name string, initialBalance decimal.Decimal) models.Account {
	a := models.Account{
		ID:             uuid.NewString(),
		Name:           name,
		InitialBalance: initialBalance,
		CreatedAt:      time.Now(),
	}
	s.Repo.SaveAccount(a)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableAccounts, ID: a.ID, Payload: a})
	return a
}

func (s *FinanceService) GetAccount(id string) (models.Account, error) {
	return s.Repo.GetAccount(id)
}

func (s *FinanceService) ListAccounts() []models.Account {
	return s.Repo.ListAccounts()
}

// ============ POSTING ============

// Post appends a transaction. Replaying an id fails with
// ErrDuplicateTransaction regardless of the calling path, so the guard against
// retried network calls and duplicate submissions is uniform.
func (s *FinanceService) Post(t models.Transaction) error {
	return s.post(t, false)
}

// PostAuthorized posts with the negative-balance policy overridden. It is the
// privileged approval step the policy asks for.
func (s *FinanceService) PostAuthorized(t models.Transaction) error {
	return s.post(t, true)
}

func (s *FinanceService) post(t models.Transaction, authorized bool) error {
	// Amount is always the positive magnitude; the sign lives in Type. A
	// negative amount would invert Signed() and slip under the balance guard.
	if !t.Amount.IsPositive() {
		return models.ErrInvalidAmount
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	if t.Status == "" {
		t.Status = models.StatusPendente
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	unlock := s.Repo.LockAccount(t.AccountID)
	defer unlock()

	if _, err := s.Repo.GetAccount(t.AccountID); err != nil {
		return err
	}

	if !authorized && s.Policy != nil &&
		t.Type == models.TransactionDespesa && t.Status == models.StatusConciliado {
		balance, err := s.AccountBalance(t.AccountID)
		if err != nil {
			return err
		}
		if result := balance.Sub(t.Amount); result.IsNegative() {
			s.Log.WithFields(logrus.Fields{
				"module":     "finance",
				"account_id": t.AccountID,
				"shortfall":  result.Neg().String(),
			}).Warn("reconciled expense blocked by negative balance policy")
			return s.Policy(t.AccountID, result.Neg())
		}
	}

	if err := s.Repo.InsertTransaction(t); err != nil {
		return err
	}
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableTransactions, ID: t.ID, Payload: t})
	return nil
}

// ============ STATUS TRANSITIONS ============

// Reconcile marks a transaction as settled cash and stamps its effective date.
func (s *FinanceService) Reconcile(id string, date time.Time) (models.Transaction, error) {
	t, err := s.Repo.GetTransaction(id)
	if err != nil {
		return models.Transaction{}, err
	}
	t.Status = models.StatusConciliado
	t.Date = date
	t.UpdatedAt = time.Now()
	if err := s.Repo.UpdateTransaction(t); err != nil {
		return models.Transaction{}, err
	}
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableTransactions, ID: t.ID, Payload: t})
	return t, nil
}

// Unreconcile flips a reconciled transaction back to Pendente. No side effects
// beyond the status change.
func (s *FinanceService) Unreconcile(id string) (models.Transaction, error) {
	return s.UpdateStatus(id, models.StatusPendente)
}

func (s *FinanceService) UpdateStatus(id string, status models.TransactionStatus) (models.Transaction, error) {
	t, err := s.Repo.GetTransaction(id)
	if err != nil {
		return models.Transaction{}, err
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	if err := s.Repo.UpdateTransaction(t); err != nil {
		return models.Transaction{}, err
	}
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableTransactions, ID: t.ID, Payload: t})
	return t, nil
}

// Update applies a full edit to an existing transaction, keeping its id.
func (s *FinanceService) Update(t models.Transaction) error {
	if !t.Amount.IsPositive() {
		return models.ErrInvalidAmount
	}
	existing, err := s.Repo.GetTransaction(t.ID)
	if err != nil {
		return err
	}
	t.CreatedAt = existing.CreatedAt
	if t.Date.IsZero() {
		t.Date = existing.Date
	}
	t.UpdatedAt = time.Now()
	if err := s.Repo.UpdateTransaction(t); err != nil {
		return err
	}
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableTransactions, ID: t.ID, Payload: t})
	return nil
}

func (s *FinanceService) GetTransaction(id string) (models.Transaction, error) {
	return s.Repo.GetTransaction(id)
}

func (s *FinanceService) ListTransactions() []models.Transaction {
	return s.Repo.ListTransactions()
}

// ============ DERIVED BALANCES ============

// AccountBalance recomputes the realized balance on every read:
// initial + Σ reconciled revenue − Σ reconciled expense for the account.
func (s *FinanceService) AccountBalance(accountID string) (decimal.Decimal, error) {
	account, err := s.Repo.GetAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := account.InitialBalance
	for _, t := range s.Repo.ListTransactions() {
		if t.AccountID != accountID || t.Status != models.StatusConciliado {
			continue
		}
		balance = balance.Add(t.Signed())
	}
	return balance, nil
}

// ProjectedBalance aggregates every non-cancelled transaction across all
// accounts on top of their initial balances. This is the forecasting view.
func (s *FinanceService) ProjectedBalance() decimal.Decimal {
	balance := decimal.Zero
	for _, a := range s.Repo.ListAccounts() {
		balance = balance.Add(a.InitialBalance)
	}
	for _, t := range s.Repo.ListTransactions() {
		if t.Status == models.StatusCancelado {
			continue
		}
		balance = balance.Add(t.Signed())
	}
	return balance
}

// Receivables is projected revenue minus realized revenue: the pending inflow.
func (s *FinanceService) Receivables() decimal.Decimal {
	return s.pendingTotal(models.TransactionReceita)
}

// Payables is the pending outflow, analogous to Receivables.
func (s *FinanceService) Payables() decimal.Decimal {
	return s.pendingTotal(models.TransactionDespesa)
}

func (s *FinanceService) pendingTotal(tt models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.Repo.ListTransactions() {
		if t.Type == tt && t.Status == models.StatusPendente {
			total = total.Add(t.Amount)
		}
	}
	return total
}

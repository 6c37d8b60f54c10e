package repositories

import (
	"sort"
	"sync"

	"production-ledger/src/models"
)

// FinanceRepository owns accounts and the transaction log. Transactions are
// indexed by id (the idempotency key) and kept in posting order.
type FinanceRepository struct {
	mu           sync.RWMutex
	accounts     map[string]models.Account
	transactions map[string]models.Transaction
	order        []string // transaction ids in posting order

	accountLocks *keyMutex
}

func NewFinanceRepository() *FinanceRepository {
	return &FinanceRepository{
		accounts:     make(map[string]models.Account),
		transactions: make(map[string]models.Transaction),
		accountLocks: newKeyMutex(),
	}
}

// LockAccount serializes postings against a single account so the balance
// guard and the append are one logical operation.
func (r *FinanceRepository) LockAccount(accountID string) func() {
	return r.accountLocks.Lock(accountID)
}

// ============ ACCOUNTS ============

func (r *FinanceRepository) GetAccount(id string) (models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return models.Account{}, models.ErrAccountNotFound
	}
	return a, nil
}

func (r *FinanceRepository) SaveAccount(a models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
}

func (r *FinanceRepository) ListAccounts() []models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ============ TRANSACTIONS ============

// InsertTransaction appends atomically, rejecting id replays. This is the
// uniform idempotency guard for every posting path.
func (r *FinanceRepository) InsertTransaction(t models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[t.ID]; exists {
		return models.ErrDuplicateTransaction
	}
	r.transactions[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *FinanceRepository) GetTransaction(id string) (models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transactions[id]
	if !ok {
		return models.Transaction{}, models.ErrNotFound
	}
	return t, nil
}

// UpdateTransaction replaces an existing entry; the id must already be posted.
func (r *FinanceRepository) UpdateTransaction(t models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[t.ID]; !ok {
		return models.ErrNotFound
	}
	r.transactions[t.ID] = t
	return nil
}

func (r *FinanceRepository) ListTransactions() []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Transaction, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.transactions[id])
	}
	return out
}

// ============ SNAPSHOT ============

func (r *FinanceRepository) SnapshotState() ([]models.Transaction, []models.Account) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transactions := make([]models.Transaction, 0, len(r.order))
	for _, id := range r.order {
		transactions = append(transactions, r.transactions[id])
	}

	accounts := make([]models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	return transactions, accounts
}

func (r *FinanceRepository) RestoreState(transactions []models.Transaction, accounts []models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = make(map[string]models.Transaction, len(transactions))
	r.order = make([]string, 0, len(transactions))
	for _, t := range transactions {
		if _, seen := r.transactions[t.ID]; seen {
			continue
		}
		r.transactions[t.ID] = t
		r.order = append(r.order, t.ID)
	}

	r.accounts = make(map[string]models.Account, len(accounts))
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
}

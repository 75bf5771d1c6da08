/*
ledger.go - The Ledger store: transaction list + cached totals

PURPOSE:
  The Ledger owns the ordered transaction list and the three running
  totals (account balance, credit-card bill, total invested). It is the
  only component that mutates them. Every mutation validates its input,
  changes the list or baseline, and persists the list and all scalars
  to the key-value store in a single batch.

FOLD INVARIANT:
  The totals are always the fold of the transaction list over the
  user-declared baseline values, with the bill clamped at zero after
  every step. The clamp makes deltas non-invertible (reversing a bill
  overpayment must not resurrect the discarded part), so every mutation
  recomputes the fold rather than patching the cached totals. The
  stored scalar keys are a convenience for external consumers (backup,
  older readers), never the authority.

REDEMPTION:
  Withdrawing invested funds is a composite step: the invested baseline
  is reduced and an income transaction is inserted for the same amount.
  Folding the baseline change through keeps the invariant exact across
  reloads. Both halves commit together or not at all.

DURABILITY:
  In-memory state is updated first, then persisted (optimistic). A
  persistence failure is logged and the session continues from memory;
  the next successful write repairs the store. This is a deliberate
  trade, not a bug - see kv.Store for the batching contract.

CONCURRENCY:
  The four mutating operations are serialized behind a single mutex so
  the engine stays correct when driven by concurrent HTTP requests.

SEE ALSO:
  - delta.go: The mutation rules
  - report.go: Read-only summaries over Transactions()
  - kv/kv.go: Persistence contract
*/
package ledger

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/suxen/gastei/ledger/kv"
)

// =============================================================================
// STORAGE KEYS
// =============================================================================

const (
	keyPrefix = "gastei:"

	KeyTransactions          = keyPrefix + "transactions"
	KeyInitialAccountBalance = keyPrefix + "initialAccountBalance"
	KeyInitialInvested       = keyPrefix + "initialInvested"
	KeyInitialCreditCardBill = keyPrefix + "initialCreditCardBill"
	KeyCreditCardLimit       = keyPrefix + "creditCardLimit"
	KeyAccountBalance        = keyPrefix + "accountBalance"
	KeyCurrentCreditCardBill = keyPrefix + "currentCreditCardBill"
	KeyTotalInvested         = keyPrefix + "totalInvested"
)

// StorageKeys returns every key the ledger persists under, in a stable
// order. The backup bundle is defined over exactly this set.
func StorageKeys() []string {
	return []string{
		KeyTransactions,
		KeyInitialAccountBalance,
		KeyInitialInvested,
		KeyInitialCreditCardBill,
		KeyCreditCardLimit,
		KeyAccountBalance,
		KeyCurrentCreditCardBill,
		KeyTotalInvested,
	}
}

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	mu    sync.Mutex
	store kv.Store
	log   logrus.FieldLogger

	// transactions is kept most-recent-first for display; the fold
	// replays it back-to-front (chronological).
	transactions []Transaction
	baseline     Baseline
	totals       Totals
}

func New(store kv.Store, log logrus.FieldLogger) *Ledger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Ledger{store: store, log: log}
}

// Load rebuilds the in-memory state from the key-value store. Absent or
// invalid keys fall back to their zero values. The totals are always
// recomputed from the fold, never trusted from the stored scalars.
func (l *Ledger) Load(ctx context.Context) error {
	values, err := l.store.MultiGet(ctx, StorageKeys())
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.transactions = nil
	if raw, ok := values[KeyTransactions]; ok {
		var txs []Transaction
		if err := json.Unmarshal([]byte(raw), &txs); err != nil {
			l.log.WithError(err).Warn("stored transaction list is invalid, starting empty")
		} else {
			l.transactions = txs
		}
	}
	// Histories written before CategoryKind existed carry only the
	// display category; classify them on the way in.
	for i := range l.transactions {
		if l.transactions[i].CategoryKind == "" {
			l.transactions[i].CategoryKind = ResolveCategoryKind(
				l.transactions[i].Type, l.transactions[i].Category)
		}
	}

	l.baseline = Baseline{
		AccountBalance:  l.loadMoney(values, KeyInitialAccountBalance),
		TotalInvested:   l.loadMoney(values, KeyInitialInvested),
		CreditCardBill:  l.loadMoney(values, KeyInitialCreditCardBill),
		CreditCardLimit: l.loadMoney(values, KeyCreditCardLimit),
	}
	l.totals = l.fold()
	return nil
}

func (l *Ledger) loadMoney(values map[string]string, key string) Money {
	raw, ok := values[key]
	if !ok {
		return Zero()
	}
	m, err := MoneyFromString(strings.Trim(raw, `"`))
	if err != nil {
		l.log.WithError(err).WithField("key", key).Warn("stored scalar is invalid, using zero")
		return Zero()
	}
	return m
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Initialize records the user-declared baseline values and resets the
// totals to the fold over the current list. Used at onboarding and when
// the user edits the initial values later.
func (l *Ledger) Initialize(ctx context.Context, b Baseline) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.baseline = b
	l.totals = l.fold()
	l.persist(ctx)
	return nil
}

// Insert validates tx, assigns id/date/kind where missing, prepends it
// to the list and refolds the totals. Either the list and every scalar
// update together, or nothing changes.
func (l *Ledger) Insert(ctx context.Context, tx Transaction) (Transaction, error) {
	tx = normalize(tx)
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.transactions = append([]Transaction{tx}, l.transactions...)
	l.totals = l.fold()
	l.persist(ctx)
	return tx, nil
}

// Edit replaces the identified transaction with an updated copy. The
// totals are refolded from scratch: a changed transaction can move the
// point where the bill clamp fires, so no incremental net delta is
// safe here.
func (l *Ledger) Edit(ctx context.Context, id string, req EditRequest) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return Transaction{}, &NotFoundError{ID: id}
	}

	old := l.transactions[idx]
	updated := applyEdit(old, req)
	if err := validate(updated); err != nil {
		return Transaction{}, err
	}

	l.transactions[idx] = updated
	l.totals = l.fold()
	l.persist(ctx)
	return updated, nil
}

// Remove deletes the identified transaction and refolds the totals, so
// its effect disappears exactly. Negating its delta would be wrong
// whenever the bill clamp had discarded part of it.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}

	l.transactions = append(l.transactions[:idx:idx], l.transactions[idx+1:]...)
	l.totals = l.fold()
	l.persist(ctx)
	return nil
}

// Redeem moves amount from the invested principal back into the cash
// balance: the invested baseline drops by amount and an income
// transaction is recorded for the same amount. If amount exceeds the
// current principal nothing changes.
func (l *Ledger) Redeem(ctx context.Context, amount Money, description string) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if description == "" {
		description = "Investment redemption"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.GreaterThan(l.totals.TotalInvested) {
		return Transaction{}, &InsufficientFundsError{
			Available: l.totals.TotalInvested,
			Requested: amount,
		}
	}

	tx := normalize(Transaction{
		Description:   description,
		Amount:        amount,
		Type:          TypeIncome,
		PaymentMethod: PayFromBalance,
		Notes:         "Redeemed from invested funds",
	})

	// Baseline change + income insert commit as one batch.
	l.baseline.TotalInvested = l.baseline.TotalInvested.Sub(amount)
	l.transactions = append([]Transaction{tx}, l.transactions...)
	l.totals = l.fold()
	l.persist(ctx)
	return tx, nil
}

// =============================================================================
// READ SIDE
// =============================================================================

// Transactions returns a snapshot of the list, most-recent-first.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *Ledger) Totals() Totals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals
}

func (l *Ledger) InitialValues() Baseline {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.baseline
}

// CreditCardAvailable is limit minus outstanding bill. Negative means
// over limit.
func (l *Ledger) CreditCardAvailable() Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.baseline.CreditCardLimit.Sub(l.totals.CreditCardBill)
}

// =============================================================================
// INTERNALS
// =============================================================================

func (l *Ledger) indexOf(id string) int {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

// fold replays the list chronologically from the baseline, clamping the
// bill at zero after every step.
func (l *Ledger) fold() Totals {
	t := Totals{
		AccountBalance: l.baseline.AccountBalance,
		CreditCardBill: l.baseline.CreditCardBill,
		TotalInvested:  l.baseline.TotalInvested,
	}
	for i := len(l.transactions) - 1; i >= 0; i-- {
		t = addClamped(t, Delta(l.transactions[i]))
	}
	return t
}

func addClamped(t Totals, d Deltas) Totals {
	t.AccountBalance = t.AccountBalance.Add(d.AccountBalance)
	t.CreditCardBill = t.CreditCardBill.Add(d.CreditCardBill)
	if t.CreditCardBill.IsNegative() {
		t.CreditCardBill = Zero()
	}
	t.TotalInvested = t.TotalInvested.Add(d.TotalInvested)
	return t
}

// persist writes the list and every scalar as one batch. Failures are
// logged and the in-memory state stays authoritative for the session.
func (l *Ledger) persist(ctx context.Context) {
	raw, err := json.Marshal(l.transactions)
	if err != nil {
		l.log.WithError(err).Error("failed to encode transaction list")
		return
	}
	pairs := map[string]string{
		KeyTransactions:          string(raw),
		KeyInitialAccountBalance: l.baseline.AccountBalance.Value.String(),
		KeyInitialInvested:       l.baseline.TotalInvested.Value.String(),
		KeyInitialCreditCardBill: l.baseline.CreditCardBill.Value.String(),
		KeyCreditCardLimit:       l.baseline.CreditCardLimit.Value.String(),
		KeyAccountBalance:        l.totals.AccountBalance.Value.String(),
		KeyCurrentCreditCardBill: l.totals.CreditCardBill.Value.String(),
		KeyTotalInvested:         l.totals.TotalInvested.Value.String(),
	}
	if err := l.store.MultiSet(ctx, pairs); err != nil {
		l.log.WithError(err).Warn("failed to persist ledger state, memory stays authoritative")
	}
}

// =============================================================================
// VALIDATION & NORMALIZATION
// =============================================================================

func normalize(tx Transaction) Transaction {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	if tx.CategoryKind == "" {
		tx.CategoryKind = ResolveCategoryKind(tx.Type, tx.Category)
	}
	if tx.PaymentMethod == "" {
		switch {
		case tx.Type == TypeIncome:
			tx.PaymentMethod = PayFromBalance
		case tx.CategoryKind == KindCreditCardPayment:
			tx.PaymentMethod = PayFromBalance
		}
	}
	return tx
}

func validate(tx Transaction) error {
	if !tx.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if strings.TrimSpace(tx.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if !tx.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be income, expense or investment"}
	}
	if tx.PaymentMethod != "" && !tx.PaymentMethod.Valid() {
		return &ValidationError{Field: "paymentMethod", Reason: "unknown payment method"}
	}
	if tx.Type == TypeExpense && tx.CategoryKind == KindOrdinary {
		if tx.PaymentMethod != PayFromBalance && tx.PaymentMethod != PayOnCard {
			return &ValidationError{Field: "paymentMethod", Reason: "expense must be paid from balance or on card"}
		}
	}
	return nil
}

func applyEdit(old Transaction, req EditRequest) Transaction {
	updated := old
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.PaymentMethod != nil {
		updated.PaymentMethod = *req.PaymentMethod
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.CategoryKind != nil {
		updated.CategoryKind = *req.CategoryKind
	} else if req.Type != nil || req.Category != nil {
		// The classification follows the changed type/category unless
		// the caller pinned it explicitly.
		updated.CategoryKind = ResolveCategoryKind(updated.Type, updated.Category)
	}
	return updated
}

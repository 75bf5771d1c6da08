/*
Package ledger provides the core personal-finance ledger engine.

PURPOSE:
  This package contains the domain types and algorithms for tracking a
  personal ledger: an ordered list of transactions plus three running
  totals (account balance, credit-card bill, total invested). The totals
  are always a fold of the transaction list over the user's declared
  initial values - they are cached, never independent state.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A currency amount backed by decimal.Decimal (no float drift)
  - Transaction: A single ledger entry (income, expense or investment)
  - CategoryKind: Closed classification driving mutation semantics
  - Totals: The three running scalars derived from the transaction list

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all currency math
  2. Closed enums: mutation rules switch on CategoryKind, never on
     display strings
  3. Reversibility: every transaction's effect on the totals can be
     negated exactly, so delete and edit are net-delta operations

SEE ALSO:
  - delta.go: Mutation rules (transaction -> totals deltas)
  - ledger.go: The Ledger store and its operations
  - report.go: Read-only summaries and category breakdowns
*/
package ledger

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Currency amount with 2-decimal precision
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value).Round(2)}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Value: d.Round(2)}, nil
}

func Zero() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(o Money) Money        { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money        { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Neg() Money               { return Money{Value: m.Value.Neg()} }
func (m Money) IsZero() bool             { return m.Value.IsZero() }
func (m Money) IsNegative() bool         { return m.Value.IsNegative() }
func (m Money) IsPositive() bool         { return m.Value.IsPositive() }
func (m Money) GreaterThan(o Money) bool { return m.Value.GreaterThan(o.Value) }
func (m Money) LessThan(o Money) bool    { return m.Value.LessThan(o.Value) }
func (m Money) Equal(o Money) bool       { return m.Value.Equal(o.Value) }
func (m Money) String() string           { return m.Value.StringFixed(2) }

// MarshalJSON encodes Money as a plain JSON number so the persisted
// form matches what the key-value store historically held.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Value.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var s json.Number
	if err := json.Unmarshal(data, &s); err != nil {
		// Tolerate quoted numbers from older exports.
		var quoted string
		if err2 := json.Unmarshal(data, &quoted); err2 != nil {
			return err
		}
		s = json.Number(quoted)
	}
	d, err := decimal.NewFromString(s.String())
	if err != nil {
		return err
	}
	m.Value = d
	return nil
}

// =============================================================================
// TRANSACTION - A single ledger entry
// =============================================================================

type TransactionType string

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeInvestment:
		return true
	}
	return false
}

type PaymentMethod string

const (
	// PayFromBalance draws from (or feeds into) the cash account.
	PayFromBalance PaymentMethod = "account_balance"
	// PayOnCard accumulates on the credit-card bill.
	PayOnCard PaymentMethod = "credit_card"
	// PayToInvestment moves cash into the invested principal.
	PayToInvestment PaymentMethod = "to_investment"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PayFromBalance, PayOnCard, PayToInvestment:
		return true
	}
	return false
}

// CategoryKind is the closed classification that drives mutation
// semantics. It is resolved once when a transaction is created, so the
// mutation rules in delta.go never match on display strings.
type CategoryKind string

const (
	// KindOrdinary is a regular income/expense/investment entry.
	KindOrdinary CategoryKind = "ordinary"
	// KindCreditCardPayment marks a bill payment: an expense that pays
	// down the outstanding credit-card bill instead of accumulating it.
	KindCreditCardPayment CategoryKind = "credit_card_payment"
	// KindInvestmentContribution marks a contribution to the invested
	// principal.
	KindInvestmentContribution CategoryKind = "investment_contribution"
)

// CategoryBillPayment is the legacy display category for bill payments.
// It exists only so imported histories written before CategoryKind are
// classified correctly; new code resolves kinds explicitly.
const CategoryBillPayment = "Credit Card Bill Payment"

// ResolveCategoryKind classifies a transaction whose kind was not set
// explicitly (e.g. records from an imported backup).
func ResolveCategoryKind(t TransactionType, category string) CategoryKind {
	if t == TypeInvestment {
		return KindInvestmentContribution
	}
	if t == TypeExpense && category == CategoryBillPayment {
		return KindCreditCardPayment
	}
	return KindOrdinary
}

type Transaction struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        Money           `json:"amount"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	Category      string          `json:"category,omitempty"`
	CategoryKind  CategoryKind    `json:"categoryKind"`
	Notes         string          `json:"notes,omitempty"`
}

// =============================================================================
// TOTALS - The three running scalars
// =============================================================================

// Totals holds the cached fold of the transaction list. Invariant:
// Totals == fold(delta, transactions, Baseline), with CreditCardBill
// clamped to zero after every step.
type Totals struct {
	AccountBalance Money `json:"accountBalance"`
	CreditCardBill Money `json:"creditCardBill"`
	TotalInvested  Money `json:"totalInvested"`
}

// Baseline holds the user-declared initial values recorded at setup
// time. The fold starts from these, never from zero.
type Baseline struct {
	AccountBalance  Money `json:"accountBalance"`
	TotalInvested   Money `json:"totalInvested"`
	CreditCardBill  Money `json:"creditCardBill"`
	CreditCardLimit Money `json:"creditCardLimit"`
}

// EditRequest carries the fields an edit may change. Nil means "keep".
// Date is deliberately absent: creation time is not user-editable.
type EditRequest struct {
	Description   *string
	Amount        *Money
	Type          *TransactionType
	PaymentMethod *PaymentMethod
	Category      *string
	CategoryKind  *CategoryKind
	Notes         *string
}

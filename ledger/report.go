/*
report.go - Read-only summaries over the transaction list

PURPOSE:
  Pure reporting functions. They take a transaction snapshot and derive
  period-filtered totals and category breakdowns. Nothing here mutates
  the ledger, and empty input always yields zeroed/empty results.

CATEGORY ORDERING:
  Breakdowns are sorted descending by summed amount. Ties keep
  first-encountered category order, so a fixed input list always
  produces the same output order.

SEE ALSO:
  - period.go: The window definitions
  - ledger.go: Transactions() supplies the snapshot
*/
package ledger

import (
	"sort"
	"time"
)

// CategoryOther is the bucket for expenses recorded without a category.
const CategoryOther = "Other"

// =============================================================================
// PERIOD FILTER
// =============================================================================

// FilterByPeriod returns the transactions whose date falls inside the
// window for kind, relative to now. PeriodAll returns the input as-is.
func FilterByPeriod(txs []Transaction, kind PeriodKind, now time.Time) []Transaction {
	window, bounded := Window(kind, now)
	if !bounded {
		return txs
	}
	var out []Transaction
	for _, tx := range txs {
		if window.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// =============================================================================
// SUMMARY
// =============================================================================

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   Money  `json:"amount"`
}

// Summary is the aggregate view of a transaction set.
type Summary struct {
	Income              Money           `json:"income"`
	Expenses            Money           `json:"expenses"`
	ExpensesFromBalance Money           `json:"expensesFromBalance"`
	ExpensesOnCard      Money           `json:"expensesOnCard"`
	Investments         Money           `json:"investments"`
	Categories          []CategoryTotal `json:"categories"`
}

// Summarize computes totals per type, the balance/card expense split,
// and the per-category expense breakdown (descending by amount).
func Summarize(txs []Transaction) Summary {
	s := Summary{
		Income:              Zero(),
		Expenses:            Zero(),
		ExpensesFromBalance: Zero(),
		ExpensesOnCard:      Zero(),
		Investments:         Zero(),
	}
	agg := newCategoryAggregator()

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			s.Income = s.Income.Add(tx.Amount)
		case TypeExpense:
			s.Expenses = s.Expenses.Add(tx.Amount)
			if tx.PaymentMethod == PayOnCard {
				s.ExpensesOnCard = s.ExpensesOnCard.Add(tx.Amount)
			} else {
				// Bill payments and balance-paid expenses both draw
				// from cash.
				s.ExpensesFromBalance = s.ExpensesFromBalance.Add(tx.Amount)
			}
			agg.add(tx.Category, tx.Amount)
		case TypeInvestment:
			s.Investments = s.Investments.Add(tx.Amount)
		}
	}

	s.Categories = agg.sorted()
	return s
}

// AggregateByMonth groups the expense transactions of the given
// calendar month by category and sums their amounts, descending.
func AggregateByMonth(txs []Transaction, year int, month time.Month) []CategoryTotal {
	window := MonthWindow(year, month, time.Local)
	agg := newCategoryAggregator()

	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		if !window.Contains(tx.Date) {
			continue
		}
		agg.add(tx.Category, tx.Amount)
	}
	return agg.sorted()
}

// =============================================================================
// CATEGORY AGGREGATOR
// =============================================================================

type categoryAggregator struct {
	sums  map[string]Money
	order []string // first-encountered order, the tie-break
}

func newCategoryAggregator() *categoryAggregator {
	return &categoryAggregator{sums: make(map[string]Money)}
}

func (a *categoryAggregator) add(category string, amount Money) {
	if category == "" {
		category = CategoryOther
	}
	if _, seen := a.sums[category]; !seen {
		a.order = append(a.order, category)
	}
	a.sums[category] = a.sums[category].Add(amount)
}

func (a *categoryAggregator) sorted() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(a.order))
	for _, c := range a.order {
		out = append(out, CategoryTotal{Category: c, Amount: a.sums[c]})
	}
	// Stable sort keeps first-encountered order for equal amounts.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

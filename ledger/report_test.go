package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func datedExpense(date time.Time, category string, method PaymentMethod, amount float64) Transaction {
	return Transaction{
		ID:            "tx-" + date.Format(time.RFC3339Nano),
		Description:   "expense",
		Amount:        money(amount),
		Date:          date,
		Type:          TypeExpense,
		CategoryKind:  KindOrdinary,
		PaymentMethod: method,
		Category:      category,
	}
}

// =============================================================================
// PERIOD FILTER BOUNDARIES
// =============================================================================

func TestFilterByPeriod_DayBoundaries(t *testing.T) {
	// GIVEN: "now" is mid-day on 2026-09-01, local time
	now := time.Date(2026, time.September, 1, 14, 30, 0, 0, time.Local)

	startOfToday := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local)
	endOfToday := time.Date(2026, time.September, 1, 23, 59, 59, 999_000_000, time.Local)
	lastNight := time.Date(2026, time.August, 31, 23, 59, 59, 999_000_000, time.Local)

	txs := []Transaction{
		datedExpense(startOfToday, "a", PayFromBalance, 10),
		datedExpense(endOfToday, "b", PayFromBalance, 20),
		datedExpense(lastNight, "c", PayFromBalance, 30),
	}

	got := FilterByPeriod(txs, PeriodDay, now)

	// THEN: both edges of today are in, yesterday 23:59:59.999 is out
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Category)
	assert.Equal(t, "b", got[1].Category)
}

func TestFilterByPeriod_WeekIsRollingSevenDays(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)

	sixDaysAgo := time.Date(2026, time.August, 26, 8, 0, 0, 0, time.Local)
	sevenDaysAgo := time.Date(2026, time.August, 25, 23, 59, 59, 0, time.Local)

	txs := []Transaction{
		datedExpense(sixDaysAgo, "in", PayFromBalance, 10),
		datedExpense(sevenDaysAgo, "out", PayFromBalance, 20),
	}

	got := FilterByPeriod(txs, PeriodWeek, now)
	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0].Category)
}

func TestFilterByPeriod_MonthIsCalendarMonth(t *testing.T) {
	now := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.Local)

	txs := []Transaction{
		datedExpense(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local), "first", PayFromBalance, 10),
		datedExpense(time.Date(2026, time.September, 30, 23, 59, 59, 0, time.Local), "last", PayFromBalance, 20),
		datedExpense(time.Date(2026, time.August, 31, 12, 0, 0, 0, time.Local), "before", PayFromBalance, 30),
		datedExpense(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.Local), "after", PayFromBalance, 40),
	}

	got := FilterByPeriod(txs, PeriodMonth, now)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Category)
	assert.Equal(t, "last", got[1].Category)
}

func TestFilterByPeriod_AllPassesEverything(t *testing.T) {
	txs := []Transaction{
		datedExpense(time.Date(1999, time.January, 1, 0, 0, 0, 0, time.Local), "old", PayFromBalance, 10),
	}
	assert.Len(t, FilterByPeriod(txs, PeriodAll, time.Now()), 1)
}

// =============================================================================
// SUMMARIZE
// =============================================================================

func TestSummarize(t *testing.T) {
	day := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.Local)
	txs := []Transaction{
		{Description: "salary", Amount: money(3000), Date: day, Type: TypeIncome},
		datedExpense(day, "Food", PayFromBalance, 120),
		datedExpense(day, "Food", PayOnCard, 80),
		datedExpense(day, "", PayOnCard, 50),
		{Description: "etf", Amount: money(500), Date: day, Type: TypeInvestment,
			CategoryKind: KindInvestmentContribution, PaymentMethod: PayToInvestment},
	}

	s := Summarize(txs)

	assert.True(t, s.Income.Equal(money(3000)))
	assert.True(t, s.Expenses.Equal(money(250)))
	assert.True(t, s.ExpensesFromBalance.Equal(money(120)))
	assert.True(t, s.ExpensesOnCard.Equal(money(130)))
	assert.True(t, s.Investments.Equal(money(500)))

	// Categories descending: Food 200, Other 50.
	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Food", s.Categories[0].Category)
	assert.True(t, s.Categories[0].Amount.Equal(money(200)))
	assert.Equal(t, CategoryOther, s.Categories[1].Category)
	assert.True(t, s.Categories[1].Amount.Equal(money(50)))
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Expenses.IsZero())
	assert.True(t, s.Investments.IsZero())
	assert.Empty(t, s.Categories)
}

// =============================================================================
// MONTHLY CATEGORY AGGREGATION
// =============================================================================

func TestAggregateByMonth_SortedDescendingWithStableTies(t *testing.T) {
	sept := func(day int) time.Time {
		return time.Date(2026, time.September, day, 12, 0, 0, 0, time.Local)
	}

	txs := []Transaction{
		datedExpense(sept(1), "Transport", PayFromBalance, 50),
		datedExpense(sept(2), "Food", PayFromBalance, 100),
		datedExpense(sept(3), "Leisure", PayOnCard, 50),
		datedExpense(sept(4), "Food", PayOnCard, 20),
		// Other months and non-expense types are excluded.
		datedExpense(time.Date(2026, time.August, 30, 12, 0, 0, 0, time.Local), "Food", PayFromBalance, 999),
		{Description: "salary", Amount: money(5000), Date: sept(5), Type: TypeIncome},
	}

	rows := AggregateByMonth(txs, 2026, time.September)

	require.Len(t, rows, 3)
	assert.Equal(t, "Food", rows[0].Category)
	assert.True(t, rows[0].Amount.Equal(money(120)))
	// Transport and Leisure tie at 50; Transport was encountered first.
	assert.Equal(t, "Transport", rows[1].Category)
	assert.Equal(t, "Leisure", rows[2].Category)
}

func TestAggregateByMonth_EmptyInput(t *testing.T) {
	assert.Empty(t, AggregateByMonth(nil, 2026, time.September))
}

func TestAggregateByMonth_DefaultsMissingCategoryToOther(t *testing.T) {
	day := time.Date(2026, time.September, 3, 9, 0, 0, 0, time.Local)
	rows := AggregateByMonth([]Transaction{datedExpense(day, "", PayFromBalance, 42)}, 2026, time.September)

	require.Len(t, rows, 1)
	assert.Equal(t, CategoryOther, rows[0].Category)
}

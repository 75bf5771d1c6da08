/*
delta.go - Mutation rules: transaction -> totals deltas

PURPOSE:
  Pure function computing how a single transaction moves the three
  running totals. The ledger folds these deltas chronologically over the
  baseline; because the bill is clamped at zero after every step, a
  delta is not invertible on its own, so every mutation recomputes the
  fold instead of patching the cached totals.

RULE TABLE, keyed by (type, kind, payment method):

  income,     any,                  -               balance +amount
  expense,    credit_card_payment,  -               balance -amount, bill -amount
  expense,    ordinary,             account_balance balance -amount
  expense,    ordinary,             credit_card     bill    +amount
  investment, any,                  to_investment   balance -amount, invested +amount

  An investment whose payment method is NOT to_investment has zero
  effect on every scalar. Only the canonical method triggers the
  investment ledger effect; anything else must stay inert so a future
  payment method cannot double-count.

SEE ALSO:
  - types.go: Transaction, CategoryKind, Money
  - ledger.go: Folds these deltas and enforces the fold invariant
*/
package ledger

// Deltas is the movement a single transaction causes on each scalar.
type Deltas struct {
	AccountBalance Money
	CreditCardBill Money
	TotalInvested  Money
}

// Delta computes the effect of tx on the three totals.
func Delta(tx Transaction) Deltas {
	amount := tx.Amount

	switch tx.Type {
	case TypeIncome:
		// Income always lands in the cash balance. Redemptions are
		// modeled as income too; their invested-side effect is handled
		// by the composite Redeem operation, not here.
		return Deltas{AccountBalance: amount}

	case TypeExpense:
		if tx.CategoryKind == KindCreditCardPayment {
			// Bill payment: cash out, outstanding bill down.
			return Deltas{AccountBalance: amount.Neg(), CreditCardBill: amount.Neg()}
		}
		switch tx.PaymentMethod {
		case PayOnCard:
			return Deltas{CreditCardBill: amount}
		default:
			// account_balance, or income-style default when unset
			return Deltas{AccountBalance: amount.Neg()}
		}

	case TypeInvestment:
		if tx.PaymentMethod == PayToInvestment {
			return Deltas{AccountBalance: amount.Neg(), TotalInvested: amount}
		}
		// Non-canonical payment method: inert.
		return Deltas{}
	}

	return Deltas{}
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the ledger's internal model from the external contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response wrappers returned to clients

Amounts travel as plain JSON numbers; ledger.Money handles the
decoding, so no float64 touches the currency math.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/suxen/gastei/ledger"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SetupRequest records the user-declared initial values.
type SetupRequest struct {
	AccountBalance  ledger.Money `json:"accountBalance"`
	TotalInvested   ledger.Money `json:"totalInvested"`
	CreditCardLimit ledger.Money `json:"creditCardLimit"`
	CreditCardBill  ledger.Money `json:"creditCardBill"`
}

// CreateTransactionRequest is the request to record a transaction.
// CategoryKind is optional; when omitted the ledger classifies from
// type and category.
type CreateTransactionRequest struct {
	Description   string                 `json:"description"`
	Amount        ledger.Money           `json:"amount"`
	Type          ledger.TransactionType `json:"type"`
	PaymentMethod ledger.PaymentMethod   `json:"paymentMethod,omitempty"`
	Category      string                 `json:"category,omitempty"`
	CategoryKind  ledger.CategoryKind    `json:"categoryKind,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
}

// EditTransactionRequest carries the fields to change. Absent fields
// keep their current value.
type EditTransactionRequest struct {
	Description   *string                 `json:"description,omitempty"`
	Amount        *ledger.Money           `json:"amount,omitempty"`
	Type          *ledger.TransactionType `json:"type,omitempty"`
	PaymentMethod *ledger.PaymentMethod   `json:"paymentMethod,omitempty"`
	Category      *string                 `json:"category,omitempty"`
	CategoryKind  *ledger.CategoryKind    `json:"categoryKind,omitempty"`
	Notes         *string                 `json:"notes,omitempty"`
}

// RedeemRequest asks to move invested funds back into the balance.
type RedeemRequest struct {
	Amount      ledger.Money `json:"amount"`
	Description string       `json:"description,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// TotalsResponse is the headline view: the three scalars plus the
// derived card availability.
type TotalsResponse struct {
	AccountBalance      ledger.Money `json:"accountBalance"`
	CreditCardBill      ledger.Money `json:"creditCardBill"`
	TotalInvested       ledger.Money `json:"totalInvested"`
	CreditCardLimit     ledger.Money `json:"creditCardLimit"`
	CreditCardAvailable ledger.Money `json:"creditCardAvailable"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

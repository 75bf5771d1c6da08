/*
handlers.go - HTTP API handlers for the ledger engine

PURPOSE:
  Exposes the ledger via REST. Handles HTTP request/response and JSON
  serialization, delegates every decision to the ledger package.

ENDPOINTS:
  POST   /api/setup                 Record initial values
  GET    /api/totals                Current totals + card availability
  GET    /api/transactions          Transaction history
  POST   /api/transactions          Record a transaction
  PUT    /api/transactions/{id}     Edit a transaction
  DELETE /api/transactions/{id}     Delete a transaction
  POST   /api/investments/redeem    Redeem invested funds
  GET    /api/reports/summary       Period-filtered summary
  GET    /api/reports/categories    Monthly category breakdown
  GET    /api/backup                Export bundle
  POST   /api/backup                Import bundle + reload

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Transaction not found
  - 409: Insufficient invested funds
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/suxen/gastei/backup"
	"github.com/suxen/gastei/ledger"
	"github.com/suxen/gastei/ledger/kv"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger *ledger.Ledger
	Store  kv.Store
	Log    logrus.FieldLogger
}

// NewHandler creates a new handler around the given ledger and its
// backing store (the store is needed for backup export/import).
func NewHandler(l *ledger.Ledger, store kv.Store, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Ledger: l, Store: store, Log: log}
}

// =============================================================================
// SETUP & TOTALS
// =============================================================================

// Setup records the user-declared initial values.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	var req SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.Ledger.Initialize(r.Context(), ledger.Baseline{
		AccountBalance:  req.AccountBalance,
		TotalInvested:   req.TotalInvested,
		CreditCardBill:  req.CreditCardBill,
		CreditCardLimit: req.CreditCardLimit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to initialize ledger", err)
		return
	}
	h.writeTotals(w, http.StatusOK)
}

// GetTotals returns the three scalars plus the derived availability.
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	h.writeTotals(w, http.StatusOK)
}

func (h *Handler) writeTotals(w http.ResponseWriter, status int) {
	totals := h.Ledger.Totals()
	writeJSON(w, status, TotalsResponse{
		AccountBalance:      totals.AccountBalance,
		CreditCardBill:      totals.CreditCardBill,
		TotalInvested:       totals.TotalInvested,
		CreditCardLimit:     h.Ledger.InitialValues().CreditCardLimit,
		CreditCardAvailable: h.Ledger.CreditCardAvailable(),
	})
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// ListTransactions returns the history, most-recent-first.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := h.Ledger.Transactions()
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

// CreateTransaction records a new transaction.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.Ledger.Insert(r.Context(), ledger.Transaction{
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		Category:      req.Category,
		CategoryKind:  req.CategoryKind,
		Notes:         req.Notes,
	})
	if err != nil {
		h.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// EditTransaction changes fields of an existing transaction.
func (h *Handler) EditTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EditTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.Ledger.Edit(r.Context(), id, ledger.EditRequest{
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		Category:      req.Category,
		CategoryKind:  req.CategoryKind,
		Notes:         req.Notes,
	})
	if err != nil {
		h.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// DeleteTransaction removes a transaction and reverses its effect.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Ledger.Remove(r.Context(), id); err != nil {
		h.writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Redeem moves invested funds back into the cash balance.
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.Ledger.Redeem(r.Context(), req.Amount, req.Description)
	if err != nil {
		h.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetSummary returns the period-filtered summary.
// Query: ?period=all|day|week|month (default all).
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	period := ledger.PeriodKind(r.URL.Query().Get("period"))
	if period == "" {
		period = ledger.PeriodAll
	}
	if !period.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown period", nil)
		return
	}

	txs := ledger.FilterByPeriod(h.Ledger.Transactions(), period, time.Now())
	writeJSON(w, http.StatusOK, ledger.Summarize(txs))
}

// GetMonthlyCategories returns the expense breakdown for a calendar
// month. Query: ?year=2026&month=9 (default: current month).
func (h *Handler) GetMonthlyCategories(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month", err)
			return
		}
		month = time.Month(parsed)
	}

	rows := ledger.AggregateByMonth(h.Ledger.Transactions(), year, month)
	if rows == nil {
		rows = []ledger.CategoryTotal{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// =============================================================================
// BACKUP HANDLERS
// =============================================================================

// ExportBackup returns the full export bundle.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	bundle, err := backup.Export(r.Context(), h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export backup", err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// ImportBackup writes a bundle back to the store and reloads the
// ledger from it.
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	var bundle backup.Bundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid bundle", err)
		return
	}

	if err := backup.Import(r.Context(), h.Store, bundle); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to import bundle", err)
		return
	}
	if err := h.Ledger.Load(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload ledger", err)
		return
	}
	h.writeTotals(w, http.StatusOK)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidTransaction):
		writeError(w, http.StatusBadRequest, "Invalid transaction", err)
	case ledger.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Transaction not found", err)
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "Insufficient invested funds", err)
	default:
		h.Log.WithError(err).Error("ledger operation failed")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

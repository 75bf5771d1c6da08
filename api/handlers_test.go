package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suxen/gastei/api"
	"github.com/suxen/gastei/ledger"
	"github.com/suxen/gastei/ledger/kv"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := kv.NewMemory()
	l := ledger.New(store, nil)
	require.NoError(t, l.Load(context.Background()))

	handler := api.NewHandler(l, store, nil)
	srv := httptest.NewServer(api.NewRouter(handler, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func setup(t *testing.T, srv *httptest.Server, balance, invested, limit, bill float64) {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/setup", map[string]float64{
		"accountBalance":  balance,
		"totalInvested":   invested,
		"creditCardLimit": limit,
		"creditCardBill":  bill,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// =============================================================================
// SCENARIO: card expense then bill payment
// =============================================================================

func TestAPI_CardExpenseThenBillPayment(t *testing.T) {
	srv := newTestServer(t)
	setup(t, srv, 1000, 0, 2000, 0)

	// Card-paid expense: balance untouched, bill rises.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", map[string]any{
		"description":   "Headphones",
		"amount":        150,
		"type":          "expense",
		"paymentMethod": "credit_card",
		"category":      "Electronics",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	totals := decode[map[string]json.Number](t, doJSON(t, http.MethodGet, srv.URL+"/api/totals", nil))
	assert.Equal(t, "1000", totals["accountBalance"].String())
	assert.Equal(t, "150", totals["creditCardBill"].String())
	assert.Equal(t, "1850", totals["creditCardAvailable"].String())

	// Bill payment: balance drops, bill cleared.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/transactions", map[string]any{
		"description":  "Card bill",
		"amount":       150,
		"type":         "expense",
		"categoryKind": "credit_card_payment",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	totals = decode[map[string]json.Number](t, doJSON(t, http.MethodGet, srv.URL+"/api/totals", nil))
	assert.Equal(t, "850", totals["accountBalance"].String())
	assert.Equal(t, "0", totals["creditCardBill"].String())
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestAPI_ValidationErrorIs400(t *testing.T) {
	srv := newTestServer(t)
	setup(t, srv, 1000, 0, 0, 0)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", map[string]any{
		"description":   "",
		"amount":        10,
		"type":          "expense",
		"paymentMethod": "account_balance",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_UnknownTransactionIs404(t *testing.T) {
	srv := newTestServer(t)
	setup(t, srv, 1000, 0, 0, 0)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/transactions/nope", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_OverRedemptionIs409(t *testing.T) {
	srv := newTestServer(t)
	setup(t, srv, 1000, 100, 0, 0)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/investments/redeem", map[string]any{
		"amount": 500,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// =============================================================================
// EDIT & DELETE
// =============================================================================

func TestAPI_EditAndDeleteFlow(t *testing.T) {
	srv := newTestServer(t)
	setup(t, srv, 1000, 0, 2000, 0)

	created := decode[ledger.Transaction](t, doJSON(t, http.MethodPost, srv.URL+"/api/transactions", map[string]any{
		"description":   "Dinner",
		"amount":        40,
		"type":          "expense",
		"paymentMethod": "account_balance",
		"category":      "Food",
	}))
	require.NotEmpty(t, created.ID)

	// Raise the amount.
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/transactions/"+created.ID, map[string]any{
		"amount": 60,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	totals := decode[map[string]json.Number](t, doJSON(t, http.MethodGet, srv.URL+"/api/totals", nil))
	assert.Equal(t, "940", totals["accountBalance"].String())

	// Delete restores the balance.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/transactions/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	totals = decode[map[string]json.Number](t, doJSON(t, http.MethodGet, srv.URL+"/api/totals", nil))
	assert.Equal(t, "1000", totals["accountBalance"].String())
}

// =============================================================================
// REPORTS & BACKUP
// =============================================================================

func TestAPI_SummaryAndCategories(t *testing.T) {
	srv := newTestServer(t)
	setup(t, srv, 1000, 0, 0, 0)

	for _, body := range []map[string]any{
		{"description": "Salary", "amount": 3000, "type": "income"},
		{"description": "Groceries", "amount": 120, "type": "expense", "paymentMethod": "account_balance", "category": "Food"},
		{"description": "Cinema", "amount": 30, "type": "expense", "paymentMethod": "credit_card", "category": "Leisure"},
	} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	summary := decode[ledger.Summary](t, doJSON(t, http.MethodGet, srv.URL+"/api/reports/summary?period=day", nil))
	assert.True(t, summary.Income.Equal(ledger.NewMoney(3000)))
	assert.True(t, summary.Expenses.Equal(ledger.NewMoney(150)))
	assert.True(t, summary.ExpensesOnCard.Equal(ledger.NewMoney(30)))

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/reports/summary?period=fortnight", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	rows := decode[[]ledger.CategoryTotal](t, doJSON(t, http.MethodGet, srv.URL+"/api/reports/categories", nil))
	require.Len(t, rows, 2)
	assert.Equal(t, "Food", rows[0].Category)
}

func TestAPI_BackupRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	setup(t, srv, 1000, 0, 0, 0)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/transactions", map[string]any{
		"description":   "Groceries",
		"amount":        120,
		"type":          "expense",
		"paymentMethod": "account_balance",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	bundle := decode[json.RawMessage](t, doJSON(t, http.MethodGet, srv.URL+"/api/backup", nil))

	// A fresh server imports the bundle and reports the same totals.
	other := newTestServer(t)
	var decoded any
	require.NoError(t, json.Unmarshal(bundle, &decoded))
	resp = doJSON(t, http.MethodPost, other.URL+"/api/backup", decoded)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	totals := decode[map[string]json.Number](t, doJSON(t, http.MethodGet, other.URL+"/api/totals", nil))
	assert.Equal(t, "880", totals["accountBalance"].String())
}

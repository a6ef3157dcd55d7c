package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
	"github.com/moneymap-dev/moneymap/internal/store"
)

func testServer(t *testing.T) (*Server, *state.Container) {
	t.Helper()
	st := store.New(t.TempDir())
	container := state.NewContainer(model.DefaultDocument(), st)
	srv := New(Config{
		Port:      0,
		Log:       zerolog.Nop(),
		Container: container,
	})
	return srv, container
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAddAndListAccounts(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/accounts", map[string]any{
		"name":           "Checking",
		"type":           "Cash",
		"currency":       "KRW",
		"openingBalance": 2000000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var accounts []model.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "Checking", accounts[0].Name)
}

func TestAddAccount_MissingName(t *testing.T) {
	srv, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/accounts", map[string]any{
		"type": "Cash", "currency": "KRW",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddTransaction_UnknownAccount(t *testing.T) {
	srv, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/transactions", map[string]any{
		"date": "2025-01-15", "accountId": "ghost", "kind": "Deposit", "amount": 100,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	srv, container := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/accounts", map[string]any{
		"name": "Broker", "type": "Stock", "currency": "KRW",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var acct model.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acct))

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/transactions", map[string]any{
		"date": "2025-01-15", "accountId": acct.ID, "kind": "Deposit", "amount": 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/positions", map[string]any{
		"accountId": acct.ID, "symbol": "SCHD", "assetType": "ETF",
		"quantity": 10, "avgPrice": 100, "currency": "KRW", "lastPrice": 110,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/accounts/"+acct.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	doc := container.Snapshot()
	assert.Empty(t, doc.Accounts)
	assert.Empty(t, doc.Transactions)
	assert.Empty(t, doc.Positions)
}

func TestSummaryEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/accounts", map[string]any{
		"name": "Checking", "type": "Cash", "currency": "KRW", "openingBalance": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		TotalAssets string             `json:"totalAssets"`
		Allocation  map[string]float64 `json:"allocation"`
		Drift       []map[string]any   `json:"drift"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "1000", summary.TotalAssets)
	assert.InDelta(t, 100.0, summary.Allocation["Cash"], 0.0001)
	assert.Len(t, summary.Drift, 7)
}

func TestUpdatePositionPrice(t *testing.T) {
	srv, container := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/accounts", map[string]any{
		"name": "Broker", "type": "Stock", "currency": "KRW",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var acct model.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acct))

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/positions", map[string]any{
		"accountId": acct.ID, "symbol": "SCHD", "assetType": "ETF", "currency": "KRW",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var pos model.Position
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pos))

	rec = doJSON(t, srv, http.MethodPut, "/api/v1/positions/"+pos.ID+"/price", map[string]any{
		"price": 12345,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	doc := container.Snapshot()
	require.Len(t, doc.Positions, 1)
	assert.True(t, doc.Positions[0].LastPrice.Equal(model.ParseAmount("12345").Decimal))
}

func TestSettingsAndTargets(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/v1/settings", map[string]any{
		"baseCurrency": "USD", "usdKrwRate": 1300,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings model.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, model.USD, settings.BaseCurrency)

	rec = doJSON(t, srv, http.MethodPut, "/api/v1/targets", map[string]any{
		"allocation": map[string]float64{"Stock": 45, "Cash": 55}, "driftThreshold": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/targets", nil)
	var targets model.Targets
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &targets))
	assert.Equal(t, model.Percent(45), targets.Allocation[model.AssetStock])
	assert.Equal(t, model.Percent(3), targets.DriftThreshold)
}

func TestExportImportRoundTrip(t *testing.T) {
	srv, container := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/accounts", map[string]any{
		"name": "Checking", "type": "Cash", "currency": "KRW", "openingBalance": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.String()

	// Wipe, then import the export back.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(`{}`))
	wipe := httptest.NewRecorder()
	srv.Handler().ServeHTTP(wipe, req)
	require.Equal(t, http.StatusNoContent, wipe.Code)
	assert.Empty(t, container.Snapshot().Accounts)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(exported))
	restore := httptest.NewRecorder()
	srv.Handler().ServeHTTP(restore, req)
	require.Equal(t, http.StatusNoContent, restore.Code)

	doc := container.Snapshot()
	require.Len(t, doc.Accounts, 1)
	assert.Equal(t, "Checking", doc.Accounts[0].Name)
	assert.True(t, doc.Accounts[0].OpeningBalance.Equal(model.ParseAmount("500").Decimal))
}

func TestImport_Malformed(t *testing.T) {
	srv, container := testServer(t)
	before := container.Snapshot()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before, container.Snapshot())
}

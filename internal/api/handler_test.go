package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayo6706/loan-origination/internal/api"
	"github.com/ayo6706/loan-origination/internal/config"
	"github.com/ayo6706/loan-origination/internal/repository"
	"github.com/ayo6706/loan-origination/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupAPI returns a router over a fresh store seeded with Zelda's
// configuration as merchant 1.
func setupAPI(t *testing.T) (chi.Router, *repository.Store) {
	t.Helper()
	ctx := context.Background()
	store := repository.NewStore()
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		HTTPPort:     "0",
		APIPrefix:    "/api",
		RateLimitRPS: 1000,
	}
	merchantSvc := service.NewMerchantConfigService(store)
	loanSvc := service.NewLoanApplicationService(store, store, cfg.APIPrefix)

	router := api.NewRouter(cfg, zap.NewNop(), store, merchantSvc, loanSvc).Routes()
	w := do(t, router, http.MethodPost, "/api/merchant_config/set_merchant_config", map[string]any{
		"data": map[string]any{
			"name":                "Zelda's Stationary",
			"minimum_loan_amount": 100,
			"maximum_loan_amount": 3000,
			"prequal_enabled":     "false",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return router, store
}

func do(t *testing.T, h http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		switch p := payload.(type) {
		case string:
			body.WriteString(p)
		default:
			require.NoError(t, json.NewEncoder(&body).Encode(p))
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func fieldError(field, message string) map[string]any {
	return map[string]any{"field": field, "message": message}
}

func TestCreateLoanApplication(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodPost, "/api/loan_application", map[string]any{
		"data": map[string]any{
			"requested_amount_cents": 10000,
			"currency":               "USD",
			"merchant_id":            1,
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "json")
	assert.Equal(t, map[string]any{
		"loan_application_id": float64(1),
		"next_step":           "identity",
		"submit_url":          "POST /api/loan_application/1/identity",
	}, decode(t, w))
}

func TestCreateLoanApplicationStoresPendingIdentity(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodPost, "/api/loan_application", map[string]any{
		"data": map[string]any{"requested_amount_cents": 50, "currency": "uSd", "merchant_id": "1"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "identity", decode(t, w)["next_step"])

	w = do(t, router, http.MethodGet, "/api/loan_application/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	app := decode(t, w)
	assert.Equal(t, "pending_identity", app["state"])
	assert.Equal(t, float64(1), app["merchant_id"])
	assert.Equal(t, 0.5, app["requested_amount"])
	assert.Equal(t, "usd", app["currency"])
	assert.Equal(t, []any{}, app["decision_events"])
	assert.NotContains(t, app, "user_input")
}

func TestCreateLoanApplicationBadRequests(t *testing.T) {
	cases := []struct {
		name string
		data map[string]any
		want map[string]any
	}{
		{
			name: "non numeric amount",
			data: map[string]any{"merchant_id": "abcd", "requested_amount_cents": "abcd", "currency": "CAD"},
			want: fieldError("requested_amount_cents", "Invalid request."),
		},
		{
			name: "currency other than usd",
			data: map[string]any{"merchant_id": "abcd", "requested_amount_cents": 50, "currency": "CAD"},
			want: fieldError("currency", "Only USD is supported presently."),
		},
		{
			name: "unknown merchant",
			data: map[string]any{"merchant_id": "abcd", "requested_amount_cents": 50, "currency": "USD"},
			want: fieldError("merchant_id", "Could not find that merchant."),
		},
		{
			name: "missing merchant",
			data: map[string]any{"requested_amount_cents": 50, "currency": "USD"},
			want: fieldError("merchant_id", "Invalid request."),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := setupAPI(t)
			w := do(t, router, http.MethodPost, "/api/loan_application", map[string]any{"data": tc.data})
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, decode(t, w))
		})
	}
}

func TestMalformedBody(t *testing.T) {
	router, _ := setupAPI(t)

	for _, body := range []string{`not json`, `{}`, `{"data": []}`, `{"data": null}`} {
		w := do(t, router, http.MethodPost, "/api/loan_application", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, fieldError("data", "Invalid request."), decode(t, w), body)
	}
}

func TestSubmitExit(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodPost, "/api/loan_application/abcd/exit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Goodbye.", decode(t, w)["message"])
}

func TestGetMissingLoanApplication(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodGet, "/api/loan_application/9", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fieldError("loan_application_id", "Could not find that loan application."), decode(t, w))
}

func TestSetMerchantConfig(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodPost, "/api/merchant_config/set_merchant_config", map[string]any{
		"data": map[string]any{
			"name":                "William's Electronics",
			"minimum_loan_amount": 1000,
			"maximum_loan_amount": 5000,
			"prequal_enabled":     "false",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"merchant_id":         float64(2),
		"name":                "William's Electronics",
		"minimum_loan_amount": float64(1000),
		"maximum_loan_amount": float64(5000),
		"prequal_enabled":     false,
	}, decode(t, w))
}

func TestSetMerchantConfigInvalidRangeOnCreate(t *testing.T) {
	router, store := setupAPI(t)

	w := do(t, router, http.MethodPost, "/api/merchant_config/set_merchant_config", map[string]any{
		"data": map[string]any{
			"name":                "Bob's Plumbing",
			"minimum_loan_amount": 3000,
			"maximum_loan_amount": 100,
			"prequal_enabled":     "true",
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fieldError("maximum_loan_amount", "Invalid Range"), decode(t, w))

	n, err := store.CountMerchants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSetMerchantConfigInvalidRangeOnUpdate(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodPut, "/api/merchant_config/set_merchant_config", map[string]any{
		"data": map[string]any{
			"merchant_id":         1,
			"name":                "Zelda's Stationary",
			"minimum_loan_amount": 3000,
			"maximum_loan_amount": 100,
			"prequal_enabled":     "false",
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fieldError("maximum_loan_amount", "Invalid Range"), decode(t, w))

	w = do(t, router, http.MethodGet, "/api/merchant_config/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(100), decode(t, w)["minimum_loan_amount"])
}

func TestDuplicateMerchantConfig(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodPost, "/api/merchant_config/set_merchant_config", map[string]any{
		"data": map[string]any{
			"merchant_id":         1,
			"name":                "Zelda's Stationary",
			"minimum_loan_amount": 100,
			"maximum_loan_amount": 3000,
			"prequal_enabled":     "true",
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fieldError("merchant_id", "Merchant Already Exists"), decode(t, w))

	w = do(t, router, http.MethodGet, "/api/merchant_config/1", nil)
	assert.Equal(t, false, decode(t, w)["prequal_enabled"])
}

func TestUpdateMerchantConfig(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodPut, "/api/merchant_config/set_merchant_config", map[string]any{
		"data": map[string]any{
			"merchant_id":         1,
			"name":                "Zelda's Stationery",
			"minimum_loan_amount": 250.5,
			"maximum_loan_amount": 3000,
			"prequal_enabled":     true,
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/merchant_config/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"merchant_id":         float64(1),
		"name":                "Zelda's Stationery",
		"minimum_loan_amount": 250.5,
		"maximum_loan_amount": float64(3000),
		"prequal_enabled":     true,
	}, decode(t, w))
}

func TestUpdateUnknownMerchant(t *testing.T) {
	router, store := setupAPI(t)

	w := do(t, router, http.MethodPut, "/api/merchant_config/set_merchant_config", map[string]any{
		"data": map[string]any{
			"merchant_id":         77,
			"name":                "Nobody",
			"minimum_loan_amount": 1,
			"maximum_loan_amount": 2,
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, fieldError("merchant_id", "Merchant Id Does Not Exist"), decode(t, w))

	_, err := store.GetMerchant(context.Background(), 77)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetMerchantConfig(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodGet, "/api/merchant_config/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"merchant_id":         float64(1),
		"name":                "Zelda's Stationary",
		"minimum_loan_amount": float64(100),
		"maximum_loan_amount": float64(3000),
		"prequal_enabled":     false,
	}, decode(t, w))

	for _, id := range []string{"2", "abcd"} {
		w = do(t, router, http.MethodGet, "/api/merchant_config/"+id, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, fieldError("merchant_id", "No Merchant Found"), decode(t, w))
	}
}

func TestClosedStoreIsServerError(t *testing.T) {
	router, store := setupAPI(t)
	require.NoError(t, store.Close())

	w := do(t, router, http.MethodGet, "/api/merchant_config/1", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	w = do(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRFC7807ProblemDetails(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodGet, "/api/does_not_exist", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	body := decode(t, w)
	assert.NotEmpty(t, body["type"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
	assert.NotEmpty(t, body["title"])
	assert.Equal(t, "/api/does_not_exist", body["instance"])
	assert.NotEmpty(t, body["request_id"])
}

func TestOperationalRoutes(t *testing.T) {
	router, _ := setupAPI(t)

	w := do(t, router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", decode(t, w)["status"])

	w = do(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api-docs/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/merchant_config/set_merchant_config")
}

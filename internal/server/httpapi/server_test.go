package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/dmitrijs2005/landlease/internal/logging"
	"github.com/dmitrijs2005/landlease/internal/server/auth"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/dmitrijs2005/landlease/internal/server/services"
	"github.com/dmitrijs2005/landlease/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret"

func newTestServer(t *testing.T, requireAuth bool, authz services.Authorizer) *httptest.Server {
	t.Helper()
	reg := services.NewRegistry(store.NewMemoryStore(), services.WithAuthorizer(authz))
	ts := httptest.NewServer(NewServer("", logging.Nop(), reg, testSecret, requireAuth))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHTTP_Scenario(t *testing.T) {
	ts := newTestServer(t, false, services.AllowAll{})

	resp := do(t, ts, http.MethodPost, "/api/assets", `{"asset_id":1,"owner":"alice","type":"parcel","description":"north"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	asset := decodeBody[models.Asset](t, resp)
	assert.True(t, asset.IsAvailable)

	resp = do(t, ts, http.MethodPost, "/api/leases", `{"asset_id":1,"owner":"alice","lessee":"bob","start_time":1,"end_time":2,"payment_amount":50}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, uint64(1), decodeBody[createLeaseResponse](t, resp).LeaseID)

	resp = do(t, ts, http.MethodGet, "/api/assets/1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decodeBody[models.Asset](t, resp).IsAvailable)

	resp = do(t, ts, http.MethodPost, "/api/leases/1/complete", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tr := decodeBody[transitionResponse](t, resp)
	assert.True(t, tr.Applied)
	assert.Equal(t, "applied", tr.Outcome)

	resp = do(t, ts, http.MethodPost, "/api/leases/1/expire", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tr = decodeBody[transitionResponse](t, resp)
	assert.False(t, tr.Applied)
	assert.Equal(t, "already_terminal", tr.Outcome)

	resp = do(t, ts, http.MethodGet, "/api/status", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.LeaseStatus{Completed: 1, Total: 1}, decodeBody[models.LeaseStatus](t, resp))

	resp = do(t, ts, http.MethodGet, "/api/leases/1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.LeaseStateCompleted, decodeBody[models.Lease](t, resp).State)

	resp = do(t, ts, http.MethodGet, "/api/leases", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Lease](t, resp), 1)

	resp = do(t, ts, http.MethodGet, "/api/assets", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Asset](t, resp), 1)
}

func TestHTTP_Errors(t *testing.T) {
	ts := newTestServer(t, false, services.AllowAll{})
	resp := do(t, ts, http.MethodPost, "/api/assets", `{"asset_id":1,"owner":"alice"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = do(t, ts, http.MethodPost, "/api/leases", `{"asset_id":1,"owner":"alice","lessee":"bob"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name, method, path, body string
		status                   int
		code                     string
	}{
		{"unknown lease", http.MethodGet, "/api/leases/9", "", http.StatusNotFound, "not_found"},
		{"unknown asset", http.MethodGet, "/api/assets/9", "", http.StatusNotFound, "not_found"},
		{"complete unknown", http.MethodPost, "/api/leases/9/complete", "", http.StatusNotFound, "not_found"},
		{"bad id", http.MethodGet, "/api/leases/abc", "", http.StatusBadRequest, "invalid_argument"},
		{"bad body", http.MethodPost, "/api/assets", `{"asset_id":`, http.StatusBadRequest, "invalid_argument"},
		{"unknown field", http.MethodPost, "/api/assets", `{"id":2}`, http.StatusBadRequest, "invalid_argument"},
		{"re-register", http.MethodPost, "/api/assets", `{"asset_id":1,"owner":"alice"}`, http.StatusConflict, "already_exists"},
		{"asset leased", http.MethodPost, "/api/leases", `{"asset_id":1,"owner":"alice","lessee":"carol"}`, http.StatusConflict, "asset_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, ts, tt.method, tt.path, tt.body, "")
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decodeBody[ErrorResponse](t, resp).Code)
		})
	}
}

func TestHTTP_Auth(t *testing.T) {
	ts := newTestServer(t, true, auth.OwnerAuthorizer{})

	resp := do(t, ts, http.MethodPost, "/api/assets", `{"asset_id":1,"owner":"alice"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, ts, http.MethodPost, "/api/assets", `{"asset_id":1,"owner":"alice"}`, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	mallory, err := auth.GenerateToken("mallory", []byte(testSecret), time.Minute)
	require.NoError(t, err)
	resp = do(t, ts, http.MethodPost, "/api/assets", `{"asset_id":1,"owner":"alice"}`, mallory)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "unauthorized", decodeBody[ErrorResponse](t, resp).Code)

	alice, err := auth.GenerateToken("alice", []byte(testSecret), time.Minute)
	require.NoError(t, err)
	resp = do(t, ts, http.MethodPost, "/api/assets", `{"asset_id":1,"owner":"alice"}`, alice)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, ts, http.MethodGet, "/api/assets/1", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTP_RequestIDAndHealth(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(&buf, "text", "info")
	require.NoError(t, err)

	srv := NewServer("", l, services.NewRegistry(store.NewMemoryStore()), testSecret, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-7")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-7", rec.Header().Get(requestIDHeader))
	assert.Contains(t, buf.String(), "request_id=req-7")
	assert.Contains(t, buf.String(), "status=200")

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

type failingRegistry struct{ Registry }

func (failingRegistry) ViewAllLeaseStatus(context.Context) (models.LeaseStatus, error) {
	return models.LeaseStatus{}, errors.New("disk on fire")
}

func (failingRegistry) ListLeases(context.Context) ([]models.Lease, error) {
	return nil, fmt.Errorf("%w: corrupt record", common.ErrInvariantViolation)
}

func TestHTTP_InternalErrorsHideDetails(t *testing.T) {
	srv := NewServer("", logging.Nop(), failingRegistry{}, testSecret, false)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrorResponse{Error: "internal error", Code: "internal"}, body)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leases", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "invariant_violation", body.Code)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	srv := NewServer("127.0.0.1:0", logging.Nop(), failingRegistry{}, testSecret, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

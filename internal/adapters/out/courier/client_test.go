package courier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/adapters/out/courier"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type fakeProvider struct {
	mu         sync.Mutex
	tokenCalls int32
	token      string
	expiresIn  int

	quoteStatus  int
	statusBody   string
	cancelCalled bool
	lastAuth     string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		token:       "tok_1",
		expiresIn:   3600,
		quoteStatus: http.StatusOK,
	}
}

func (p *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&p.tokenCalls, 1)
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["client_id"] != "cid" || creds["client_secret"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": p.token,
			"expires_in":   p.expiresIn,
		})
	})

	mux.HandleFunc("POST /v1/quotes", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.lastAuth = r.Header.Get("Authorization")
		status := p.quoteStatus
		p.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"zone not covered"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"quote_id":    "pq_9",
			"price_minor": 1250,
			"eta_minutes": 35,
			"expires_at":  time.Now().Add(10 * time.Minute).UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("POST /v1/jobs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"job_id":    "job_100",
			"pickup_at": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /v1/jobs/job_100", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.lastAuth = r.Header.Get("Authorization")
		body := p.statusBody
		p.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+p.currentToken() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if body == "" {
			body = `{"status":"IN_TRANSIT","driver":{"name":"Sam","phone":"+15550001"},"location":"5th and Main"}`
		}
		_, _ = w.Write([]byte(body))
	})

	mux.HandleFunc("POST /v1/jobs/job_100/cancel", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.cancelCalled = true
		p.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func (p *fakeProvider) currentToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

func (p *fakeProvider) rotateToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
}

func newTestClient(t *testing.T, baseURL string) *courier.Client {
	t.Helper()
	client, err := courier.NewClient(courier.Config{
		BaseURL:      baseURL,
		ClientID:     "cid",
		ClientSecret: "secret",
	}, slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	require.NoError(t, err)
	return client
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := courier.NewClient(courier.Config{BaseURL: "http://localhost"}, slog.Default())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestQuote_Success(t *testing.T) {
	provider := newFakeProvider()
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)

	quote, err := client.Quote(context.Background(), ports.CourierQuoteRequest{
		PickupAddress:  "1 Warehouse Way",
		DropoffAddress: "9 Elm St",
		ItemCount:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, "pq_9", quote.ProviderQuoteID)
	assert.Equal(t, int64(1250), quote.Price.Amount())
	assert.Equal(t, 35, quote.ETAMinutes)
	assert.True(t, quote.ExpiresAt.After(time.Now()))
}

func TestQuote_ProviderErrorIsUpstreamFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.quoteStatus = http.StatusBadRequest
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Quote(context.Background(), ports.CourierQuoteRequest{
		PickupAddress:  "1 Warehouse Way",
		DropoffAddress: "9 Elm St",
		ItemCount:      1,
	})
	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	assert.Contains(t, err.Error(), "zone not covered")
}

func TestCreateJob_ReturnsRawResponse(t *testing.T) {
	provider := newFakeProvider()
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)

	job, err := client.CreateJob(context.Background(), ports.CourierJobRequest{
		ProviderQuoteID: "pq_9",
		PickupAddress:   "1 Warehouse Way",
		DropoffAddress:  "9 Elm St",
		ContactName:     "Ada",
		ContactPhone:    "+15550002",
		Reference:       "order_1",
	})
	require.NoError(t, err)

	assert.Equal(t, "job_100", job.JobID)
	assert.False(t, job.PickupAt.IsZero())
	assert.Contains(t, job.RawResponse, `"job_id":"job_100"`)
}

func TestGetJobStatus_MapsDriverFields(t *testing.T) {
	provider := newFakeProvider()
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)

	status, err := client.GetJobStatus(context.Background(), "job_100")
	require.NoError(t, err)

	assert.Equal(t, "IN_TRANSIT", status.Status)
	assert.Equal(t, "Sam", status.DriverName)
	assert.Equal(t, "+15550001", status.DriverPhone)
	assert.Equal(t, "5th and Main", status.Location)
	assert.Nil(t, status.ETA)
}

func TestGetJobStatus_EmptyJobIDRejected(t *testing.T) {
	provider := newFakeProvider()
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetJobStatus(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCancelJob_Success(t *testing.T) {
	provider := newFakeProvider()
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)

	require.NoError(t, client.CancelJob(context.Background(), "job_100"))

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.True(t, provider.cancelCalled)
}

func TestToken_CachedAcrossCalls(t *testing.T) {
	provider := newFakeProvider()
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	_, err := client.GetJobStatus(ctx, "job_100")
	require.NoError(t, err)
	_, err = client.GetJobStatus(ctx, "job_100")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.tokenCalls))
}

func TestToken_ConcurrentCallersSingleFetch(t *testing.T) {
	provider := newFakeProvider()
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.GetJobStatus(ctx, "job_100")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.tokenCalls))
}

func TestToken_RefreshedAfterUnauthorized(t *testing.T) {
	provider := newFakeProvider()
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	_, err := client.GetJobStatus(ctx, "job_100")
	require.NoError(t, err)

	// The provider revokes the token out of band; the next call gets a 401
	// and must transparently fetch a new token and retry.
	provider.rotateToken("tok_2")

	status, err := client.GetJobStatus(ctx, "job_100")
	require.NoError(t, err)
	assert.Equal(t, "IN_TRANSIT", status.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.tokenCalls))
}

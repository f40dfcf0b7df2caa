package exchangeratesapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

var testDay = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.HandlerFunc, accessKey string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL + "/", AccessKey: accessKey}, server.Client())
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	tests := []string{"", "not a url", "/relative/path"}

	for _, baseURL := range tests {
		t.Run(baseURL, func(t *testing.T) {
			_, err := NewClient(Config{BaseURL: baseURL}, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestClient_Fetch_Success(t *testing.T) {
	var gotPath, gotBase, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBase = r.URL.Query().Get("base")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","date":"2020-01-02","rates":{"EUR":0.9,"GBP":0.76}}`))
	}, "")

	payload, err := client.Fetch(context.Background(), "USD", testDay)

	require.NoError(t, err)
	assert.Equal(t, "/2020-01-02", gotPath)
	assert.Equal(t, "USD", gotBase)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, &domain.RatePayload{
		Base:  "USD",
		Date:  "2020-01-02",
		Rates: map[string]float64{"EUR": 0.9, "GBP": 0.76},
	}, payload)
}

func TestClient_Fetch_SendsAccessKeyButDoesNotReportIt(t *testing.T) {
	var gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("access_key")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key"}`))
	}, "s3cret")

	_, err := client.Fetch(context.Background(), "EUR", testDay)

	assert.Equal(t, "s3cret", gotKey)
	fe, ok := domain.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, fe.StatusCode)
	assert.NotContains(t, fe.URL, "s3cret")
	assert.Contains(t, fe.URL, "/2020-01-02?base=EUR")
	assert.False(t, fe.Retryable())
}

func TestClient_Fetch_StatusErrors(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusNotFound, false},
		{http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("  upstream says no\n"))
			}, "")

			_, err := client.Fetch(context.Background(), "USD", testDay)

			fe, ok := domain.AsFetchError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, fe.StatusCode)
			assert.Equal(t, "upstream says no", fe.Body)
			assert.Equal(t, tt.retryable, fe.Retryable())
		})
	}
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}, "")

	_, err := client.Fetch(context.Background(), "USD", testDay)

	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
	fe, ok := domain.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, fe.StatusCode)
	assert.False(t, fe.Retryable())
}

func TestClient_Fetch_NetworkFaultIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: baseURL, AccessKey: "s3cret"}, nil)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "USD", testDay)

	fe, ok := domain.AsFetchError(err)
	require.True(t, ok)
	assert.Zero(t, fe.StatusCode)
	assert.True(t, fe.Retryable())
	assert.NotContains(t, fe.Error(), "s3cret")
}

func TestClient_Fetch_CancelledContextIsNotRetryable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, "USD", testDay)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, domain.IsRetryable(err))
}

func TestRateLimiter(t *testing.T) {
	unlimited := NewRateLimiter(0)
	for i := 0; i < 10; i++ {
		assert.True(t, unlimited.Allow())
	}

	limited := NewRateLimiter(0.001)
	assert.True(t, limited.Allow())
	assert.False(t, limited.Allow())
}

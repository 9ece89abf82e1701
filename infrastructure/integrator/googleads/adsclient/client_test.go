package adsclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/pkg/retry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GoogleAdsClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.GoogleAds.URL = server.URL + "/v17"
	cfg.GoogleAds.DeveloperToken = "dev-token"
	cfg.GoogleAds.LoginCustomerID = "9998887776"
	cfg.GoogleAds.RequestTimeout = 5 * time.Second
	cfg.Retry.MaxAttempts = 3

	client := NewClient(cfg, server.Client()).(*GoogleAdsClient)
	return client.WithPolicy(retry.Policy{
		MaxAttempts: 3,
		ShouldRetry: ShouldRetry,
		Sleep:       func(context.Context, time.Duration) error { return nil },
	})
}

func TestSearch_SendsHeadersAndPaginates(t *testing.T) {
	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v17/customers/1234567890/googleAds:search", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))
		assert.Equal(t, "9998887776", r.Header.Get("login-customer-id"))

		body, _ := io.ReadAll(r.Body)
		var request map[string]string
		require.NoError(t, json.Unmarshal(body, &request))
		assert.Equal(t, "SELECT campaign.id FROM campaign", request["query"])

		if request["pageToken"] == "" {
			w.Write([]byte(`{"results":[{"campaign":{"id":"1","name":"A"}}],"nextPageToken":"p2"}`))
			return
		}
		w.Write([]byte(`{"results":[{"campaign":{"id":"2","name":"B"}}]}`))
	})

	rows, err := client.Search(context.Background(), "access", "1234567890", "SELECT campaign.id FROM campaign")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].Campaign.ID)
	assert.Equal(t, "2", rows[1].Campaign.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSearch_RetriesDeadlineExceeded(t *testing.T) {
	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusGatewayTimeout)
			w.Write([]byte(`{"error":{"code":504,"message":"deadline","status":"DEADLINE_EXCEEDED"}}`))
			return
		}
		w.Write([]byte(`{"results":[]}`))
	})

	rows, err := client.Search(context.Background(), "access", "1234567890", "SELECT campaign.id FROM campaign")

	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSearch_UnauthenticatedIsNotRetried(t *testing.T) {
	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"invalid credentials","status":"UNAUTHENTICATED"}}`))
	})

	_, err := client.Search(context.Background(), "expired", "1234567890", "SELECT campaign.id FROM campaign")

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsRetryable(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearch_FatalAPIErrorIsNotRetriedByMessage(t *testing.T) {
	tests := []struct {
		name         string
		httpStatus   int
		body         string
		unauthorized bool
	}{
		{
			name:         "permission denied mentioning connection",
			httpStatus:   http.StatusForbidden,
			body:         `{"error":{"code":403,"message":"The manager account connection to this customer was removed","status":"PERMISSION_DENIED"}}`,
			unauthorized: true,
		},
		{
			name:       "invalid argument mentioning network",
			httpStatus: http.StatusBadRequest,
			body:       `{"error":{"code":400,"message":"Unrecognized field segments.ad_network_type","status":"INVALID_ARGUMENT"}}`,
		},
		{
			name:         "unauthenticated mentioning timeout",
			httpStatus:   http.StatusUnauthorized,
			body:         `{"error":{"code":401,"message":"session timeout, token revoked","status":"UNAUTHENTICATED"}}`,
			unauthorized: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.httpStatus)
				w.Write([]byte(tt.body))
			})

			_, err := client.Search(context.Background(), "access", "1234567890", "SELECT campaign.id FROM campaign")

			require.Error(t, err)
			assert.Equal(t, tt.unauthorized, IsUnauthorized(err))
			assert.False(t, ShouldRetry(err))
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestShouldRetry_TransportErrorsStillUseTransientMatching(t *testing.T) {
	assert.True(t, ShouldRetry(errors.New("read tcp: connection reset by peer")))
	assert.True(t, ShouldRetry(&APIError{HTTPStatus: http.StatusServiceUnavailable, Status: "UNAVAILABLE", retryable: true}))
	assert.False(t, ShouldRetry(&APIError{HTTPStatus: http.StatusForbidden, Status: "PERMISSION_DENIED", Message: "network connection timeout"}))
}

func TestListAccessibleCustomers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v17/customers:listAccessibleCustomers", r.URL.Path)
		w.Write([]byte(`{"resourceNames":["customers/1234567890","customers/5556667778"]}`))
	})

	ids, err := client.ListAccessibleCustomers(context.Background(), "access")

	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890", "5556667778"}, ids)
}

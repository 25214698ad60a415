package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/Aman-CERP/docsearch/internal/errors"
	"github.com/Aman-CERP/docsearch/internal/record"
)

func testRetry() dserrors.RetryConfig {
	return dserrors.RetryConfig{
		MaxRetries:   1,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c, err := NewClient(ClientConfig{
		AppID:     "TESTAPP",
		APIKey:    "secret",
		IndexName: "docs",
		Endpoint:  endpoint,
		Retry:     testRetry(),
	})
	require.NoError(t, err)
	return c
}

func makeRecords(n int) []record.SearchRecord {
	records := make([]record.SearchRecord, n)
	for i := range records {
		records[i] = record.SearchRecord{ObjectID: "id", URL: "/guides/x", Source: record.SourceGuide}
	}
	return records
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(ClientConfig{AppID: "a", APIKey: "", IndexName: "docs"})
	require.Error(t, err)
	assert.Equal(t, dserrors.ErrCodeMissingCreds, dserrors.GetCode(err))
}

func TestClearPostsToClearEndpoint(t *testing.T) {
	var gotPath, gotApp, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotApp = r.Header.Get("X-Algolia-Application-Id")
		gotKey = r.Header.Get("X-Algolia-API-Key")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Clear(context.Background()))

	assert.Equal(t, "/1/indexes/docs/clear", gotPath)
	assert.Equal(t, "TESTAPP", gotApp)
	assert.Equal(t, "secret", gotKey)
}

func TestPublishBatches(t *testing.T) {
	var batches [][]batchOperation
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batches = append(batches, req.Requests)
		_ = json.NewEncoder(w).Encode(batchResponse{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.config.BatchSize = 2

	count, err := c.Publish(context.Background(), makeRecords(5))
	require.NoError(t, err)

	assert.Equal(t, 5, count)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[2], 1)
	assert.Equal(t, "addObject", batches[0][0].Action)
}

func TestPublishFailureReportsAttemptedCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	count, err := c.Publish(context.Background(), makeRecords(3))
	require.Error(t, err)
	assert.Equal(t, 3, count)
}

func TestClearRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "try again", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Clear(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestPublishEmptySet(t *testing.T) {
	c := newTestClient(t, "http://unused.invalid")

	count, err := c.Publish(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dserrors "github.com/Aman-CERP/docsearch/internal/errors"
	"github.com/Aman-CERP/docsearch/internal/record"
)

// DefaultBatchSize is the maximum number of records per batch request.
const DefaultBatchSize = 1000

// defaultRequestTimeout bounds a single index API call.
const defaultRequestTimeout = 30 * time.Second

// ClientConfig configures the hosted search-index HTTP client.
type ClientConfig struct {
	// AppID is the application identifier issued by the index service.
	AppID string
	// APIKey is the write-capable API key.
	APIKey string
	// IndexName is the target index.
	IndexName string
	// Endpoint overrides the service base URL. Defaults to the
	// service's per-application host. Used by tests.
	Endpoint string
	// BatchSize overrides the records-per-request limit.
	BatchSize int
	// Retry configures retry behavior for failed calls.
	Retry dserrors.RetryConfig
}

// Client publishes records to the hosted search-index service over its
// REST API.
type Client struct {
	config ClientConfig
	http   *http.Client
}

// Compile-time interface check.
var _ Publisher = (*Client)(nil)

// NewClient creates a Client. AppID, APIKey, and IndexName are required.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.AppID == "" || cfg.APIKey == "" || cfg.IndexName == "" {
		return nil, dserrors.New(dserrors.ErrCodeMissingCreds,
			"index credentials are not configured", nil).
			WithSuggestion("set DOCSEARCH_APP_ID, DOCSEARCH_API_KEY, and DOCSEARCH_INDEX")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = fmt.Sprintf("https://%s.algolia.net", cfg.AppID)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry = dserrors.DefaultRetryConfig()
	}

	// Connection pooling tuned for a short-lived batch CLI: keep the
	// idle timeout low so connections drain quickly after the run.
	transport := &http.Transport{
		MaxIdleConns:    4,
		IdleConnTimeout: 10 * time.Second,
	}

	return &Client{
		config: cfg,
		http:   &http.Client{Transport: transport},
	}, nil
}

// Clear removes every record from the remote index.
func (c *Client) Clear(ctx context.Context) error {
	url := fmt.Sprintf("%s/1/indexes/%s/clear", c.config.Endpoint, c.config.IndexName)

	return dserrors.Retry(ctx, c.config.Retry, func() error {
		if err := c.post(ctx, url, nil, nil); err != nil {
			return dserrors.New(dserrors.ErrCodeClearFailed,
				fmt.Sprintf("failed to clear index %q", c.config.IndexName), err)
		}
		return nil
	})
}

// batchRequest is the wire format of the service's batch write endpoint.
type batchRequest struct {
	Requests []batchOperation `json:"requests"`
}

type batchOperation struct {
	Action string              `json:"action"`
	Body   record.SearchRecord `json:"body"`
}

type batchResponse struct {
	ObjectIDs []string `json:"objectIDs"`
}

// Publish writes the record set in batches. Returns the number of records
// accepted by the service; on failure the count covers the records the
// attempt carried so partial progress stays visible.
func (c *Client) Publish(ctx context.Context, records []record.SearchRecord) (int, error) {
	url := fmt.Sprintf("%s/1/indexes/%s/batch", c.config.Endpoint, c.config.IndexName)

	published := 0
	for start := 0; start < len(records); start += c.config.BatchSize {
		end := start + c.config.BatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		req := batchRequest{Requests: make([]batchOperation, 0, len(batch))}
		for _, rec := range batch {
			req.Requests = append(req.Requests, batchOperation{Action: "addObject", Body: rec})
		}

		var resp batchResponse
		err := dserrors.Retry(ctx, c.config.Retry, func() error {
			if postErr := c.post(ctx, url, req, &resp); postErr != nil {
				return dserrors.PublishError(
					fmt.Sprintf("batch write to index %q failed", c.config.IndexName),
					published+len(batch), postErr)
			}
			return nil
		})
		if err != nil {
			return published + len(batch), err
		}

		published += len(batch)
	}

	return published, nil
}

// post issues a JSON POST and decodes the response into out when non-nil.
func (c *Client) post(ctx context.Context, url string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultRequestTimeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Algolia-Application-Id", c.config.AppID)
	req.Header.Set("X-Algolia-API-Key", c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("index service returned %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

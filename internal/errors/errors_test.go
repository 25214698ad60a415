package errors

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		wantCategory Category
		wantSeverity Severity
		wantRetry    bool
	}{
		{name: "root not found", code: ErrCodeRootNotFound, wantCategory: CategoryDiscovery, wantSeverity: SeverityFatal},
		{name: "metadata parse", code: ErrCodeMetadataParse, wantCategory: CategoryMetadata, wantSeverity: SeverityWarning},
		{name: "publish failed", code: ErrCodePublishFailed, wantCategory: CategoryPublish, wantSeverity: SeverityFatal, wantRetry: true},
		{name: "clear failed", code: ErrCodeClearFailed, wantCategory: CategoryPublish, wantSeverity: SeverityFatal, wantRetry: true},
		{name: "config invalid", code: ErrCodeConfigInvalid, wantCategory: CategoryConfig, wantSeverity: SeverityFatal},
		{name: "internal", code: ErrCodeInternal, wantCategory: CategoryInternal, wantSeverity: SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
			assert.Equal(t, tt.wantSeverity, err.Severity)
			assert.Equal(t, tt.wantRetry, err.Retryable)
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeFileUnreadable, cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), ErrCodeFileUnreadable)
}

func TestIsMatchesByCode(t *testing.T) {
	a := New(ErrCodeMetadataParse, "a", nil)
	b := New(ErrCodeMetadataParse, "b", nil)
	assert.True(t, stderrors.Is(a, b))

	c := New(ErrCodePublishFailed, "c", nil)
	assert.False(t, stderrors.Is(a, c))
}

func TestDiscoveryErrorNamesRoot(t *testing.T) {
	err := DiscoveryError("pages", stderrors.New("no such file"))
	assert.Equal(t, "pages", err.Details["root"])
	assert.True(t, IsFatal(err))
}

func TestMetadataParseErrorIsRecoverable(t *testing.T) {
	err := MetadataParseError("pages/guides/auth.mdx", nil)
	assert.False(t, IsFatal(err))
	assert.False(t, IsRetryable(err))
	assert.Equal(t, "pages/guides/auth.mdx", err.Details["path"])
}

func TestPublishErrorCarriesAttemptedCount(t *testing.T) {
	err := PublishError("batch write failed", 42, nil)
	assert.Equal(t, "42", err.Details["attempted"])
	assert.True(t, IsRetryable(err))
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2.0}

	calls := 0
	err := Retry(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return New(ErrCodePublishFailed, "transient", nil)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2.0}

	calls := 0
	err := Retry(context.Background(), cfg, func() error {
		calls++
		return New(ErrCodeConfigInvalid, "bad config", nil)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, DefaultRetryConfig(), func() error {
		return stderrors.New("never reached")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatForCLI(t *testing.T) {
	err := New(ErrCodeRootNotFound, "cannot enumerate files", nil).
		WithSuggestion("check the guides root in .docsearch.yaml")

	out := FormatForCLI(err)
	assert.Contains(t, out, "Error: cannot enumerate files")
	assert.Contains(t, out, "Suggestion:")
	assert.Contains(t, out, ErrCodeRootNotFound)
}

// Package publish talks to the hosted search-index service.
//
// The pipeline consumes the service through the Publisher contract only:
// clear the remote index, then republish the full record set. Clear must
// run strictly before Publish; publish-before-clear would leave stale
// records behind.
package publish

import (
	"context"

	"github.com/Aman-CERP/docsearch/internal/record"
)

// Publisher is the contract the build pipeline holds against the remote
// index service.
type Publisher interface {
	// Clear removes every record from the remote index.
	Clear(ctx context.Context) error

	// Publish writes the record set to the remote index and returns
	// the number of records accepted. On failure the returned count
	// reflects how many records the attempt carried.
	Publish(ctx context.Context, records []record.SearchRecord) (int, error)
}

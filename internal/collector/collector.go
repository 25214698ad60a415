// Package collector discovers candidate documentation source files.
package collector

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	dserrors "github.com/Aman-CERP/docsearch/internal/errors"
)

// Roots names the two content family roots.
type Roots struct {
	// GuidesRoot holds hand-authored guide pages.
	GuidesRoot string
	// ReferenceRoot holds auto-generated reference pages.
	ReferenceRoot string
}

// Result is the two disjoint file sets produced by a collection pass.
// Paths are slash-separated and include the root prefix.
type Result struct {
	GuidePaths     []string
	ReferencePaths []string
}

// Collector enumerates regular files under the configured roots.
type Collector struct {
	// excludePatterns are doublestar globs matched against collected
	// paths; matching files are skipped in both sets.
	excludePatterns []string
}

// New creates a Collector with the given exclude glob patterns.
func New(excludePatterns []string) *Collector {
	return &Collector{excludePatterns: excludePatterns}
}

// Collect walks both roots and returns the guide and reference file sets.
// denylist entries are exact paths removed from the guide set only; it
// exists to exclude non-content pages (error pages, app shell files) that
// live alongside real guide content.
//
// A missing or unreadable root fails the whole collection with a
// discovery error naming the root; no partial result is returned.
func (c *Collector) Collect(ctx context.Context, roots Roots, denylist map[string]struct{}) (*Result, error) {
	guides, err := c.walk(ctx, roots.GuidesRoot)
	if err != nil {
		return nil, err
	}

	references, err := c.walk(ctx, roots.ReferenceRoot)
	if err != nil {
		return nil, err
	}

	kept := guides[:0]
	for _, p := range guides {
		if _, denied := denylist[p]; denied {
			continue
		}
		kept = append(kept, p)
	}

	return &Result{
		GuidePaths:     kept,
		ReferencePaths: references,
	}, nil
}

// walk enumerates all regular files under root. Directories never appear
// in the output. Output order follows the walk but carries no meaning;
// downstream processing is per-file.
func (c *Collector) walk(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, dserrors.DiscoveryError(root, err)
	}
	if !info.IsDir() {
		return nil, dserrors.DiscoveryError(root, fs.ErrInvalid).
			WithSuggestion("the configured root must be a directory")
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		p := filepath.ToSlash(path)
		if c.excluded(p) {
			return nil
		}

		paths = append(paths, p)
		return nil
	})
	if walkErr != nil {
		if walkErr == context.Canceled || walkErr == context.DeadlineExceeded {
			return nil, walkErr
		}
		return nil, dserrors.DiscoveryError(root, walkErr)
	}

	return paths, nil
}

func (c *Collector) excluded(path string) bool {
	for _, pattern := range c.excludePatterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		// Also try matching without the root prefix so patterns like
		// "**/drafts/**" behave the same for both roots.
		if i := strings.IndexByte(path, '/'); i >= 0 {
			if ok, err := doublestar.Match(pattern, path[i+1:]); err == nil && ok {
				return true
			}
		}
	}
	return false
}

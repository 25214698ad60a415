// Package hierarchy assigns reference pages into the search UI's
// category/version/type taxonomy.
//
// Reference trees come in two shapes: versioned APIs
// (/reference/auth/v1/signUp) that need an extra hierarchy level for the
// version, and flat single-version libraries (/reference/cli/start).
// The classifier branches on the presence of a version token.
package hierarchy

import (
	"regexp"
	"strings"

	"github.com/Aman-CERP/docsearch/internal/record"
)

// versionPattern matches version tokens like v1, v2, v42.
var versionPattern = regexp.MustCompile(`^v\d+$`)

// Classifier classifies reference page URLs.
type Classifier struct {
	// displayNames maps short product codes to human-readable names.
	// Unmapped categories yield a nil lvl1; that gap is deliberate.
	displayNames map[string]string

	// referenceMarker is the URL segment reference trees live under.
	referenceMarker string

	// generatedMarker is the segment naming auto-generated index
	// content; pages directly at it carry no classification and are
	// filtered out downstream as index pages.
	generatedMarker string
}

// New creates a Classifier with the given display-name table.
func New(displayNames map[string]string, referenceMarker, generatedMarker string) *Classifier {
	return &Classifier{
		displayNames:    displayNames,
		referenceMarker: referenceMarker,
		generatedMarker: generatedMarker,
	}
}

// DisplayName resolves a category code to its human-readable name.
// The second return reports whether the category is mapped.
func (c *Classifier) DisplayName(category string) (string, bool) {
	name, ok := c.displayNames[category]
	return name, ok
}

// Classify inspects a reference page URL and title and returns the
// category, version, type, and hierarchy overrides for its record.
// Returns nil when the URL carries no classifiable segments.
func (c *Classifier) Classify(url, title string) *record.Overrides {
	segments := splitSegments(url)

	marker := -1
	for i, s := range segments {
		if s == c.referenceMarker {
			marker = i
			break
		}
	}
	if marker < 0 || marker+1 >= len(segments) {
		// No category segment after the marker.
		return nil
	}

	category := segments[marker+1]
	rest := segments[marker+2:]

	cls := &record.Overrides{Category: category}
	displayName, mapped := c.DisplayName(category)

	if len(rest) > 0 && versionPattern.MatchString(rest[0]) {
		// Versioned API tree: lvl1 product, lvl2 version, lvl3 page.
		cls.Version = rest[0]
		if mapped && title == displayName {
			// The category's own landing page.
			cls.Type = record.Lvl2
		} else {
			cls.Type = record.Lvl3
		}
		cls.Lvl1 = displayNamePtr(displayName, mapped)
		cls.Lvl2 = &cls.Version
		cls.Lvl3 = &title
		return cls
	}

	if len(rest) > 0 && rest[0] == c.generatedMarker {
		// Auto-generated index content; left unclassified and
		// filtered out later as an index page. Derived URLs have the
		// generated segment stripped already, so this only fires for
		// URLs handed in raw.
		return cls
	}

	if len(rest) > 0 {
		// Flat single-version tree with a page segment.
		cls.Type = record.Lvl2
		cls.Lvl1 = displayNamePtr(displayName, mapped)
		cls.Lvl2 = &title
		return cls
	}

	// Only the category segment: keep the record's defaults.
	return cls
}

// displayNamePtr returns nil for unmapped categories so lvl1 stays unset.
func displayNamePtr(name string, mapped bool) *string {
	if !mapped {
		return nil
	}
	return &name
}

func splitSegments(url string) []string {
	var segments []string
	for _, s := range strings.Split(url, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Package docurl maps documentation file paths to canonical public URLs.
package docurl

import (
	"path"
	"strings"
)

// Deriver turns source file paths into canonical site URLs. Derivation is
// pure and deterministic: the same path always yields the same URL.
type Deriver struct {
	// stripPrefixes maps a source kind to the root prefix removed from
	// its paths (e.g. guide files live under "pages" but are served
	// from the site root).
	stripPrefixes map[string]string

	// generatedSegment is the path segment generated reference files
	// live under, one level deeper than their public URL.
	generatedSegment string

	// extensions are content extensions stripped from the final URL.
	extensions []string
}

// New creates a Deriver. stripPrefixes keys are source kinds ("guide",
// "reference"); extensions must include the leading dot.
func New(stripPrefixes map[string]string, generatedSegment string, extensions []string) *Deriver {
	return &Deriver{
		stripPrefixes:    stripPrefixes,
		generatedSegment: generatedSegment,
		extensions:       extensions,
	}
}

// Derive returns the canonical URL for a source file path.
// The generated segment is dropped, the per-source root prefix is removed,
// and the content extension is stripped. The result always starts with "/".
func (d *Deriver) Derive(filePath, sourceKind string) string {
	p := path.Clean(strings.ReplaceAll(filePath, "\\", "/"))

	if d.generatedSegment != "" {
		segments := strings.Split(p, "/")
		kept := segments[:0]
		for _, s := range segments {
			if s == d.generatedSegment {
				continue
			}
			kept = append(kept, s)
		}
		p = strings.Join(kept, "/")
	}

	if prefix := d.stripPrefixes[sourceKind]; prefix != "" {
		prefix = strings.Trim(prefix, "/")
		p = strings.TrimPrefix(p, "/")
		if p == prefix {
			p = ""
		} else {
			p = strings.TrimPrefix(p, prefix+"/")
		}
	}

	for _, ext := range d.extensions {
		if strings.HasSuffix(p, ext) {
			p = strings.TrimSuffix(p, ext)
			break
		}
	}

	return "/" + strings.TrimPrefix(p, "/")
}

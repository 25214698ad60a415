package record

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Aman-CERP/docsearch/internal/metadata"
)

// Builder composes extracted page data into finished search records.
type Builder struct {
	// extensions are content extensions stripped from category segments.
	extensions []string
}

// NewBuilder creates a Builder. extensions must include the leading dot.
func NewBuilder(extensions []string) *Builder {
	return &Builder{extensions: extensions}
}

// Build assembles one SearchRecord. cls is nil for guide pages and for
// reference pages that carry no classification.
func (b *Builder) Build(source Source, meta metadata.PageMetadata, body, url string, cls *Overrides) SearchRecord {
	rec := SearchRecord{
		ObjectID:    uuid.NewString(),
		ID:          meta.ID,
		Title:       meta.Title,
		Description: meta.Description,
		URL:         url,
		Source:      source,
		PageContent: body,
		Type:        Lvl1,
		Hierarchy:   Hierarchy{Lvl0: Lvl0Guides, Lvl1: meta.Title},
	}

	if source != SourceReference {
		return rec
	}

	rec.Hierarchy.Lvl0 = Lvl0References
	if cls == nil {
		return rec
	}

	if cls.Category != "" {
		category := b.stripExtension(cls.Category)
		rec.Category = &category
	}
	if cls.Version != "" {
		version := cls.Version
		rec.Version = &version
	}
	if cls.Type != "" {
		// A typed classification replaces the title-derived defaults
		// wholesale; a nil level here really means null (unmapped
		// display names stay unfilled on purpose).
		rec.Type = cls.Type
		rec.Hierarchy.Lvl1 = cls.Lvl1
		rec.Hierarchy.Lvl2 = cls.Lvl2
		rec.Hierarchy.Lvl3 = cls.Lvl3
	}

	return rec
}

// stripExtension removes a trailing content extension from a category
// segment (reference categories collected at file level carry one).
func (b *Builder) stripExtension(segment string) string {
	for _, ext := range b.extensions {
		if strings.HasSuffix(segment, ext) {
			return strings.TrimSuffix(segment, ext)
		}
	}
	return segment
}

// placeholderSuffixes mark directory placeholders that are never real
// content: auto-generated index pages and empty-dir sentinels.
var placeholderSuffixes = []string{"/index", "/.gitkeep"}

// Filter drops structurally uninteresting records from the built set.
// Applied over the whole record set after building, per the post-build
// filter contract.
func Filter(records []SearchRecord) []SearchRecord {
	kept := make([]SearchRecord, 0, len(records))
	for _, rec := range records {
		if isPlaceholder(rec.URL) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func isPlaceholder(url string) bool {
	for _, suffix := range placeholderSuffixes {
		if strings.HasSuffix(url, suffix) {
			return true
		}
	}
	return false
}

// Package metadata extracts page metadata (id, title, description) and body
// text from documentation source files.
//
// Two encodings are supported: a YAML front-matter block at the top of the
// file, or an inline `meta = { ... }` object-literal assignment embedded in
// the source. Front-matter takes precedence when present and non-empty.
// Exactly one extraction path is attempted per file.
package metadata

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	dserrors "github.com/Aman-CERP/docsearch/internal/errors"
)

// PageMetadata holds the fields a page may declare. Absent fields stay nil.
type PageMetadata struct {
	ID          *string
	Title       *string
	Description *string
}

// Extraction is the result of pulling metadata out of a source file.
type Extraction struct {
	Meta PageMetadata
	// Body is the file text with the metadata block removed.
	Body string
}

// Extract parses fileText and returns its metadata and body.
//
// Malformed metadata degrades to empty metadata with the text unchanged,
// except when an inline literal's braces cannot be balanced at all, which
// surfaces a metadata parse error for that file (the caller must not abort
// the whole build over it). path is used only for error reporting.
func Extract(path, fileText string) (Extraction, error) {
	// Front-matter first. A parse failure here is treated as "no
	// front-matter" so hand-authored files with broken headers still
	// get indexed by body.
	var matter map[string]any
	rest, err := frontmatter.Parse(strings.NewReader(fileText), &matter)
	if err == nil && len(matter) > 0 {
		return Extraction{
			Meta: metaFromMap(matter),
			Body: string(rest),
		}, nil
	}

	// Fall back to the inline object-literal assignment.
	loc := metaAssignPattern.FindStringIndex(fileText)
	if loc == nil {
		return Extraction{Body: fileText}, nil
	}

	open := loc[1] - 1 // the opening brace matched by the pattern
	closing, ok := matchBrace(fileText, open)
	if !ok {
		return Extraction{Body: fileText}, dserrors.MetadataParseError(path, fmt.Errorf("unbalanced braces in meta literal"))
	}

	fields := parseObjectLiteral(fileText[open+1 : closing])
	if fields == nil {
		// Literal is delimited but not a plain key/value object.
		// Degrade to no metadata rather than failing the file.
		return Extraction{Body: fileText}, nil
	}

	return Extraction{
		Meta: metaFromFields(fields),
		Body: removeStatement(fileText, loc[0], closing),
	}, nil
}

// metaFromMap builds PageMetadata from parsed front-matter.
func metaFromMap(m map[string]any) PageMetadata {
	var meta PageMetadata
	if v, ok := m["id"]; ok && v != nil {
		meta.ID = stringify(v)
	}
	if v, ok := m["title"]; ok && v != nil {
		meta.Title = stringify(v)
	}
	if v, ok := m["description"]; ok && v != nil {
		meta.Description = stringify(v)
	}
	return meta
}

// metaFromFields builds PageMetadata from a parsed inline literal.
func metaFromFields(fields map[string]string) PageMetadata {
	var meta PageMetadata
	if v, ok := fields["id"]; ok {
		meta.ID = &v
	}
	if v, ok := fields["title"]; ok {
		meta.Title = &v
	}
	if v, ok := fields["description"]; ok {
		meta.Description = &v
	}
	return meta
}

// stringify renders a front-matter scalar as a string pointer.
func stringify(v any) *string {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprintf("%v", v)
	}
	return &s
}

// removeStatement strips the meta assignment from the body, including a
// trailing semicolon and at most one trailing newline.
func removeStatement(text string, start, closing int) string {
	end := closing + 1
	for end < len(text) && (text[end] == ';' || text[end] == ' ') {
		end++
	}
	if end < len(text) && text[end] == '\n' {
		end++
	}
	return text[:start] + text[end:]
}

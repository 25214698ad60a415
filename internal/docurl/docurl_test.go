package docurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDeriver() *Deriver {
	return New(map[string]string{
		"guide":     "pages",
		"reference": "docs",
	}, "generated", []string{".mdx", ".md"})
}

func TestDerive(t *testing.T) {
	d := newTestDeriver()

	tests := []struct {
		name       string
		path       string
		sourceKind string
		want       string
	}{
		{name: "guide page", path: "pages/guides/auth/overview.mdx", sourceKind: "guide", want: "/guides/auth/overview"},
		{name: "guide index", path: "pages/guides/index.mdx", sourceKind: "guide", want: "/guides/index"},
		{name: "reference page", path: "docs/reference/auth/v1/signUp.mdx", sourceKind: "reference", want: "/reference/auth/v1/signUp"},
		{name: "generated segment removed", path: "docs/reference/cli/generated/start.mdx", sourceKind: "reference", want: "/reference/cli/start"},
		{name: "markdown extension", path: "pages/guides/intro.md", sourceKind: "guide", want: "/guides/intro"},
		{name: "sentinel file keeps name", path: "docs/reference/cli/.gitkeep", sourceKind: "reference", want: "/reference/cli/.gitkeep"},
		{name: "unknown kind keeps prefix", path: "docs/reference/auth/page.mdx", sourceKind: "other", want: "/docs/reference/auth/page"},
		{name: "windows separators", path: `pages\guides\auth\overview.mdx`, sourceKind: "guide", want: "/guides/auth/overview"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Derive(tt.path, tt.sourceKind))
		})
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	d := newTestDeriver()

	first := d.Derive("docs/reference/auth/v1/signUp.mdx", "reference")
	second := d.Derive("docs/reference/auth/v1/signUp.mdx", "reference")
	assert.Equal(t, first, second)
}

func TestDeriveIsIdempotent(t *testing.T) {
	d := newTestDeriver()

	once := d.Derive("pages/guides/auth/overview.mdx", "guide")
	twice := d.Derive(once, "guide")
	assert.Equal(t, once, twice)
}

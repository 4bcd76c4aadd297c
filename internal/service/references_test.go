package service

import (
	"net/url"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReferences(t *testing.T) {
	tests := []struct {
		name string
		page string
		want []string
	}{
		{
			name: "src and href in lexicographic order",
			page: `<link href="style.css"><img src="logo.png"><a href="#top">`,
			want: []string{"#top", "logo.png", "style.css"},
		},
		{
			name: "duplicates collapse",
			page: `<a href="x">one</a><a href="x">two</a><img src="x">`,
			want: []string{"x"},
		},
		{
			name: "attribute name is case insensitive",
			page: `<IMG SRC="a.png"><A HrEf="b.html">`,
			want: []string{"a.png", "b.html"},
		},
		{
			name: "single quoted and unquoted values are not recognised",
			page: `<img src='a.png'><img src=b.png><a href="c.html">`,
			want: []string{"c.html"},
		},
		{
			name: "empty values are ignored",
			page: `<a href="">x</a><script src="app.js"></script>`,
			want: []string{"app.js"},
		},
		{
			name: "no references",
			page: `<p>plain</p>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := ExtractReferences(tt.page)

			got := slices.Collect(refs.All())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), refs.Len())
		})
	}
}

func TestExtractReferencesIsDeterministic(t *testing.T) {
	page := `<script src="z.js"></script><a href="a.html"></a><img src="m.png"><a href="a.html"></a>`

	first := slices.Collect(ExtractReferences(page).All())
	second := slices.Collect(ExtractReferences(page).All())

	assert.Equal(t, first, second)
	assert.True(t, slices.IsSorted(first))
}

func TestDecodePage(t *testing.T) {
	body := append([]byte(`<img src="a`), 0xff)
	body = append(body, []byte(`.png">`)...)

	page := DecodePage(body)

	assert.Equal(t, "<img src=\"a\uFFFD.png\">", page)
	assert.Equal(t, []string{"a\uFFFD.png"}, slices.Collect(ExtractReferences(page).All()))
}

func TestSkipped(t *testing.T) {
	assert.True(t, Skipped("#top"))
	assert.True(t, Skipped("#"))
	assert.True(t, Skipped("mailto:team@example.com"))
	assert.False(t, Skipped("style.css"))
	assert.False(t, Skipped("/#top"))
	assert.False(t, Skipped("MAILTO:team@example.com"))
}

func TestResolve(t *testing.T) {
	base, err := url.Parse("http://127.0.0.1:5500/")
	require.NoError(t, err)

	tests := []struct {
		ref  string
		want string
	}{
		{ref: "style.css", want: "http://127.0.0.1:5500/style.css"},
		{ref: "/css/a.css", want: "http://127.0.0.1:5500/css/a.css"},
		{ref: "///css/a.css", want: "http://127.0.0.1:5500/css/a.css"},
		{ref: "img/logo.png?v=2", want: "http://127.0.0.1:5500/img/logo.png?v=2"},
		{ref: "../x.js", want: "http://127.0.0.1:5500/x.js"},
		{ref: "/", want: "http://127.0.0.1:5500/"},
		{ref: "https://example.com/x.js", want: "https://example.com/x.js"},
		{ref: "http://cdn.example.com/lib.js", want: "http://cdn.example.com/lib.js"},
		{ref: "HTTPS://Example.com/X.js", want: "HTTPS://Example.com/X.js"},
		// protocol relative references lose their slashes and become paths
		{ref: "//cdn.example.com/lib.js", want: "http://127.0.0.1:5500/cdn.example.com/lib.js"},
		{ref: "javascript:void(0)", want: "javascript:void(0)"},
		{ref: "%zz", want: "http://127.0.0.1:5500/%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(base, tt.ref))
		})
	}
}

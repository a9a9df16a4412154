package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple tags",
			text: "solved with #HashMap and #two_sum",
			want: []string{"HashMap", "two_sum"},
		},
		{
			name: "case insensitive dedup keeps first casing",
			text: "#HashMap #hashmap #HASHMAP",
			want: []string{"HashMap"},
		},
		{
			name: "heading is not a tag",
			text: "## Approach\n#dp",
			want: []string{"dp"},
		},
		{
			name: "fenced code is skipped",
			text: "```go\nx := m[\"#Inside\"]\n```\n#Outside",
			want: []string{"Outside"},
		},
		{
			name: "fence without language",
			text: "```\n#Inside\n```\n#Outside",
			want: []string{"Outside"},
		},
		{
			name: "unclosed fence skips the rest",
			text: "#before\n```\n#inside",
			want: []string{"before"},
		},
		{
			name: "hyphen and digits",
			text: "#two-pointers #top100",
			want: []string{"two-pointers", "top100"},
		},
		{
			name: "bare hash is not a tag",
			text: "# \n#: #",
			want: []string{},
		},
		{
			name: "tag directly after text",
			text: "prefix#tag",
			want: []string{"tag"},
		},
		{
			name: "adjacent tags",
			text: "#a#b",
			want: []string{"a", "b"},
		},
		{
			name: "crlf lines",
			text: "```\r\n#Inside\r\n```\r\n#Windows",
			want: []string{"Windows"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	text := "#Graph notes\n```py\n# comment\n```\n#BFS #graph"

	first := Extract(text)
	second := Extract(text)

	assert.Equal(t, []string{"Graph", "BFS"}, first)
	assert.Equal(t, first, second)
}

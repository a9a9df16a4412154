package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty document",
			doc:  `{}`,
			want: "",
		},
		{
			name: "single paragraph",
			doc:  `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello world"}]}]}`,
			want: "hello world",
		},
		{
			name: "nested blocks join with spaces",
			doc: `{"type":"doc","content":[
				{"type":"paragraph","content":[{"type":"text","text":"first"}]},
				{"type":"blockquote","content":[{"type":"paragraph","content":[{"type":"text","text":"second"}]}]}
			]}`,
			want: "first second",
		},
		{
			name: "code blocks are skipped",
			doc: `{"type":"doc","content":[
				{"type":"paragraph","content":[{"type":"text","text":"before"}]},
				{"type":"codeBlock","content":[{"type":"text","text":"func main() {}"}]},
				{"type":"paragraph","content":[{"type":"text","text":"after"}]}
			]}`,
			want: "before after",
		},
		{
			name: "whitespace collapses",
			doc:  `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"  a \n b  "}]}]}`,
			want: "a b",
		},
		{
			name: "invalid json yields empty",
			doc:  `{"type":`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(json.RawMessage(tt.doc)))
		})
	}
}

func TestSummary(t *testing.T) {
	long := strings.Repeat("word ", 100)
	doc, _ := json.Marshal(map[string]interface{}{
		"type": "doc",
		"content": []interface{}{
			map[string]interface{}{
				"type": "paragraph",
				"content": []interface{}{
					map[string]interface{}{"type": "text", "text": long},
				},
			},
		},
	})

	short := Summary(json.RawMessage(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"short text"}]}]}`), 40)
	assert.Equal(t, "short text", short)

	truncated := Summary(doc, 40)
	assert.True(t, strings.HasSuffix(truncated, "…"))
	assert.LessOrEqual(t, len([]rune(truncated)), 41)

	// zero max falls back to the default length
	fallback := Summary(doc, 0)
	assert.True(t, strings.HasSuffix(fallback, "…"))
}

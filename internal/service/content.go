package service

import (
	"encoding/json"
	"strings"
)

const defaultSummaryLength = 160

// PlainText flattens a content tree into its text, skipping codeBlock
// subtrees. The tree is any JSON document whose nodes carry "type",
// optional "text" and optional "content" children; everything else is
// opaque to this walker.
func PlainText(doc json.RawMessage) string {
	var root interface{}
	if err := json.Unmarshal(doc, &root); err != nil {
		return ""
	}

	var parts []string
	walkCollectText(root, &parts)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Summary returns the plain text of a content tree truncated to
// maxLength runes, with an ellipsis when cut short.
func Summary(doc json.RawMessage, maxLength int) string {
	if maxLength <= 0 {
		maxLength = defaultSummaryLength
	}

	raw := PlainText(doc)
	runes := []rune(raw)
	if len(runes) <= maxLength {
		return raw
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "…"
}

func walkCollectText(node interface{}, parts *[]string) {
	m, ok := node.(map[string]interface{})
	if !ok {
		return
	}

	if m["type"] == "text" {
		if text, ok := m["text"].(string); ok {
			*parts = append(*parts, text)
		}
		return
	}
	if m["type"] == "codeBlock" {
		return
	}

	if children, ok := m["content"].([]interface{}); ok {
		for _, child := range children {
			walkCollectText(child, parts)
		}
	}
}

package tags

import "strings"

// Extract scans free text for #tag tokens and returns them in first-seen
// order. A token is a run of ASCII letters, digits, underscore or hyphen
// immediately after a '#', where the '#' is not preceded by another '#'
// (so markdown headings like "## Title" are not tags). Lines inside
// fenced code blocks are skipped entirely. Duplicate tags are dropped
// case-insensitively, keeping the casing of the first occurrence.
func Extract(text string) []string {
	result := make([]string, 0)
	seen := make(map[string]struct{})
	inCode := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if isFenceLine(line) {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		extractLine(line, seen, &result)
	}

	return result
}

// isFenceLine reports whether the line is a fence marker: three backticks
// optionally followed by a language token, nothing else.
func isFenceLine(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "```") {
		return false
	}
	for i := 3; i < len(t); i++ {
		if !isWordChar(t[i]) {
			return false
		}
	}
	return true
}

func extractLine(line string, seen map[string]struct{}, result *[]string) {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i > 0 && line[i-1] == '#' {
			continue
		}

		j := i + 1
		for j < len(line) && isTagChar(line[j]) {
			j++
		}
		if j == i+1 {
			continue
		}

		raw := line[i+1 : j]
		lower := strings.ToLower(raw)
		if _, ok := seen[lower]; !ok {
			seen[lower] = struct{}{}
			*result = append(*result, raw)
		}
		i = j - 1
	}
}

func isTagChar(c byte) bool {
	return isWordChar(c) || c == '-'
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

package docgraph

import (
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// CodeBlock is a fenced code block found in a markdown document.
type CodeBlock struct {
	Language string // info string of the opening fence, may be empty
	Code     string
}

// ExtractSections parses markdown and returns all ATX headings (H1-H6) in
// document order. Headings inside fenced code blocks are ignored. Anchors
// are URL-safe slugs; duplicate titles get numeric suffixes.
func ExtractSections(markdown string) []Section {
	var sections []Section
	anchorCounts := make(map[string]int)

	inFence := false
	var fence byte
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if marker, ok := fenceDelimiter(trimmed); ok {
			if !inFence {
				inFence = true
				fence = marker
			} else if marker == fence {
				inFence = false
			}
			continue
		}
		if inFence {
			continue
		}

		level, title, ok := parseHeading(trimmed)
		if !ok {
			continue
		}
		anchor := generateAnchor(title)
		if n, seen := anchorCounts[anchor]; seen {
			anchorCounts[anchor] = n + 1
			anchor += "-" + strconv.Itoa(n)
		} else {
			anchorCounts[anchor] = 1
		}
		sections = append(sections, Section{Level: level, Title: title, Anchor: anchor})
	}

	return sections
}

// ExtractCodeBlocks returns the fenced code blocks of a markdown document
// in order of appearance. Backtick and tilde fences are both recognized.
func ExtractCodeBlocks(markdown string) []CodeBlock {
	var blocks []CodeBlock
	var body []string
	var language string

	inFence := false
	var fence byte
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if marker, ok := fenceDelimiter(trimmed); ok {
			if !inFence {
				inFence = true
				fence = marker
				language = fenceInfo(trimmed)
				body = body[:0]
				continue
			}
			if marker == fence {
				inFence = false
				blocks = append(blocks, CodeBlock{
					Language: language,
					Code:     strings.Join(body, "\n"),
				})
				continue
			}
			// A fence of the other marker inside an open block is content.
		}
		if inFence {
			body = append(body, line)
		}
	}

	return blocks
}

// fenceDelimiter reports whether a trimmed line opens or closes a fenced
// code block, returning the fence character.
func fenceDelimiter(trimmed string) (byte, bool) {
	if strings.HasPrefix(trimmed, "```") {
		return '`', true
	}
	if strings.HasPrefix(trimmed, "~~~") {
		return '~', true
	}
	return 0, false
}

// fenceInfo returns the info string after an opening fence, e.g. "go" in "```go".
func fenceInfo(trimmed string) string {
	return strings.TrimSpace(strings.TrimLeft(trimmed, "`~"))
}

// parseHeading parses an ATX heading line into its level and title.
func parseHeading(trimmed string) (level int, title string, ok bool) {
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(trimmed) {
		return 0, "", false
	}
	if trimmed[level] != ' ' && trimmed[level] != '\t' {
		return 0, "", false
	}
	title = strings.TrimSpace(trimmed[level:])
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

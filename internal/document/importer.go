package document

import (
	"regexp"
	"strings"
)

// Paragraph is one record of the external parse service's output. The id is
// preserved verbatim so downstream references to paragraph ids stay valid.
type Paragraph struct {
	ID      string `json:"id"`
	Style   string `json:"style"`
	Content string `json:"content"`
}

// TOCEntry is one numbered entry of an extracted table of contents, e.g.
// {Number: "2.1", Title: "Related work"}.
type TOCEntry struct {
	Number string `json:"number"`
	Title  string `json:"title"`
}

// MapParagraphs converts a flat parsed paragraph list into block seed state.
// Styles map by case-insensitive substring; when a table of contents is
// present it overrides the style-derived type for matching paragraphs, with
// the numbering depth deciding the heading level and the number token
// stripped from the content. Misses of any kind fall back silently.
func MapParagraphs(paragraphs []Paragraph, toc []TOCEntry) []Block {
	blocks := make([]Block, 0, len(paragraphs))
	for _, p := range paragraphs {
		b := Block{
			ID:      p.ID,
			Type:    typeFromStyle(p.Style),
			Content: p.Content,
		}
		if b.ID == "" {
			b.ID = NewBlock(b.Type).ID
		}
		if len(toc) > 0 {
			if t, content, ok := tocOverride(p.Content, toc); ok {
				b.Type = t
				b.Content = content
			}
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func typeFromStyle(style string) Type {
	s := strings.ToLower(style)
	switch {
	case strings.Contains(s, "heading 1"):
		return TypeHeading1
	case strings.Contains(s, "heading 2"):
		return TypeHeading2
	case strings.Contains(s, "heading 3"):
		return TypeHeading3
	case strings.Contains(s, "caption"):
		return TypeCaption
	}
	return TypeParagraph
}

// tocOverride looks the paragraph up in the table of contents: an entry
// matches when its title equals the trimmed content exactly, or when its
// number prefixes the content. Number matches prefer the longest number, so
// "1" cannot shadow "1.1". The entry's numbering depth picks the heading
// level; on a number match the leading number token is stripped.
func tocOverride(content string, toc []TOCEntry) (Type, string, bool) {
	trimmed := strings.TrimSpace(content)
	var (
		best     TOCEntry
		bestRest string
	)
	for _, entry := range toc {
		if entry.Title != "" && entry.Title == trimmed {
			return levelType(tocDepth(entry.Number)), trimmed, true
		}
		if entry.Number == "" || !strings.HasPrefix(trimmed, entry.Number) {
			continue
		}
		if len(entry.Number) <= len(best.Number) && best.Number != "" {
			continue
		}
		// The number comes from parsed user content: escape it before using
		// it as a pattern.
		re := regexp.MustCompile(`^` + regexp.QuoteMeta(entry.Number) + `\.?\s*`)
		if loc := re.FindString(trimmed); loc != "" {
			rest := strings.TrimSpace(trimmed[len(loc):])
			if rest == "" {
				continue
			}
			best = entry
			bestRest = rest
		}
	}
	if best.Number == "" {
		return TypeParagraph, "", false
	}
	return levelType(tocDepth(best.Number)), bestRest, true
}

// tocDepth counts numbering segments leniently: "1" -> 1, "1.2" -> 2,
// anything with three or more segments -> 3.
func tocDepth(number string) int {
	depth := strings.Count(number, ".") + 1
	if depth > 3 {
		depth = 3
	}
	if depth < 1 {
		depth = 1
	}
	return depth
}

func levelType(depth int) Type {
	switch depth {
	case 1:
		return TypeHeading1
	case 2:
		return TypeHeading2
	}
	return TypeHeading3
}

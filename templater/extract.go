package templater

import (
	"sort"
	"strings"
	"unicode"

	gslides "github.com/smorand/gslides-go"
)

// Markdown extraction is the reverse of the render path: runs at heading
// sizes read back as #-prefixed lines, inline styles as **, *, ~~, backticks
// and [text](url), bulleted paragraphs as list items. A deck built from
// Markdown extracts to Markdown that rebuilds the same deck.

// TextMarkdown renders a text body back into Markdown.
func TextMarkdown(tc *gslides.TextContent) string {
	if tc == nil {
		return ""
	}
	var b strings.Builder
	prefix := ""
	atStart := true
	for _, te := range tc.TextElements {
		switch {
		case te == nil:
		case te.ParagraphMarker != nil:
			prefix = bulletPrefix(te.ParagraphMarker.Bullet)
			atStart = true
		case te.TextRun != nil && te.TextRun.Content != nil:
			content := *te.TextRun.Content
			if content == "" {
				continue
			}
			if atStart {
				b.WriteString(prefix)
				if lvl := headingLevel(te.TextRun.Style); lvl > 0 && prefix == "" {
					b.WriteString(strings.Repeat("#", lvl) + " ")
				}
				atStart = false
			}
			b.WriteString(runMarkdown(content, te.TextRun.Style, prefix != ""))
			if strings.HasSuffix(content, "\n") {
				atStart = true
			}
		case te.AutoText != nil && te.AutoText.Content != nil:
			b.WriteString(*te.AutoText.Content)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// runMarkdown wraps one run's text in the marks its style calls for. The
// trailing newline stays outside the marks; plain paragraphs get a blank
// line after them so they parse back as separate paragraphs, list items
// stay on consecutive lines.
func runMarkdown(content string, style *gslides.TextStyle, inList bool) string {
	text := strings.TrimRight(content, "\n")
	var tail string
	if len(text) < len(content) {
		tail = "\n"
		if !inList {
			tail = "\n\n"
		}
	}
	if text == "" {
		return tail
	}
	if style == nil {
		return text + tail
	}

	wrapped := text
	switch {
	case headingLevel(style) > 0:
		// the # prefix already carries the weight
	case isCodeStyle(style):
		wrapped = "`" + text + "`"
	default:
		bold := boolVal(style.Bold)
		italic := boolVal(style.Italic)
		switch {
		case bold && italic:
			wrapped = "***" + text + "***"
		case bold:
			wrapped = "**" + text + "**"
		case italic:
			wrapped = "*" + text + "*"
		}
		if boolVal(style.Strikethrough) {
			wrapped = "~~" + wrapped + "~~"
		}
	}
	if url := linkURL(style); url != "" {
		wrapped = "[" + wrapped + "](" + url + ")"
	}
	return wrapped + tail
}

// headingLevel infers a heading from a run's style: at least 16pt and bold.
// Sizes land on the nearest render size at or below them.
func headingLevel(style *gslides.TextStyle) int {
	if style == nil || style.FontSize == nil || style.FontSize.Magnitude == nil {
		return 0
	}
	if !boolVal(style.Bold) {
		return 0
	}
	size := *style.FontSize.Magnitude
	for level := 1; level <= 6; level++ {
		if size >= headingSizes[level] {
			return level
		}
	}
	return 0
}

func isCodeStyle(style *gslides.TextStyle) bool {
	return style != nil && style.FontFamily != nil && strings.Contains(*style.FontFamily, "Courier")
}

func linkURL(style *gslides.TextStyle) string {
	if style == nil || style.Link == nil || style.Link.URL == nil {
		return ""
	}
	return *style.Link.URL
}

func boolVal(p *bool) bool { return p != nil && *p }

// bulletPrefix maps a paragraph bullet to a list marker, two spaces of
// indent per nesting level. Numbered glyphs come back as ordered items.
func bulletPrefix(bu *gslides.Bullet) string {
	if bu == nil {
		return ""
	}
	var indent int
	if bu.NestingLevel != nil {
		indent = int(*bu.NestingLevel)
	}
	marker := "- "
	if bu.Glyph != nil && strings.IndexFunc(*bu.Glyph, unicode.IsDigit) >= 0 {
		marker = "1. "
	}
	return strings.Repeat("  ", indent) + marker
}

// ElementMarkdown renders one page element: shapes by their text, images as
// image links, tables as pipe tables, groups by their children.
func ElementMarkdown(el *gslides.PageElement) string {
	if el == nil {
		return ""
	}
	switch v := el.Element.(type) {
	case *gslides.Shape:
		return TextMarkdown(v.Text)
	case *gslides.Image:
		alt := "Image"
		if el.Title != nil && strings.TrimSpace(*el.Title) != "" {
			alt = strings.TrimSpace(*el.Title)
		}
		var url string
		switch {
		case v.SourceURL != nil:
			url = *v.SourceURL
		case v.ContentURL != nil:
			url = *v.ContentURL
		}
		return "![" + alt + "](" + url + ")"
	case *gslides.Table:
		return tableMarkdown(v)
	case *gslides.Group:
		var parts []string
		for _, child := range v.Children {
			if s := ElementMarkdown(child); strings.TrimSpace(s) != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n\n")
	}
	return ""
}

func tableMarkdown(t *gslides.Table) string {
	if len(t.TableRows) == 0 {
		return ""
	}
	var lines []string
	for i, row := range t.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			if cell == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, strings.TrimSpace(strings.ReplaceAll(cell.Text.Text(), "\n", " ")))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			seps := make([]string, len(cells))
			for j := range seps {
				seps[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

// SlideMarkdown renders every element of a slide in reading order, top to
// bottom then left to right.
func SlideMarkdown(page *gslides.Page) string {
	if page == nil {
		return ""
	}
	elements := make([]*gslides.PageElement, len(page.PageElements))
	copy(elements, page.PageElements)
	sort.SliceStable(elements, func(i, j int) bool {
		yi, xi := elementOrigin(elements[i])
		yj, xj := elementOrigin(elements[j])
		if yi != yj {
			return yi < yj
		}
		return xi < xj
	})

	var parts []string
	for _, el := range elements {
		if s := ElementMarkdown(el); strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// elementOrigin is the element's top-left corner in EMU, for ordering.
func elementOrigin(el *gslides.PageElement) (y, x float64) {
	if el == nil || el.Transform == nil {
		return 0, 0
	}
	tr := el.Transform
	scale := 1.0
	if tr.Unit == gslides.UnitPT {
		scale = gslides.EMUPerPoint
	}
	if tr.TranslateY != nil {
		y = *tr.TranslateY * scale
	}
	if tr.TranslateX != nil {
		x = *tr.TranslateX * scale
	}
	return y, x
}

// PresentationMarkdown renders the whole deck, slides separated by blank
// lines. Each slide opens with its heading box, so the output splits back
// into the same slides.
func PresentationMarkdown(p *gslides.Presentation) string {
	if p == nil {
		return ""
	}
	var parts []string
	for _, slide := range p.Slides {
		if s := SlideMarkdown(slide); strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

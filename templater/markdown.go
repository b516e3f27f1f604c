package templater

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	gslides "github.com/smorand/gslides-go"
)

// headingSizes maps Markdown heading levels to font sizes in points.
var headingSizes = map[int]float64{1: 36, 2: 28, 3: 24, 4: 20, 5: 18, 6: 16}

var markdownParser = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

func parseMarkdown(src []byte) ast.Node {
	return markdownParser.Parser().Parse(gtext.NewReader(src))
}

// CreateFromMarkdown creates a new presentation from a Markdown document,
// one slide per top-level heading. Content before the first heading becomes
// part of the first slide. The blank slide a new presentation starts with is
// removed once the rendered slides are in place.
func (t *Templater) CreateFromMarkdown(ctx context.Context, title, source string) (*gslides.Presentation, error) {
	created, err := t.backend.CreatePresentation(ctx, &gslides.Presentation{Title: gslides.String(title)})
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	id := created.PresentationID

	var added int
	for _, section := range splitSlideSections(source) {
		if strings.TrimSpace(section) == "" {
			continue
		}
		if _, err := t.AddMarkdownSlide(ctx, id, section, nil); err != nil {
			return nil, err
		}
		added++
	}

	if added > 0 && len(created.Slides) > 0 {
		_, err := t.backend.BatchUpdateAll(ctx, id, []*gslides.Request{{
			DeleteObject: &gslides.DeleteObjectRequest{ObjectID: created.Slides[0].ObjectID},
		}})
		if err != nil {
			return nil, fmt.Errorf("remove default slide: %w", err)
		}
	}

	t.logger.Info("created presentation from markdown",
		slog.String("presentation_id", id),
		slog.Int("slides", added),
	)
	return t.backend.GetPresentation(ctx, id)
}

// splitSlideSections cuts a document into per-slide sections at top-level
// headings. The first section keeps any preamble before the first heading.
func splitSlideSections(source string) []string {
	var sections []string
	var current []string
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "# ") && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}
	return sections
}

// AddMarkdownSlide appends a blank slide rendered from Markdown and returns
// its object id. insertionIndex places the slide; nil appends. Headings,
// body text, and images become separate elements laid out top to bottom.
func (t *Templater) AddMarkdownSlide(ctx context.Context, presentationID, source string, insertionIndex *int64) (string, error) {
	slideID := gslides.GenerateObjectID("slide")
	reqs := []*gslides.Request{{CreateSlide: &gslides.CreateSlideRequest{
		ObjectID:             slideID,
		InsertionIndex:       insertionIndex,
		SlideLayoutReference: &gslides.LayoutReference{PredefinedLayout: gslides.LayoutBlank},
	}}}

	src := []byte(source)
	y := 50.0
	for _, comp := range splitComponents(parseMarkdown(src), src) {
		switch comp.kind {
		case componentHeading:
			boxID := gslides.GenerateObjectID("textbox")
			reqs = append(reqs, textBoxRequest(boxID, slideID, TextBoxOptions{X: 50, Y: y, Width: 650, Height: 80}))
			prog := &textProgram{}
			prog.block(comp.nodes[0], src)
			reqs = append(reqs, prog.requests(boxID)...)
			y += 100

		case componentBody:
			prog := &textProgram{}
			for _, n := range comp.nodes {
				prog.block(n, src)
			}
			height := min(300.0, max(150.0, float64(prog.length)/3))
			boxID := gslides.GenerateObjectID("textbox")
			reqs = append(reqs, textBoxRequest(boxID, slideID, TextBoxOptions{X: 50, Y: y, Width: 650, Height: height}))
			reqs = append(reqs, prog.requests(boxID)...)
			y += height + 20

		case componentImage:
			reqs = append(reqs, &gslides.Request{CreateImage: &gslides.CreateImageRequest{
				ObjectID: gslides.GenerateObjectID("image"),
				URL:      comp.url,
				ElementProperties: &gslides.PageElementProperties{
					PageObjectID: slideID,
					Size:         sizePT(400, 300),
					Transform:    translatePT(50, y),
				},
			}})
			y += 320
		}
	}

	if _, err := t.backend.BatchUpdateAll(ctx, presentationID, reqs); err != nil {
		return "", fmt.Errorf("add markdown slide: %w", err)
	}
	return slideID, nil
}

type componentKind int

const (
	componentHeading componentKind = iota
	componentBody
	componentImage
)

// component is one visual element of a slide: a heading box, a body box
// collecting contiguous non-heading blocks, or a standalone image.
type component struct {
	kind  componentKind
	nodes []ast.Node
	url   string
}

func splitComponents(doc ast.Node, src []byte) []component {
	var comps []component
	var body []ast.Node
	flush := func() {
		if len(body) > 0 {
			comps = append(comps, component{kind: componentBody, nodes: body})
			body = nil
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			flush()
			comps = append(comps, component{kind: componentHeading, nodes: []ast.Node{h}})
			continue
		}
		if img, ok := soleImage(n); ok {
			flush()
			comps = append(comps, component{kind: componentImage, url: string(img.Destination)})
			continue
		}
		body = append(body, n)
	}
	flush()
	return comps
}

// soleImage reports whether the block is a paragraph holding a single image
// and nothing else.
func soleImage(n ast.Node) (*ast.Image, bool) {
	if _, ok := n.(*ast.Paragraph); !ok {
		return nil, false
	}
	if n.ChildCount() != 1 {
		return nil, false
	}
	img, ok := n.FirstChild().(*ast.Image)
	return img, ok
}

// textProgram is the flattened form of a Markdown fragment: the literal text
// to insert, plus the style and bullet ranges to lay over it afterwards.
// Offsets count UTF-16 code units, the unit the API's text ranges use.
type textProgram struct {
	text    strings.Builder
	length  int64
	styles  []styleSpan
	bullets []bulletSpan
}

type styleSpan struct {
	start, end int64
	style      *gslides.TextStyle
	fields     string
}

type bulletSpan struct {
	start, end int64
	preset     gslides.BulletGlyphPreset
}

// markdownProgram parses source and assembles its text program.
func markdownProgram(source string) *textProgram {
	src := []byte(source)
	doc := parseMarkdown(src)
	p := &textProgram{}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		p.block(n, src)
	}
	return p
}

func (p *textProgram) writeString(s string) {
	p.text.WriteString(s)
	p.length += utf16Len(s)
}

// styleSpan records a style over [start, current). Empty ranges are dropped.
func (p *textProgram) styleSpan(start int64, style *gslides.TextStyle, fields string) {
	if p.length > start {
		p.styles = append(p.styles, styleSpan{start: start, end: p.length, style: style, fields: fields})
	}
}

func (p *textProgram) block(n ast.Node, src []byte) {
	switch b := n.(type) {
	case *ast.Heading:
		start := p.length
		p.inlineChildren(b, src)
		size, ok := headingSizes[b.Level]
		if !ok {
			size = 16
		}
		p.styleSpan(start, &gslides.TextStyle{
			FontSize: gslides.Points(size),
			Bold:     gslides.Bool(true),
		}, "fontSize,bold")
		p.writeString("\n")

	case *ast.Paragraph, *ast.TextBlock:
		p.inlineChildren(b, src)
		p.writeString("\n")

	case *ast.List:
		p.list(b, src, 0)

	case *ast.Blockquote:
		start := p.length
		p.writeString(`"`)
		for child := b.FirstChild(); child != nil; child = child.NextSibling() {
			if child != b.FirstChild() {
				p.writeString(" ")
			}
			p.inlineChildren(child, src)
		}
		p.writeString(`"`)
		p.styleSpan(start, &gslides.TextStyle{Italic: gslides.Bool(true)}, "italic")
		p.writeString("\n")

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		start := p.length
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			p.writeString(string(seg.Value(src)))
		}
		p.styleSpan(start, codeTextStyle(), codeFields)
		p.endLine()

	case *ast.ThematicBreak:
		p.writeString("\n")
	}
}

func (p *textProgram) list(l *ast.List, src []byte, indent int) {
	preset := gslides.BulletDiscCircleSquare
	if l.IsOrdered() {
		preset = gslides.NumberedDigitAlphaRoman
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				p.list(nested, src, indent+1)
				continue
			}
			// The API derives each bullet's nesting level from leading
			// tabs and strips them when the bullets apply.
			start := p.length
			p.writeString(strings.Repeat("\t", indent))
			p.inlineChildren(child, src)
			end := p.length
			p.writeString("\n")
			if end > start {
				p.bullets = append(p.bullets, bulletSpan{start: start, end: end, preset: preset})
			}
		}
	}
}

func (p *textProgram) inlineChildren(n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		p.inline(c, src)
	}
}

func (p *textProgram) inline(n ast.Node, src []byte) {
	switch i := n.(type) {
	case *ast.Text:
		p.writeString(string(i.Segment.Value(src)))
		if i.SoftLineBreak() {
			p.writeString(" ")
		}
		if i.HardLineBreak() {
			p.writeString("\n")
		}

	case *ast.String:
		p.writeString(string(i.Value))

	case *ast.CodeSpan:
		start := p.length
		p.inlineChildren(i, src)
		p.styleSpan(start, codeTextStyle(), codeFields)

	case *ast.Emphasis:
		start := p.length
		p.inlineChildren(i, src)
		if i.Level >= 2 {
			p.styleSpan(start, &gslides.TextStyle{Bold: gslides.Bool(true)}, "bold")
		} else {
			p.styleSpan(start, &gslides.TextStyle{Italic: gslides.Bool(true)}, "italic")
		}

	case *east.Strikethrough:
		start := p.length
		p.inlineChildren(i, src)
		p.styleSpan(start, &gslides.TextStyle{Strikethrough: gslides.Bool(true)}, "strikethrough")

	case *ast.Link:
		start := p.length
		p.inlineChildren(i, src)
		p.styleSpan(start, linkTextStyle(string(i.Destination)), linkFields)

	case *ast.AutoLink:
		label := string(i.Label(src))
		url := label
		if i.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(label, "mailto:") {
			url = "mailto:" + label
		}
		start := p.length
		p.writeString(label)
		p.styleSpan(start, linkTextStyle(url), linkFields)

	default:
		// Images contribute their alt text; unknown inline kinds their
		// children's text.
		p.inlineChildren(n, src)
	}
}

// endLine closes the current paragraph unless the last write already did.
func (p *textProgram) endLine() {
	if s := p.text.String(); s != "" && !strings.HasSuffix(s, "\n") {
		p.writeString("\n")
	}
}

// requests renders the program against a shape: the assembled text inserted
// at index 0, then the style ranges, then the bullet ranges. Bullets go last
// and back to front because applying one strips the leading tabs inside its
// range, shifting every index after it.
func (p *textProgram) requests(objectID string) []*gslides.Request {
	text := strings.TrimSuffix(p.text.String(), "\n")
	if text == "" {
		return nil
	}
	total := utf16Len(text)

	reqs := []*gslides.Request{{InsertText: &gslides.InsertTextRequest{
		ObjectID:       objectID,
		Text:           text,
		InsertionIndex: gslides.Int64(0),
	}}}
	for _, s := range p.styles {
		end := min(s.end, total)
		if s.start >= end {
			continue
		}
		reqs = append(reqs, &gslides.Request{UpdateTextStyle: &gslides.UpdateTextStyleRequest{
			ObjectID:  objectID,
			Style:     s.style,
			Fields:    s.fields,
			TextRange: fixedRange(s.start, end),
		}})
	}
	for i := len(p.bullets) - 1; i >= 0; i-- {
		b := p.bullets[i]
		end := min(b.end, total)
		if b.start >= end {
			continue
		}
		reqs = append(reqs, &gslides.Request{CreateParagraphBullets: &gslides.CreateParagraphBulletsRequest{
			ObjectID:     objectID,
			BulletPreset: b.preset,
			TextRange:    fixedRange(b.start, end),
		}})
	}
	return reqs
}

func fixedRange(start, end int64) *gslides.Range {
	return &gslides.Range{
		Type:       gslides.RangeTypeFixed,
		StartIndex: gslides.Int64(start),
		EndIndex:   gslides.Int64(end),
	}
}

const (
	codeFields = "fontFamily,foregroundColor"
	linkFields = "foregroundColor,underline,link"
)

func codeTextStyle() *gslides.TextStyle {
	return &gslides.TextStyle{
		FontFamily: gslides.String("Courier New"),
		ForegroundColor: &gslides.OptionalColor{
			OpaqueColor: &gslides.OpaqueColor{RgbColor: gslides.RGB(0.8, 0.2, 0.2)},
		},
	}
}

func linkTextStyle(url string) *gslides.TextStyle {
	return &gslides.TextStyle{
		ForegroundColor: &gslides.OptionalColor{
			OpaqueColor: &gslides.OpaqueColor{RgbColor: &gslides.RgbColor{Blue: gslides.Float64(1)}},
		},
		Underline: gslides.Bool(true),
		Link:      &gslides.Link{URL: gslides.String(url)},
	}
}

// utf16Len counts s in UTF-16 code units; characters beyond the basic plane
// take two.
func utf16Len(s string) int64 {
	var n int64
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}

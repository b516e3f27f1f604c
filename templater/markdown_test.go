package templater

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gslides "github.com/smorand/gslides-go"
)

func TestMarkdownProgramPlainText(t *testing.T) {
	reqs := markdownProgram("hello world").requests("box")
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].InsertText)
	assert.Equal(t, "hello world", reqs[0].InsertText.Text)
	assert.Equal(t, int64(0), *reqs[0].InsertText.InsertionIndex)
}

func TestMarkdownProgramEmpty(t *testing.T) {
	assert.Empty(t, markdownProgram("").requests("box"))
	assert.Empty(t, markdownProgram("   \n\n").requests("box"))
}

func TestMarkdownProgramHeadingSizes(t *testing.T) {
	tests := []struct {
		source string
		size   float64
	}{
		{"# h", 36},
		{"## h", 28},
		{"### h", 24},
		{"#### h", 20},
		{"##### h", 18},
		{"###### h", 16},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			reqs := markdownProgram(tt.source).requests("box")
			require.Len(t, reqs, 2)
			assert.Equal(t, "h", reqs[0].InsertText.Text)

			st := reqs[1].UpdateTextStyle
			require.NotNil(t, st)
			assert.Equal(t, "fontSize,bold", st.Fields)
			assert.Equal(t, tt.size, *st.Style.FontSize.Magnitude)
			assert.Equal(t, gslides.UnitPT, st.Style.FontSize.Unit)
			assert.True(t, *st.Style.Bold)
			assert.Equal(t, int64(0), *st.TextRange.StartIndex)
			assert.Equal(t, int64(1), *st.TextRange.EndIndex)
		})
	}
}

func TestMarkdownProgramInlineStyles(t *testing.T) {
	prog := markdownProgram("plain **bold** *it* ~~gone~~ `code`")
	reqs := prog.requests("box")
	require.Len(t, reqs, 5)
	assert.Equal(t, "plain bold it gone code", reqs[0].InsertText.Text)

	type span struct {
		fields     string
		start, end int64
	}
	var got []span
	for _, r := range reqs[1:] {
		require.NotNil(t, r.UpdateTextStyle)
		got = append(got, span{
			fields: r.UpdateTextStyle.Fields,
			start:  *r.UpdateTextStyle.TextRange.StartIndex,
			end:    *r.UpdateTextStyle.TextRange.EndIndex,
		})
	}
	want := []span{
		{"bold", 6, 10},
		{"italic", 11, 13},
		{"strikethrough", 14, 18},
		{codeFields, 19, 23},
	}
	assert.Equal(t, want, got)
}

func TestMarkdownProgramBoldItalic(t *testing.T) {
	reqs := markdownProgram("***both***").requests("box")
	require.Len(t, reqs, 3)
	assert.Equal(t, "both", reqs[0].InsertText.Text)
	// strong closes first, then the wrapping emphasis
	assert.Equal(t, "bold", reqs[1].UpdateTextStyle.Fields)
	assert.Equal(t, "italic", reqs[2].UpdateTextStyle.Fields)
	for _, r := range reqs[1:] {
		assert.Equal(t, int64(0), *r.UpdateTextStyle.TextRange.StartIndex)
		assert.Equal(t, int64(4), *r.UpdateTextStyle.TextRange.EndIndex)
	}
}

func TestMarkdownProgramLink(t *testing.T) {
	reqs := markdownProgram("[docs](https://example.com/doc)").requests("box")
	require.Len(t, reqs, 2)
	assert.Equal(t, "docs", reqs[0].InsertText.Text)

	st := reqs[1].UpdateTextStyle
	assert.Equal(t, linkFields, st.Fields)
	assert.True(t, *st.Style.Underline)
	assert.Equal(t, "https://example.com/doc", *st.Style.Link.URL)
	assert.Equal(t, 1.0, *st.Style.ForegroundColor.OpaqueColor.RgbColor.Blue)
}

func TestMarkdownProgramCodeStyle(t *testing.T) {
	reqs := markdownProgram("`x`").requests("box")
	require.Len(t, reqs, 2)
	st := reqs[1].UpdateTextStyle
	assert.Equal(t, codeFields, st.Fields)
	assert.Equal(t, "Courier New", *st.Style.FontFamily)
	rgb := st.Style.ForegroundColor.OpaqueColor.RgbColor
	assert.Equal(t, 0.8, *rgb.Red)
	assert.Equal(t, 0.2, *rgb.Green)
	assert.Equal(t, 0.2, *rgb.Blue)
}

func TestMarkdownProgramSupplementaryPlaneOffsets(t *testing.T) {
	// The emoji weighs two UTF-16 code units, so the bold range starts at 3.
	reqs := markdownProgram("\U0001F600 **bold**").requests("box")
	require.Len(t, reqs, 2)
	st := reqs[1].UpdateTextStyle
	assert.Equal(t, int64(3), *st.TextRange.StartIndex)
	assert.Equal(t, int64(7), *st.TextRange.EndIndex)
}

func TestMarkdownProgramBullets(t *testing.T) {
	prog := markdownProgram("- one\n- two\n  - nested")
	reqs := prog.requests("box")

	require.NotNil(t, reqs[0].InsertText)
	assert.Equal(t, "one\ntwo\n\tnested", reqs[0].InsertText.Text)

	var bullets []*gslides.CreateParagraphBulletsRequest
	for _, r := range reqs[1:] {
		require.NotNil(t, r.CreateParagraphBullets)
		bullets = append(bullets, r.CreateParagraphBullets)
	}
	require.Len(t, bullets, 3)

	// applied back to front: tab stripping must not shift pending ranges
	assert.Equal(t, int64(8), *bullets[0].TextRange.StartIndex)
	assert.Equal(t, int64(15), *bullets[0].TextRange.EndIndex)
	assert.Equal(t, int64(4), *bullets[1].TextRange.StartIndex)
	assert.Equal(t, int64(7), *bullets[1].TextRange.EndIndex)
	assert.Equal(t, int64(0), *bullets[2].TextRange.StartIndex)
	assert.Equal(t, int64(3), *bullets[2].TextRange.EndIndex)
	for _, b := range bullets {
		assert.Equal(t, gslides.BulletDiscCircleSquare, b.BulletPreset)
	}
}

func TestMarkdownProgramOrderedList(t *testing.T) {
	reqs := markdownProgram("1. first\n2. second").requests("box")
	assert.Equal(t, "first\nsecond", reqs[0].InsertText.Text)
	for _, r := range reqs[1:] {
		require.NotNil(t, r.CreateParagraphBullets)
		assert.Equal(t, gslides.NumberedDigitAlphaRoman, r.CreateParagraphBullets.BulletPreset)
	}
}

func TestMarkdownProgramBlockquote(t *testing.T) {
	reqs := markdownProgram("> wise words").requests("box")
	require.Len(t, reqs, 2)
	assert.Equal(t, `"wise words"`, reqs[0].InsertText.Text)
	st := reqs[1].UpdateTextStyle
	assert.Equal(t, "italic", st.Fields)
	assert.Equal(t, int64(0), *st.TextRange.StartIndex)
	assert.Equal(t, int64(12), *st.TextRange.EndIndex)
}

func TestMarkdownProgramFencedCode(t *testing.T) {
	reqs := markdownProgram("```\ncode line\n```").requests("box")
	require.Len(t, reqs, 2)
	assert.Equal(t, "code line", reqs[0].InsertText.Text)

	st := reqs[1].UpdateTextStyle
	assert.Equal(t, codeFields, st.Fields)
	// span end clamps to the trimmed text
	assert.Equal(t, int64(0), *st.TextRange.StartIndex)
	assert.Equal(t, int64(9), *st.TextRange.EndIndex)
}

func TestMarkdownProgramLineBreaks(t *testing.T) {
	soft := markdownProgram("line one\nline two").requests("box")
	assert.Equal(t, "line one line two", soft[0].InsertText.Text)

	hard := markdownProgram("line one  \nline two").requests("box")
	assert.Equal(t, "line one\nline two", hard[0].InsertText.Text)
}

func TestMarkdownProgramImageAltText(t *testing.T) {
	reqs := markdownProgram("see ![the chart](https://x/c.png) here").requests("box")
	assert.Equal(t, "see the chart here", reqs[0].InsertText.Text)
}

func TestSplitSlideSections(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "two headings",
			source: "# A\nbody\n# B\nmore",
			want:   []string{"# A\nbody", "# B\nmore"},
		},
		{
			name:   "preamble stays with first section",
			source: "intro\n# A\nx",
			want:   []string{"intro", "# A\nx"},
		},
		{
			name:   "no headings",
			source: "just\ntext",
			want:   []string{"just\ntext"},
		},
		{
			name:   "indented heading counts",
			source: "# A\n  # B",
			want:   []string{"# A", "  # B"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSlideSections(tt.source))
		})
	}
}

func TestAddMarkdownSlideLayout(t *testing.T) {
	f := newFakeBackend()
	tm := newTestTemplater(f)

	slideID, err := tm.AddMarkdownSlide(context.Background(), "pres1",
		"# Head\n\nBody text\n\n![alt](https://x/i.png)", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(slideID, "slide"), "got id %q", slideID)

	require.Len(t, f.batches, 1)
	reqs := f.batches[0].requests

	cs := reqs[0].CreateSlide
	require.NotNil(t, cs)
	assert.Equal(t, slideID, cs.ObjectID)
	assert.Nil(t, cs.InsertionIndex)
	assert.Equal(t, gslides.LayoutBlank, cs.SlideLayoutReference.PredefinedLayout)

	// heading box at the top, body box below it, then the image
	var boxes []*gslides.CreateShapeRequest
	var images []*gslides.CreateImageRequest
	for _, r := range reqs[1:] {
		if r.CreateShape != nil {
			boxes = append(boxes, r.CreateShape)
		}
		if r.CreateImage != nil {
			images = append(images, r.CreateImage)
		}
	}
	require.Len(t, boxes, 2)
	assert.Equal(t, slideID, boxes[0].ElementProperties.PageObjectID)
	assert.Equal(t, 50.0, *boxes[0].ElementProperties.Transform.TranslateY)
	assert.Equal(t, 80.0, *boxes[0].ElementProperties.Size.Height.Dimension.Magnitude)
	assert.Equal(t, 150.0, *boxes[1].ElementProperties.Transform.TranslateY)

	require.Len(t, images, 1)
	assert.Equal(t, "https://x/i.png", images[0].URL)
	assert.Equal(t, 320.0, *images[0].ElementProperties.Transform.TranslateY)
}

func TestAddMarkdownSlideInsertionIndex(t *testing.T) {
	f := newFakeBackend()
	tm := newTestTemplater(f)

	_, err := tm.AddMarkdownSlide(context.Background(), "pres1", "text", gslides.Int64(2))
	require.NoError(t, err)

	cs := f.batches[0].requests[0].CreateSlide
	require.NotNil(t, cs.InsertionIndex)
	assert.Equal(t, int64(2), *cs.InsertionIndex)
}

func TestCreateFromMarkdown(t *testing.T) {
	f := newFakeBackend()
	tm := newTestTemplater(f)

	pres, err := tm.CreateFromMarkdown(context.Background(), "My Deck", "# One\nalpha\n# Two\nbeta")
	require.NoError(t, err)
	require.NotNil(t, pres)
	assert.Equal(t, "created-1", pres.PresentationID)

	require.Len(t, f.created, 1)
	assert.Equal(t, "My Deck", *f.created[0].Title)

	// one batch per slide, then the default-slide removal
	require.Len(t, f.batches, 3)
	assert.NotNil(t, f.batches[0].requests[0].CreateSlide)
	assert.NotNil(t, f.batches[1].requests[0].CreateSlide)

	last := f.batches[2].requests
	require.Len(t, last, 1)
	require.NotNil(t, last[0].DeleteObject)
	assert.Equal(t, "default-slide", last[0].DeleteObject.ObjectID)
}

func TestCreateFromMarkdownEmptySource(t *testing.T) {
	f := newFakeBackend()
	tm := newTestTemplater(f)

	pres, err := tm.CreateFromMarkdown(context.Background(), "Empty", "   \n  ")
	require.NoError(t, err)
	require.NotNil(t, pres)
	// nothing rendered, so the default slide stays
	assert.Empty(t, f.batches)
}

func TestUTF16Len(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"abc", 3},
		{"café", 4},
		{"\U0001F600", 2},
		{"a\U0001F600b", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, utf16Len(tt.in), "utf16Len(%q)", tt.in)
	}
}

package templater

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gslides "github.com/smorand/gslides-go"
)

func TestExtractPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"no placeholders", "plain text", nil},
		{"single", "Hello {{name}}!", []string{"name"}},
		{"duplicates", "{{a}} then {{a}}", []string{"a", "a"}},
		{"adjacent", "{{a}}{{b}}", []string{"a", "b"}},
		{"inner braces win", "{{a{{b}}}}", []string{"b"}},
		{"spaces kept", "{{ padded }}", []string{" padded "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlaceholders(tt.text))
		})
	}
}

func TestPlaceholderContext(t *testing.T) {
	short := "Dear {{name}},\nwelcome."
	assert.Equal(t, "Dear {{name}}, welcome.", placeholderContext(short, "name"))

	long := strings.Repeat("x", 60) + "{{k}}" + strings.Repeat("y", 60)
	got := placeholderContext(long, "k")
	assert.Equal(t, "..."+strings.Repeat("x", 40)+"{{k}}"+strings.Repeat("y", 40)+"...", got)

	missing := placeholderContext("no needle here", "k")
	assert.Equal(t, "no needle here", missing)
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{true, "true"},
		{42, "42"},
		{int64(7), "7"},
		{3.5, "3.5"},
		{float32(2.5), "2.5"},
		{[]int{1, 2}, "[1 2]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, renderValue(tt.in), "%#v", tt.in)
	}
}

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://x.test/pic.png", true},
		{"http://x.test/pic.jpeg", true},
		{"https://x.test/pic.PNG", true},
		{"https://x.test/pic.png?v=2", true},
		{"https://x.test/pic.svg#frag", true},
		{"https://x.test/page.html", false},
		{"ftp://x.test/pic.png", false},
		{"pic.png", false},
		{"https://x.test/pic", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isImageURL(tt.url), tt.url)
	}
}

func TestFindPlaceholders(t *testing.T) {
	inner := textShape("inner", "Hello {{name}}!\n")
	group := &gslides.PageElement{
		ObjectID: "grp",
		Element:  &gslides.Group{Children: []*gslides.PageElement{inner}},
	}
	table := &gslides.PageElement{
		ObjectID: "tbl",
		Element: &gslides.Table{TableRows: []*gslides.TableRow{
			{TableCells: []*gslides.TableCell{
				{Text: textContent("{{name}} and {{date}}\n")},
				nil,
			}},
		}},
	}
	p := &gslides.Presentation{Slides: []*gslides.Page{
		{ObjectID: "s1", PageElements: []*gslides.PageElement{group}},
		{ObjectID: "s2", PageElements: []*gslides.PageElement{table}},
	}}

	sites := FindPlaceholders(p)
	require.Len(t, sites, 3)

	assert.Equal(t, "name", sites[0].Name)
	assert.Equal(t, "s1", sites[0].SlideID)
	assert.Equal(t, 0, sites[0].SlideIndex)
	assert.Equal(t, "inner", sites[0].ElementID)
	assert.Contains(t, sites[0].Context, "Hello {{name}}!")

	assert.Equal(t, "name", sites[1].Name)
	assert.Equal(t, "tbl", sites[1].ElementID)
	assert.Equal(t, 1, sites[1].SlideIndex)

	assert.Equal(t, "date", sites[2].Name)
	assert.Equal(t, "s2", sites[2].SlideID)
}

func TestFillPlaceholdersText(t *testing.T) {
	f := newFakeBackend()
	f.occurrences["{{name}}"] = 2
	tm := newTestTemplater(f)

	report, err := tm.FillPlaceholders(context.Background(), "p1", map[string]any{
		"name":  "Ada",
		"count": 3,
	})
	require.NoError(t, err)

	require.Len(t, f.batches, 1)
	reqs := f.batches[0].requests
	require.Len(t, reqs, 2)

	// keys apply in sorted order
	require.NotNil(t, reqs[0].ReplaceAllText)
	assert.Equal(t, "{{count}}", reqs[0].ReplaceAllText.ContainsText.Text)
	assert.Equal(t, "3", reqs[0].ReplaceAllText.ReplaceText)
	require.NotNil(t, reqs[0].ReplaceAllText.ContainsText.MatchCase)
	assert.True(t, *reqs[0].ReplaceAllText.ContainsText.MatchCase)
	assert.Equal(t, "{{name}}", reqs[1].ReplaceAllText.ContainsText.Text)

	assert.Equal(t, map[string]int64{"count": 1, "name": 2}, report.Replaced)
	assert.Empty(t, report.Images)
	assert.Empty(t, report.Unmatched)
}

func TestFillPlaceholdersUnmatchedKey(t *testing.T) {
	f := newFakeBackend()
	f.occurrences["{{ghost}}"] = 0
	tm := newTestTemplater(f)

	report, err := tm.FillPlaceholders(context.Background(), "p1", map[string]any{"ghost": "boo"})
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.Replaced["ghost"])
	assert.Equal(t, []string{"ghost"}, report.Unmatched)
}

func TestFillPlaceholdersSwapsMarkedImage(t *testing.T) {
	f := newFakeBackend()
	f.presentations["p1"] = &gslides.Presentation{
		PresentationID: "p1",
		Slides: []*gslides.Page{{
			ObjectID: "s1",
			PageElements: []*gslides.PageElement{
				imageElement("logo-img", "https://x.test/old.png", "template:image:logo"),
			},
		}},
	}
	tm := newTestTemplater(f)

	report, err := tm.FillPlaceholders(context.Background(), "p1", map[string]any{
		"logo":  "https://x.test/new.png",
		"title": "Launch",
	})
	require.NoError(t, err)

	require.Len(t, f.batches, 1)
	reqs := f.batches[0].requests
	require.Len(t, reqs, 2)

	// text substitutions come first, then the image swap
	require.NotNil(t, reqs[0].ReplaceAllText)
	require.NotNil(t, reqs[1].ReplaceImage)
	assert.Equal(t, "logo-img", reqs[1].ReplaceImage.ImageObjectID)
	assert.Equal(t, "https://x.test/new.png", reqs[1].ReplaceImage.URL)

	assert.Equal(t, []string{"logo"}, report.Images)
	assert.Empty(t, report.Unmatched)
}

func TestFillPlaceholdersReplacesShapeWithImage(t *testing.T) {
	shape := textShape("holder", "{{photo}}\n")
	shape.Size = sizePT(200, 150)
	shape.Transform = &gslides.AffineTransform{
		ScaleX:     gslides.Float64(1),
		ScaleY:     gslides.Float64(1),
		TranslateX: gslides.Float64(40),
		TranslateY: gslides.Float64(60),
		Unit:       gslides.UnitPT,
	}
	f := newFakeBackend()
	f.presentations["p1"] = &gslides.Presentation{
		PresentationID: "p1",
		Slides:         []*gslides.Page{{ObjectID: "s1", PageElements: []*gslides.PageElement{shape}}},
	}
	tm := newTestTemplater(f)

	report, err := tm.FillPlaceholders(context.Background(), "p1", map[string]any{
		"photo": "https://x.test/team.jpg",
	})
	require.NoError(t, err)

	require.Len(t, f.batches, 1)
	reqs := f.batches[0].requests
	require.Len(t, reqs, 2)

	create := reqs[0].CreateImage
	require.NotNil(t, create)
	assert.True(t, strings.HasPrefix(create.ObjectID, "image_"))
	assert.Equal(t, "https://x.test/team.jpg", create.URL)
	assert.Equal(t, "s1", create.ElementProperties.PageObjectID)
	assert.Same(t, shape.Size, create.ElementProperties.Size)
	assert.Same(t, shape.Transform, create.ElementProperties.Transform)

	require.NotNil(t, reqs[1].DeleteObject)
	assert.Equal(t, "holder", reqs[1].DeleteObject.ObjectID)

	assert.Equal(t, []string{"photo"}, report.Images)
}

func TestFillPlaceholdersImageKeyUnmatched(t *testing.T) {
	f := newFakeBackend()
	f.presentations["p1"] = &gslides.Presentation{
		PresentationID: "p1",
		Slides:         []*gslides.Page{{ObjectID: "s1"}},
	}
	tm := newTestTemplater(f)

	report, err := tm.FillPlaceholders(context.Background(), "p1", map[string]any{
		"banner": "https://x.test/banner.png",
	})
	require.NoError(t, err)

	assert.Empty(t, f.batches)
	assert.Empty(t, report.Images)
	assert.Equal(t, []string{"banner"}, report.Unmatched)
}

func TestFillPlaceholdersEmptyData(t *testing.T) {
	f := newFakeBackend()
	tm := newTestTemplater(f)

	report, err := tm.FillPlaceholders(context.Background(), "p1", nil)
	require.NoError(t, err)
	assert.Empty(t, report.Replaced)
	assert.Empty(t, f.batches)
}

func TestFillPlaceholdersBatchError(t *testing.T) {
	f := newFakeBackend()
	f.batchErr = assert.AnError
	tm := newTestTemplater(f)

	_, err := tm.FillPlaceholders(context.Background(), "p1", map[string]any{"k": "v"})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFindPlaceholdersFetchError(t *testing.T) {
	f := newFakeBackend()
	f.getErr = assert.AnError
	tm := newTestTemplater(f)

	_, err := tm.FindPlaceholders(context.Background(), "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

package gslides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textBox(objectID, content string, style *TextStyle) *PageElement {
	return &PageElement{
		ObjectID:  objectID,
		Size:      SizeEMU(3000000, 1000000),
		Transform: Translate(311700, 744575),
		Element: &Shape{
			ShapeType: ShapeTextBox,
			Text: &TextContent{
				TextElements: []*TextElement{
					{EndIndex: Int64(int64(len(content))), ParagraphMarker: &ParagraphMarker{}},
					{EndIndex: Int64(int64(len(content))), TextRun: &TextRun{Content: String(content), Style: style}},
				},
			},
		},
	}
}

func TestCreateRequestsShapeWithStyledRuns(t *testing.T) {
	el := &PageElement{
		ObjectID:  "box1",
		Size:      SizeEMU(3000000, 1000000),
		Transform: Translate(311700, 744575),
		Element: &Shape{
			ShapeType: ShapeTextBox,
			Text: &TextContent{
				TextElements: []*TextElement{
					{EndIndex: Int64(11), ParagraphMarker: &ParagraphMarker{Style: &ParagraphStyle{Alignment: AlignmentCenter}}},
					{EndIndex: Int64(5), TextRun: &TextRun{
						Content: String("Hello"),
						Style:   &TextStyle{Bold: Bool(true)},
					}},
					{StartIndex: Int64(5), EndIndex: Int64(11), TextRun: &TextRun{
						Content: String(" World"),
						Style:   &TextStyle{Italic: Bool(true)},
					}},
				},
			},
		},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 5)

	create := reqs[0].CreateShape
	require.NotNil(t, create)
	assert.Equal(t, "box1", create.ObjectID)
	assert.Equal(t, ShapeTextBox, create.ShapeType)
	require.NotNil(t, create.ElementProperties)
	assert.Equal(t, "page1", create.ElementProperties.PageObjectID)
	assert.Equal(t, el.Size, create.ElementProperties.Size)
	assert.Equal(t, el.Transform, create.ElementProperties.Transform)

	// Insert and style alternate per run, so each style range is valid
	// against the text present when it applies.
	first := reqs[1].InsertText
	require.NotNil(t, first)
	assert.Equal(t, "box1", first.ObjectID)
	assert.Equal(t, "Hello", first.Text)
	assert.Equal(t, int64(0), *first.InsertionIndex)

	firstStyle := reqs[2].UpdateTextStyle
	require.NotNil(t, firstStyle)
	assert.Equal(t, RangeTypeFixed, firstStyle.TextRange.Type)
	assert.Equal(t, int64(0), *firstStyle.TextRange.StartIndex)
	assert.Equal(t, int64(5), *firstStyle.TextRange.EndIndex)
	assert.Equal(t, "bold", firstStyle.Fields)
	require.NotNil(t, firstStyle.Style.Bold)

	second := reqs[3].InsertText
	require.NotNil(t, second)
	assert.Equal(t, " World", second.Text)
	assert.Equal(t, int64(5), *second.InsertionIndex)

	secondStyle := reqs[4].UpdateTextStyle
	require.NotNil(t, secondStyle)
	assert.Equal(t, int64(5), *secondStyle.TextRange.StartIndex)
	assert.Equal(t, int64(11), *secondStyle.TextRange.EndIndex)
	assert.Equal(t, "italic", secondStyle.Fields)
}

func TestCreateRequestsStyleRangeCountsUTF16(t *testing.T) {
	// One astral-plane rune occupies two UTF-16 code units.
	el := textBox("box1", "a\U0001F600b", &TextStyle{Bold: Bool(true)})

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	style := reqs[2].UpdateTextStyle
	require.NotNil(t, style)
	assert.Equal(t, int64(0), *style.TextRange.StartIndex)
	assert.Equal(t, int64(4), *style.TextRange.EndIndex)
}

func TestCreateRequestsShapeSkipsEmptyStyle(t *testing.T) {
	el := textBox("box1", "plain\n", &TextStyle{})

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	require.NotNil(t, reqs[0].CreateShape)
	require.NotNil(t, reqs[1].InsertText)
}

func TestCreateRequestsShapeGeneratesIDForText(t *testing.T) {
	el := textBox("", "needs a target\n", nil)

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	id := reqs[0].CreateShape.ObjectID
	require.NotEmpty(t, id)
	assert.Contains(t, id, "shape_")
	assert.Equal(t, id, reqs[1].InsertText.ObjectID)
}

func TestCreateRequestsShapeWithoutTextKeepsEmptyID(t *testing.T) {
	el := &PageElement{
		Size:      SizeEMU(100, 100),
		Transform: Translate(0, 0),
		Element:   &Shape{ShapeType: ShapeRectangle},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].CreateShape.ObjectID)
}

func TestCreateRequestsSortsRunsByStartIndex(t *testing.T) {
	el := &PageElement{
		ObjectID:  "box1",
		Size:      SizeEMU(100, 100),
		Transform: Translate(0, 0),
		Element: &Shape{
			ShapeType: ShapeTextBox,
			Text: &TextContent{
				TextElements: []*TextElement{
					{StartIndex: Int64(6), EndIndex: Int64(12), TextRun: &TextRun{Content: String("second")}},
					{EndIndex: Int64(6), TextRun: &TextRun{Content: String("first ")}},
				},
			},
		},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, "first ", reqs[1].InsertText.Text)
	assert.Equal(t, "second", reqs[2].InsertText.Text)
}

func TestCreateRequestsImage(t *testing.T) {
	el := &PageElement{
		ObjectID:  "img1",
		Size:      SizeEMU(3000000, 2250000),
		Transform: Translate(5715000, 2286000),
		Element:   &Image{SourceURL: String("https://images.example.com/skyline.jpg")},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	create := reqs[0].CreateImage
	require.NotNil(t, create)
	assert.Equal(t, "https://images.example.com/skyline.jpg", create.URL)
	assert.Equal(t, "page1", create.ElementProperties.PageObjectID)
}

func TestCreateRequestsVideoIDFallsBackToElement(t *testing.T) {
	el := &PageElement{
		ObjectID:  "vid1",
		Size:      SizeEMU(4572000, 2571750),
		Transform: Translate(457200, 1257300),
		Element: &Video{
			ID:     "dQw4w9WgXcQ",
			Source: &VideoSource{Type: VideoSourceYouTube, Bare: true},
		},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	create := reqs[0].CreateVideo
	require.NotNil(t, create)
	assert.Equal(t, VideoSourceYouTube, create.Source)
	assert.Equal(t, "dQw4w9WgXcQ", create.ID)
}

func TestCreateRequestsVideoPrefersSourceID(t *testing.T) {
	el := &PageElement{
		Size:      SizeEMU(100, 100),
		Transform: Translate(0, 0),
		Element: &Video{
			ID:     "stale",
			Source: &VideoSource{Type: VideoSourceYouTube, ID: "fresh"},
		},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	assert.Equal(t, "fresh", reqs[0].CreateVideo.ID)
}

func TestCreateRequestsLineCategory(t *testing.T) {
	tests := []struct {
		name string
		line *Line
		want LineCategory
	}{
		{"explicit category wins", &Line{LineType: "BENT_CONNECTOR_3", LineCategory: LineCategoryCurved}, LineCategoryCurved},
		{"bent from type", &Line{LineType: "BENT_CONNECTOR_2"}, LineCategoryBent},
		{"curved from type", &Line{LineType: "CURVED_CONNECTOR_4"}, LineCategoryCurved},
		{"straight from type", &Line{LineType: "STRAIGHT_CONNECTOR_1"}, LineCategoryStraight},
		{"no hints defaults straight", &Line{}, LineCategoryStraight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &PageElement{
				Size:      SizeEMU(100, 100),
				Transform: Translate(0, 0),
				Element:   tt.line,
			}
			reqs, err := CreateRequests(el, "page1")
			require.NoError(t, err)
			require.Len(t, reqs, 1)
			assert.Equal(t, tt.want, reqs[0].CreateLine.LineCategory)
		})
	}
}

func TestCreateRequestsTable(t *testing.T) {
	el := &PageElement{
		ObjectID:  "tbl1",
		Size:      SizeEMU(3657600, 1371600),
		Transform: Translate(5029200, 1600200),
		Element:   &Table{Rows: Int64(2), Columns: Int64(3)},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	create := reqs[0].CreateTable
	require.NotNil(t, create)
	assert.Equal(t, int64(2), create.Rows)
	assert.Equal(t, int64(3), create.Columns)
}

func TestCreateRequestsSheetsChart(t *testing.T) {
	el := &PageElement{
		ObjectID:  "chart1",
		Size:      SizeEMU(3429000, 2571750),
		Transform: Translate(5257800, 1257300),
		Element: &SheetsChart{
			SpreadsheetID: "ssheet1",
			ChartID:       Int64(987654321),
		},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	create := reqs[0].CreateSheetsChart
	require.NotNil(t, create)
	assert.Equal(t, "ssheet1", create.SpreadsheetID)
	assert.Equal(t, int64(987654321), *create.ChartID)
	assert.Equal(t, LinkingModeLinked, create.LinkingMode)
}

func TestCreateRequestsWordArt(t *testing.T) {
	el := &PageElement{
		ObjectID:  "art1",
		Size:      SizeEMU(914400, 914400),
		Transform: Translate(0, 0),
		Element:   &WordArt{RenderedText: String("NEW")},
	}

	reqs, err := CreateRequests(el, "page1")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "NEW", reqs[0].CreateWordArt.RenderedText)
}

func TestCreateRequestsUnsupported(t *testing.T) {
	geometry := func(el Element) *PageElement {
		return &PageElement{Size: SizeEMU(100, 100), Transform: Translate(0, 0), Element: el}
	}

	tests := []struct {
		name string
		el   *PageElement
	}{
		{"no variant", geometry(nil)},
		{"group", geometry(&Group{})},
		{"speaker spotlight", geometry(&SpeakerSpotlight{})},
		{"shape without type", geometry(&Shape{})},
		{"image without source url", geometry(&Image{ContentURL: String("https://expiring.example/x")})},
		{"table without dimensions", geometry(&Table{Rows: Int64(2)})},
		{"table with zero rows", geometry(&Table{Rows: Int64(0), Columns: Int64(2)})},
		{"video without source", geometry(&Video{ID: "x"})},
		{"video without id", geometry(&Video{Source: &VideoSource{Type: VideoSourceYouTube}})},
		{"word art without text", geometry(&WordArt{})},
		{"sheets chart without spreadsheet", geometry(&SheetsChart{ChartID: Int64(1)})},
		{"sheets chart without chart id", geometry(&SheetsChart{SpreadsheetID: "s"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateRequests(tt.el, "page1")
			require.ErrorIs(t, err, ErrUnsupportedVariant)
		})
	}
}

func TestTextRequestsSkipsParagraphMarkers(t *testing.T) {
	text := &TextContent{
		TextElements: []*TextElement{
			{EndIndex: Int64(6), ParagraphMarker: &ParagraphMarker{Bullet: &Bullet{ListID: "kix.lst0"}}},
			{EndIndex: Int64(6), TextRun: &TextRun{Content: String("First\n")}},
		},
	}

	reqs, err := textRequests("box1", text)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "First\n", reqs[0].InsertText.Text)
}

func TestTextContentText(t *testing.T) {
	text := &TextContent{
		TextElements: []*TextElement{
			{ParagraphMarker: &ParagraphMarker{}},
			{TextRun: &TextRun{Content: String("Page ")}},
			{AutoText: &AutoText{Type: AutoTextSlideNumber, Content: String("1")}},
			{TextRun: &TextRun{Content: String("\n")}},
		},
	}
	assert.Equal(t, "Page 1\n", text.Text())

	var empty *TextContent
	assert.Empty(t, empty.Text())
}

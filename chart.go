package gslides

// WordArt is rendered text art. The API reports its text but offers no way
// to restyle it after creation.
type WordArt struct {
	RenderedText *string `json:"renderedText,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*WordArt) elementKind() ElementKind { return KindWordArt }

// SheetsChart embeds a chart from a Sheets spreadsheet.
type SheetsChart struct {
	SpreadsheetID         string                 `json:"spreadsheetId,omitempty"`
	ChartID               *int64                 `json:"chartId,omitempty"`
	ContentURL            *string                `json:"contentUrl,omitempty"`
	SheetsChartProperties *SheetsChartProperties `json:"sheetsChartProperties,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*SheetsChart) elementKind() ElementKind { return KindSheetsChart }

type SheetsChartProperties struct {
	ChartImageProperties *ImageProperties `json:"chartImageProperties,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

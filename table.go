package gslides

// Table is a grid element. Rows and Columns are the grid dimensions; the
// row, column, and border collections carry the cell-level detail.
type Table struct {
	Rows                 *int64                   `json:"rows,omitempty"`
	Columns              *int64                   `json:"columns,omitempty"`
	TableRows            []*TableRow              `json:"tableRows,omitempty"`
	TableColumns         []*TableColumnProperties `json:"tableColumns,omitempty"`
	HorizontalBorderRows []*TableBorderRow        `json:"horizontalBorderRows,omitempty"`
	VerticalBorderRows   []*TableBorderRow        `json:"verticalBorderRows,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*Table) elementKind() ElementKind { return KindTable }

// Cell returns the cell at (row, col), or nil when the location is out of
// range. Cells swallowed by an earlier cell's span are present but empty.
func (t *Table) Cell(row, col int) *TableCell {
	if t == nil || row < 0 || row >= len(t.TableRows) {
		return nil
	}
	r := t.TableRows[row]
	if r == nil || col < 0 || col >= len(r.TableCells) {
		return nil
	}
	return r.TableCells[col]
}

type TableRow struct {
	RowHeight          *Dimension          `json:"rowHeight,omitempty"`
	TableRowProperties *TableRowProperties `json:"tableRowProperties,omitempty"`
	TableCells         []*TableCell        `json:"tableCells,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableRowProperties struct {
	MinRowHeight *Dimension `json:"minRowHeight,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableColumnProperties struct {
	ColumnWidth *Dimension `json:"columnWidth,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableCell struct {
	Location            *TableCellLocation   `json:"location,omitempty"`
	RowSpan             *int64               `json:"rowSpan,omitempty"`
	ColumnSpan          *int64               `json:"columnSpan,omitempty"`
	Text                *TextContent         `json:"text,omitempty"`
	TableCellProperties *TableCellProperties `json:"tableCellProperties,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// TableCellLocation addresses a cell by zero-based indices. Zeros are
// omitted by the API's encoding, so both indices are pointers.
type TableCellLocation struct {
	RowIndex    *int64 `json:"rowIndex,omitempty"`
	ColumnIndex *int64 `json:"columnIndex,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableCellProperties struct {
	TableCellBackgroundFill *TableCellBackgroundFill `json:"tableCellBackgroundFill,omitempty"`
	ContentAlignment        ContentAlignment         `json:"contentAlignment,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableCellBackgroundFill struct {
	PropertyState PropertyState `json:"propertyState,omitempty"`
	SolidFill     *SolidFill    `json:"solidFill,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableBorderRow struct {
	TableBorderCells []*TableBorderCell `json:"tableBorderCells,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableBorderCell struct {
	Location              *TableCellLocation     `json:"location,omitempty"`
	TableBorderProperties *TableBorderProperties `json:"tableBorderProperties,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableBorderProperties struct {
	TableBorderFill *TableBorderFill `json:"tableBorderFill,omitempty"`
	Weight          *Dimension       `json:"weight,omitempty"`
	DashStyle       DashStyle        `json:"dashStyle,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type TableBorderFill struct {
	SolidFill *SolidFill `json:"solidFill,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

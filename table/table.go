package table

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width float64 // Fixed width. 0 means auto/fill.
	Align string  // Default alignment for this column ("L", "C", "R").
	// Style applies to body cells of this column. Column-level fills are
	// how striping by column group is expressed.
	Style *CellStyle
}

// Table is a high-level table builder for generating PDF tables.
type Table struct {
	pdf         *gofpdf.Fpdf
	columns     []ColumnDef
	rows        []*Row
	style       TableStyle
	x, y        float64 // starting position (0,0 means current)
	tableWidth  float64 // total table width (0 means page width minus margins)
	noPageBreak bool
}

// New creates a new Table associated with the given PDF document.
func New(pdf *gofpdf.Fpdf) *Table {
	return &Table{
		pdf: pdf,
		style: TableStyle{
			CellPadding: UniformPadding(1),
		},
	}
}

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...ColumnDef) *Table {
	t.columns = cols
	return t
}

// SetColumnWidths is a convenience method to set column widths directly.
// A width of 0 means the column will auto-fill remaining space.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]ColumnDef, len(widths))
	for i, w := range widths {
		t.columns[i] = ColumnDef{Width: w}
	}
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// SetPosition sets the starting position for the table.
// If not called, the table starts at the current PDF cursor position.
func (t *Table) SetPosition(x, y float64) *Table {
	t.x = x
	t.y = y
	return t
}

// SetWidth sets the total table width. If not called, uses page width minus margins.
func (t *Table) SetWidth(w float64) *Table {
	t.tableWidth = w
	return t
}

// DisablePageBreak keeps the table on the current page even when rows run
// past the bottom edge. Fixed single-page layouts own their own overflow
// policy and must not trigger page creation from inside a table.
func (t *Table) DisablePageBreak() *Table {
	t.noPageBreak = true
	return t
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a new header row and returns it for chaining.
// Header rows render first and repeat after a page break.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	insertIdx := 0
	for i, existing := range t.rows {
		if !existing.isHeader {
			insertIdx = i
			break
		}
		insertIdx = i + 1
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[insertIdx+1:], t.rows[insertIdx:])
	t.rows[insertIdx] = r
	return r
}

// Render draws the table to the PDF document. The cursor is left at the
// table's bottom-left corner, so callers can stack content below it.
func (t *Table) Render() error {
	if t.pdf.Err() {
		return t.pdf.Error()
	}

	if t.noPageBreak {
		// The document's own auto break would otherwise fire inside cell
		// rendering once rows pass the bottom margin.
		t.pdf.SetAutoPageBreak(false, 0)
	}

	if t.style.CellFont != nil {
		f := t.style.CellFont
		t.pdf.SetFont(f.Family, f.Style, f.Size)
	}

	widths := t.calculateWidths()

	startX := t.x
	if startX == 0 {
		startX = t.pdf.GetX()
	}
	if t.y != 0 {
		t.pdf.SetY(t.y)
	}

	var headerRows, bodyRows []*Row
	for _, r := range t.rows {
		if r.isHeader {
			headerRows = append(headerRows, r)
		} else {
			bodyRows = append(bodyRows, r)
		}
	}

	for _, r := range headerRows {
		t.renderRow(r, widths, startX, -1, true)
	}

	for i, r := range bodyRows {
		if !t.noPageBreak {
			rowH := t.calculateRowHeight(r, widths, false)
			_, pageH := t.pdf.GetPageSize()
			_, _, _, bMargin := t.pdf.GetMargins()

			if t.pdf.GetY()+rowH > pageH-bMargin {
				t.pdf.AddPage()
				for _, hr := range headerRows {
					t.renderRow(hr, widths, startX, -1, true)
				}
			}
		}

		t.renderRow(r, widths, startX, i, false)
	}

	return t.pdf.Error()
}

// calculateWidths computes final column widths from the definitions and the
// available space. Auto columns share the remainder evenly.
func (t *Table) calculateWidths() []float64 {
	totalWidth := t.tableWidth
	if totalWidth == 0 {
		pageW, _ := t.pdf.GetPageSize()
		lMargin, _, rMargin, _ := t.pdf.GetMargins()
		totalWidth = pageW - lMargin - rMargin
	}

	numCols := len(t.columns)
	if numCols == 0 {
		if len(t.rows) > 0 {
			numCols = len(t.rows[0].cells)
		}
		if numCols == 0 {
			return nil
		}
		t.columns = make([]ColumnDef, numCols)
	}

	widths := make([]float64, numCols)
	fixedTotal := 0.0
	autoCount := 0

	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixedTotal += col.Width
		} else {
			autoCount++
		}
	}

	if autoCount > 0 {
		remaining := totalWidth - fixedTotal
		if remaining < 0 {
			remaining = 0
		}
		autoWidth := remaining / float64(autoCount)
		for i, col := range t.columns {
			if col.Width == 0 {
				widths[i] = autoWidth
			}
		}
	}

	return widths
}

// calculateRowHeight computes the height needed for a row based on cell
// content, using each cell's resolved font so measurement matches rendering.
func (t *Table) calculateRowHeight(r *Row, widths []float64, isHeader bool) float64 {
	maxH := 5.0 // minimum row height
	if r.minH > maxH {
		maxH = r.minH
	}

	padding := t.padding(isHeader)

	for i, cell := range r.cells {
		if i >= len(widths) {
			break
		}

		style := t.resolveCellStyle(cell, r, i, isHeader)
		if style.Font != nil {
			t.pdf.SetFont(style.Font.Family, style.Font.Style, style.Font.Size)
		}

		contentW := widths[i] - padding.Left - padding.Right
		if contentW < 1 {
			contentW = 1
		}

		lines := t.pdf.SplitLines([]byte(cell.text), contentW)
		n := len(lines)
		if n == 0 {
			n = 1
		}
		_, fontSize := t.pdf.GetFontSize()
		lineH := fontSize * 1.5
		cellH := float64(n)*lineH + padding.Top + padding.Bottom
		if cellH > maxH {
			maxH = cellH
		}
	}

	return maxH
}

// renderRow renders a single row to the PDF.
func (t *Table) renderRow(r *Row, widths []float64, startX float64, bodyIdx int, isHeader bool) {
	rowH := t.calculateRowHeight(r, widths, isHeader)
	padding := t.padding(isHeader)

	t.pdf.SetX(startX)
	y := t.pdf.GetY()

	for i, cell := range r.cells {
		if i >= len(widths) {
			break
		}
		cellW := widths[i]

		style := t.resolveCellStyle(cell, r, i, isHeader)

		x := t.pdf.GetX()

		if style.FillColor != nil {
			t.pdf.SetFillColor(style.FillColor.R, style.FillColor.G, style.FillColor.B)
			t.pdf.Rect(x, y, cellW, rowH, "F")
		}

		if t.style.Border != nil {
			b := t.style.Border
			t.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
			if b.Width > 0 {
				t.pdf.SetLineWidth(b.Width)
			}
			t.pdf.Rect(x, y, cellW, rowH, "D")
		}

		if style.TextColor != nil {
			t.pdf.SetTextColor(style.TextColor.R, style.TextColor.G, style.TextColor.B)
		}
		if style.Font != nil {
			t.pdf.SetFont(style.Font.Family, style.Font.Style, style.Font.Size)
		}

		align := "L"
		if style.Align != "" {
			align = style.Align
		} else if i < len(t.columns) && t.columns[i].Align != "" {
			align = t.columns[i].Align
		}

		contentX := x + padding.Left
		contentY := y + padding.Top
		contentW := cellW - padding.Left - padding.Right

		t.pdf.SetXY(contentX, contentY)
		if strings.Contains(cell.text, "\n") || t.pdf.GetStringWidth(cell.text) > contentW {
			_, fontSize := t.pdf.GetFontSize()
			t.pdf.MultiCell(contentW, fontSize*1.5, cell.text, "", align, false)
		} else {
			t.pdf.CellFormat(contentW, rowH-padding.Top-padding.Bottom,
				cell.text, "", 0, align, false, 0, "")
		}

		t.pdf.SetXY(x+cellW, y)
	}

	// Drawn after the cell fills: a fill rectangle at the same y would
	// otherwise overpaint the lower half of the hairline.
	if !isHeader && bodyIdx > 0 && t.style.RowSeparator != nil {
		sep := t.style.RowSeparator
		var total float64
		for _, w := range widths {
			total += w
		}
		t.pdf.SetDrawColor(sep.Color.R, sep.Color.G, sep.Color.B)
		t.pdf.SetLineWidth(sep.Width)
		t.pdf.Line(startX, y, startX+total, y)
	}

	// Restore draw state so following content starts from defaults.
	t.pdf.SetDrawColor(0, 0, 0)
	t.pdf.SetTextColor(0, 0, 0)

	t.pdf.SetXY(startX, y+rowH)
}

// resolveCellStyle determines the effective style for a cell by merging
// table font, header or column style, row style, and cell style in order of
// increasing precedence.
func (t *Table) resolveCellStyle(cell *Cell, row *Row, colIdx int, isHeader bool) CellStyle {
	var result CellStyle

	if t.style.CellFont != nil {
		result.Font = t.style.CellFont
	}

	if isHeader {
		if t.style.HeaderStyle != nil {
			mergeStyle(&result, t.style.HeaderStyle)
		}
	} else if colIdx < len(t.columns) && t.columns[colIdx].Style != nil {
		mergeStyle(&result, t.columns[colIdx].Style)
	}

	if row.style != nil {
		mergeStyle(&result, row.style)
	}

	if cell.style != nil {
		mergeStyle(&result, cell.style)
	}

	return result
}

func (t *Table) padding(isHeader bool) Padding {
	if isHeader && t.style.HeaderPadding != nil {
		return *t.style.HeaderPadding
	}
	return t.style.CellPadding
}

// mergeStyle copies set fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}

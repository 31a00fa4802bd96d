// Package layout is the invoice layout engine. It draws one complete
// invoice page (banner, client block, line-item table, totals, signature
// and sidebar footer) onto a page canvas using a theme palette.
//
// Draw is a pure function over plain data and canvas operations: it has no
// dependency on where the invoice came from or where the bytes go, so the
// direct render path and the isolated-worker path share this single
// implementation. All coordinates are millimeters on a portrait A4 page.
package layout

import (
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/samber/lo"

	"github.com/pdfinvoicer/invoicepdf/invoice"
	"github.com/pdfinvoicer/invoicepdf/table"
	"github.com/pdfinvoicer/invoicepdf/theme"
)

// Layout constants. The banner layer widths and the fixed offsets below are
// part of the visual contract; changing them silently alters output
// compatibility with previously generated documents.
const (
	sidebarWidth   = 80 // primary-colored left bar
	accentStripW   = 10 // headerBg strip right of the sidebar
	margin         = 15
	headerTop      = 15
	headerHeight   = 65
	slantDeg       = 30  // banner and total-bar slant angle
	bannerBarW     = 135 // end of the headerBar layer
	bannerAccentW  = 150 // end of the accent layer
	bannerBgW      = 185 // end of the headerBg layer
	totalsX        = 130 // left edge of the totals column
	totalBarHeight = 15
	footerNominalY = 222 // nominal top of the totals/footer zone
	footerFloor    = 60  // totals zone may never start below pageH-60
)

const fontFamily = "Helvetica"

// Text baseline offsets as a fraction of the em size, used to emulate
// top- and middle-anchored text on a baseline-addressed canvas.
const (
	ascentRatio = 0.8
	middleRatio = 0.35
)

// Draw renders one complete invoice onto the current page of pdf. It never
// panics for well-formed input; empty optional fields render as blanks. The
// only error surfaced is the canvas's own accumulated error state.
func Draw(pdf *gofpdf.Fpdf, inv invoice.Invoice, settings invoice.Settings, th theme.Theme) error {
	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), th: th}
	p.pageW, p.pageH = pdf.GetPageSize()

	p.drawBackground()
	p.drawBanner()
	p.drawHeaderContent(inv)
	bodyBottom := p.drawBody(inv)
	footerY := p.footerY(bodyBottom)
	p.drawTotals(inv, footerY)
	p.drawSignature(settings)
	p.drawSidebarFooter(settings, footerY)

	return pdf.Error()
}

// page carries the per-render drawing state shared by the section methods.
type page struct {
	pdf          *gofpdf.Fpdf
	tr           func(string) string
	th           theme.Theme
	pageW, pageH float64
	totalBarY    float64 // set by drawTotals, read by drawSignature
}

func (p *page) setFill(c theme.Color) { p.pdf.SetFillColor(c.R, c.G, c.B) }
func (p *page) setText(c theme.Color) { p.pdf.SetTextColor(c.R, c.G, c.B) }
func (p *page) setDraw(c theme.Color) { p.pdf.SetDrawColor(c.R, c.G, c.B) }

// text draws baseline-anchored text at x, translating to the core-font
// code page on the way.
func (p *page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

func (p *page) textRight(x, y float64, s string) {
	t := p.tr(s)
	p.pdf.Text(x-p.pdf.GetStringWidth(t), y, t)
}

func (p *page) textCenter(x, y float64, s string) {
	t := p.tr(s)
	p.pdf.Text(x-p.pdf.GetStringWidth(t)/2, y, t)
}

// emSize returns the current font size in document units.
func (p *page) emSize() float64 {
	_, unitSize := p.pdf.GetFontSize()
	return unitSize
}

func slantOffset(height float64) float64 {
	return height * math.Tan(slantDeg*math.Pi/180)
}

// drawBackground fills the full-height sidebar and the accent strip.
func (p *page) drawBackground() {
	p.setFill(p.th.Primary)
	p.pdf.Rect(0, 0, sidebarWidth, p.pageH, "F")
	p.setFill(p.th.HeaderBg)
	p.pdf.Rect(sidebarWidth, 0, accentStripW, p.pageH, "F")
}

// drawBanner draws the three slanted header layers. The canvas has no
// trapezoid primitive, so each layer is a closed polygon. They are drawn
// back to front, headerBg then headerBar then accent, so the shared slanted
// edges cannot show seams.
func (p *page) drawBanner() {
	slant := slantOffset(headerHeight)

	p.setFill(p.th.HeaderBg)
	p.pdf.Polygon([]gofpdf.PointType{
		{X: 0, Y: headerTop},
		{X: bannerBgW - slant, Y: headerTop},
		{X: bannerBgW, Y: headerTop + headerHeight},
		{X: 0, Y: headerTop + headerHeight},
	}, "F")

	p.setFill(p.th.HeaderBar)
	p.pdf.Polygon([]gofpdf.PointType{
		{X: 0, Y: headerTop},
		{X: bannerBarW - slant, Y: headerTop},
		{X: bannerBarW, Y: headerTop + headerHeight},
		{X: 0, Y: headerTop + headerHeight},
	}, "F")

	p.setFill(p.th.Accent)
	p.pdf.Polygon([]gofpdf.PointType{
		{X: bannerBarW - slant, Y: headerTop},
		{X: bannerAccentW - slant, Y: headerTop},
		{X: bannerAccentW, Y: headerTop + headerHeight},
		{X: bannerBarW, Y: headerTop + headerHeight},
	}, "F")
}

// drawHeaderContent draws the INVOICE title, the invoice detail key/value
// table on the sidebar, and the "Invoice to" client block.
func (p *page) drawHeaderContent(inv invoice.Invoice) {
	p.pdf.SetFont(fontFamily, "B", 48)
	p.setText(p.th.TextLight)
	p.text(margin, 20+p.emSize()*ascentRatio, "INVOICE")

	light := rgb(p.th.TextLight)
	tb := table.New(p.pdf).
		SetPosition(margin, 40).
		SetWidth(85).
		SetColumns(
			table.ColumnDef{Width: 35, Align: "L"},
			table.ColumnDef{Align: "R"},
		).
		SetStyle(table.TableStyle{
			CellPadding: table.Padding{Top: 0.5, Bottom: 0.5},
			CellFont:    &table.FontSpec{Family: fontFamily, Style: "B", Size: 12},
		}).
		DisablePageBreak()

	details := [][2]string{
		{"Invoice#:", inv.InvoiceNumber},
		{"Date:", invoice.FormatDate(inv.Date)},
		{"Client Ref:", inv.ClientReference},
		{"Project Ref:", inv.ProjectReference},
	}
	for _, kv := range details {
		r := tb.AddRow().SetStyle(table.CellStyle{TextColor: &light})
		r.AddCells(p.tr(kv[0]), p.tr(kv[1]))
	}
	// Table errors surface through the canvas error state checked in Draw.
	_ = tb.Render()

	p.pdf.SetFont(fontFamily, "B", 17)
	p.setText(p.th.TextDark)
	p.text(150, 30+p.emSize()*ascentRatio, "Invoice to:")

	p.pdf.SetFont(fontFamily, "B", 12)
	p.text(150, 40, inv.Client)

	p.pdf.SetFont(fontFamily, "B", 9)
	lineH := p.emSize() * 1.15
	y := 47.0
	for _, line := range p.pdf.SplitLines([]byte(p.tr(inv.ClientAddress)), p.pageW-150-margin) {
		p.pdf.Text(150, y, string(line))
		y += lineH
	}
}

// drawBody draws the optional service-description strip and the line-item
// table, returning the Y coordinate of the table's bottom edge.
func (p *page) drawBody(inv invoice.Invoice) float64 {
	startY := float64(headerHeight + headerTop + margin)

	if inv.RenderedService != "" {
		light := rgb(p.th.TextLight)
		dark := rgb(p.th.TextDark)
		accent := rgb(p.th.Accent)
		bgA := rgb(p.th.TableBgPrimary)

		strip := table.New(p.pdf).
			SetPosition(margin, startY).
			SetWidth(p.pageW - 2*margin).
			SetColumns(
				table.ColumnDef{Width: 40, Align: "L", Style: &table.CellStyle{FillColor: &accent, TextColor: &light}},
				table.ColumnDef{Align: "L", Style: &table.CellStyle{FillColor: &bgA, TextColor: &dark}},
			).
			SetStyle(table.TableStyle{
				CellPadding: table.Padding{Top: 4, Right: 3, Bottom: 4, Left: 3},
				CellFont:    &table.FontSpec{Family: fontFamily, Style: "B", Size: 9},
			}).
			DisablePageBreak()
		strip.AddRow().AddCells(p.tr("Invoice for:"), p.tr(inv.RenderedService))
		_ = strip.Render()
		startY = p.pdf.GetY() + 5
	}

	p.drawItemsTable(inv, startY)
	return p.pdf.GetY()
}

// buildItemRows converts the renderable items into display rows in table
// column order: Qty, Description, Unit, Unit Price, Total. The unit price
// is suppressed without a unit label, the line total is shown only when
// the product is positive, and short tables (1 to 4 rows) get two blank
// padding rows.
func buildItemRows(inv invoice.Invoice) [][5]string {
	currency := invoice.CurrencyCode(inv.Currency)

	rows := lo.Map(inv.RenderableItems(), func(li invoice.LineItem, _ int) [5]string {
		var qty, unitPrice, total string
		if li.Quantity > 0 {
			qty = invoice.FormatNumber(li.Quantity)
		}
		if li.Unit != "" && li.UnitPrice > 0 {
			unitPrice = invoice.FormatAmount(currency, li.UnitPrice)
		}
		if li.Total() > 0 {
			total = invoice.FormatAmount(currency, li.Total())
		}
		return [5]string{qty, li.Description, li.Unit, unitPrice, total}
	})

	if len(rows) > 0 && len(rows) < 5 {
		rows = append(rows, [5]string{}, [5]string{})
	}
	return rows
}

// drawItemsTable draws the line-item table. Body cells are striped by
// column group, not by row: Qty, Unit and Total carry the primary table
// background while Description and Unit Price carry the secondary one.
func (p *page) drawItemsTable(inv invoice.Invoice, startY float64) {
	rows := buildItemRows(inv)

	light := rgb(p.th.TextLight)
	dark := rgb(p.th.TextDark)
	accent := rgb(p.th.Accent)
	bgA := rgb(p.th.TableBgPrimary)
	bgB := rgb(p.th.TableBgSecondary)

	tb := table.New(p.pdf).
		SetPosition(margin, startY).
		SetWidth(p.pageW - 2*margin).
		SetColumns(
			table.ColumnDef{Width: 15, Align: "C", Style: &table.CellStyle{FillColor: &bgA}},
			table.ColumnDef{Width: 80, Align: "L", Style: &table.CellStyle{FillColor: &bgB}},
			table.ColumnDef{Width: 20, Align: "C", Style: &table.CellStyle{FillColor: &bgA}},
			table.ColumnDef{Width: 30, Align: "C", Style: &table.CellStyle{FillColor: &bgB}},
			table.ColumnDef{Width: 35, Align: "C", Style: &table.CellStyle{FillColor: &bgA}},
		).
		SetStyle(table.TableStyle{
			CellPadding:   table.Padding{Top: 6, Right: 3, Bottom: 6, Left: 3},
			HeaderPadding: &table.Padding{Top: 4, Right: 4, Bottom: 4, Left: 4},
			CellFont:      &table.FontSpec{Family: fontFamily, Style: "B", Size: 9},
			HeaderStyle: &table.CellStyle{
				FillColor: &accent,
				TextColor: &light,
				Font:      &table.FontSpec{Family: fontFamily, Style: "B", Size: 10},
				Align:     "C",
			},
			RowSeparator: &table.LineStyle{Width: 0.1, Color: rgb(p.th.Primary)},
		}).
		DisablePageBreak()

	tb.AddHeaderRow().AddCells("Qty", "Description", "Unit", "Unit Price", "Total")

	for _, row := range rows {
		r := tb.AddRow().SetStyle(table.CellStyle{TextColor: &dark})
		for _, cell := range row {
			r.AddCell(p.tr(cell))
		}
	}

	_ = tb.Render()
}

// footerY places the totals/footer zone: nominally fixed, pushed down when
// the items table runs long, but clamped so it never slides off the page.
// A table tall enough to hit the clamp overlaps rather than paginating;
// the single-page contract wins over flow layout here.
func (p *page) footerY(tableBottom float64) float64 {
	y := float64(footerNominalY)
	if tableBottom+10 > y {
		y = tableBottom + 10
	}
	if y > p.pageH-footerFloor {
		y = p.pageH - footerFloor
	}
	return y
}

// drawTotals draws the optional subtotal/tax lines and the highlighted
// total bar with its slanted accent tab.
func (p *page) drawTotals(inv invoice.Invoice, footerY float64) {
	currency := invoice.CurrencyCode(inv.Currency)
	labelX := float64(totalsX + 15)
	valueX := p.pageW - margin
	y := footerY

	p.pdf.SetFont(fontFamily, "", 10)
	p.setText(p.th.TextDark)

	if inv.TaxRate > 0 {
		p.text(labelX, y, "Sub Total:")
		p.textRight(valueX, y, invoice.FormatAmount(currency, inv.Subtotal()))
		y += 7

		p.text(labelX, y, "Tax ("+invoice.FormatNumber(inv.TaxRate)+"%):")
		p.textRight(valueX, y, invoice.FormatAmount(currency, inv.TaxAmount()))
		y += 7
	}

	p.setFill(p.th.Primary)
	p.pdf.Rect(totalsX, y, p.pageW-totalsX, totalBarHeight, "F")

	// Accent tab on the bar's left edge, slanted to match the banner.
	tab := slantOffset(totalBarHeight)
	p.setFill(p.th.Accent)
	p.pdf.Polygon([]gofpdf.PointType{
		{X: totalsX, Y: y},
		{X: totalsX + 15, Y: y},
		{X: totalsX + 15 - tab, Y: y + totalBarHeight},
		{X: totalsX - tab, Y: y + totalBarHeight},
	}, "F")

	p.pdf.SetFont(fontFamily, "B", 14)
	p.setText(p.th.TextLight)
	mid := y + totalBarHeight/2.0 + p.emSize()*middleRatio
	p.text(labelX, mid, "Total:")
	p.textRight(valueX, mid, invoice.FormatAmount(currency, inv.GrandTotal()))

	p.totalBarY = y

	p.pdf.SetFont(fontFamily, "", 8)
	p.setText(p.th.TextDark)
	p.textRight(valueX, y+totalBarHeight+6, "Payment should be made as per the agreed terms")
}

// drawSignature draws the authorised-sign block centered in the totals
// column: contact name in italic over a rule over the label.
func (p *page) drawSignature(settings invoice.Settings) {
	name := settings.Bank.ContactName
	if name == "" {
		name = settings.Sender.Name
	}

	sigX := totalsX + (p.pageW-totalsX)/2 - 20
	y := p.totalBarY + totalBarHeight + 25

	p.pdf.SetFont(fontFamily, "I", 16)
	p.setText(p.th.TextDark)
	p.textCenter(sigX, y, name)

	y += 2
	p.setDraw(p.th.TextDark)
	p.pdf.SetLineWidth(0.3)
	p.pdf.Line(sigX-30, y, sigX+30, y)

	y += 5
	p.pdf.SetFont(fontFamily, "B", 9)
	p.textCenter(sigX, y, "Authorised Sign")
}

// drawSidebarFooter draws the payment/contact blocks inside the sidebar and
// the copyright line with its hyperlink.
func (p *page) drawSidebarFooter(settings invoice.Settings, footerY float64) {
	bank := settings.Bank

	y := footerY - 5
	p.pdf.SetFont(fontFamily, "B", 10)
	p.setText(p.th.Accent)
	p.text(margin, y, "Payment Info:")

	light := rgb(p.th.TextLight)
	tb := table.New(p.pdf).
		SetPosition(margin, y+6).
		SetWidth(sidebarWidth - margin - margin/2).
		SetColumns(
			table.ColumnDef{Width: 20, Style: &table.CellStyle{Font: &table.FontSpec{Family: fontFamily, Style: "B", Size: 7}}},
			table.ColumnDef{Style: &table.CellStyle{Font: &table.FontSpec{Family: fontFamily, Size: 7}}},
		).
		SetStyle(table.TableStyle{
			CellPadding: table.Padding{Top: 0.5, Right: 1, Bottom: 0.5, Left: 1},
			CellFont:    &table.FontSpec{Family: fontFamily, Style: "B", Size: 7},
		}).
		DisablePageBreak()

	payment := [][2]string{
		{"Bank:", bank.BankName},
		{"Account:", bank.AccountNumber},
		{"SWIFT/IBAN:", bank.SwiftCode},
		{"Address:", bank.BankAddress},
	}
	for _, kv := range payment {
		r := tb.AddRow().SetStyle(table.CellStyle{TextColor: &light})
		r.AddCells(p.tr(kv[0]), p.tr(kv[1]))
	}
	_ = tb.Render()

	contactY := p.pdf.GetY() + 10
	p.pdf.SetFont(fontFamily, "B", 10)
	p.setText(p.th.Accent)
	p.text(margin, contactY, "Contact Info:")
	contactY += 6

	p.pdf.SetFont(fontFamily, "B", 7)
	p.setText(p.th.TextLight)
	mid := p.emSize() * middleRatio

	phone := bank.ContactPhone
	if phone == "" {
		phone = settings.Sender.Phone
	}
	p.drawPhoneIcon(margin, contactY, 4)
	p.text(margin+6, contactY+mid, phone)
	contactY += 6

	p.drawEmailIcon(margin, contactY, 4)
	p.text(margin+6, contactY+mid, bank.ContactEmail)

	p.pdf.SetFont(fontFamily, "", 7)
	p.pdf.SetTextColor(0xa0, 0xb3, 0xc7)
	copyrightY := p.pageH - 5
	prefix := p.tr("©2025 ")
	p.pdf.Text(margin, copyrightY, prefix)

	linkX := margin + p.pdf.GetStringWidth(prefix)
	linkText := "PDFInvoicer.app"
	linkW := p.pdf.GetStringWidth(linkText)
	p.pdf.Text(linkX, copyrightY, linkText)
	p.pdf.LinkString(linkX, copyrightY-p.emSize(), linkW, p.emSize()+1, "https://pdfinvoicer.app")
}

// drawPhoneIcon draws a handset glyph from vector primitives: a rounded
// rectangle body and one earpiece stroke. No icon font is involved, so the
// glyph renders identically regardless of the embedded font set.
func (p *page) drawPhoneIcon(x, y, size float64) {
	p.pdf.SetLineWidth(size * 0.1)
	p.setDraw(p.th.TextLight)
	w := size * 0.8
	h := size
	p.pdf.RoundedRect(x, y-h/2, w, h, w*0.2, "1234", "D")
	p.pdf.SetLineWidth(size * 0.05)
	p.pdf.Line(x+w*0.2, y-h*0.3, x+w*0.8, y-h*0.3)
}

// drawEmailIcon draws an envelope glyph: a rectangle body and two diagonal
// flap strokes.
func (p *page) drawEmailIcon(x, y, size float64) {
	p.pdf.SetLineWidth(size * 0.1)
	p.setDraw(p.th.TextLight)
	w := size
	h := size * 0.7
	p.pdf.Rect(x, y-h/2, w, h, "D")
	p.pdf.Line(x, y-h/2, x+w/2, y)
	p.pdf.Line(x+w/2, y, x+w, y-h/2)
}

// rgb converts a theme color to the table package's color type.
func rgb(c theme.Color) table.RGBColor {
	return table.RGBColor{R: c.R, G: c.G, B: c.B}
}

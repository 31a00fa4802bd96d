// Package invoice defines the invoice data model consumed by the rendering
// engine, along with the money math and display-formatting rules.
//
// Everything here is plain, JSON-serializable data: invoices cross an
// isolation boundary on their way to the renderer, so no field may hold a
// live reference. Monetary math is performed in float64 and rounded to two
// decimals only at display time, never pre-rounded, so subtotal, tax and
// total cannot accumulate rounding drift.
package invoice

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

// LineItem is one billable row within an invoice.
//
// An empty Unit suppresses the unit-price and is part of the row display
// rules, not a validation failure.
type LineItem struct {
	ID          int64   `json:"id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Total returns the derived line total (quantity × unit price).
func (li LineItem) Total() float64 {
	return li.Quantity * li.UnitPrice
}

// Renderable reports whether the item earns a row in the rendered table:
// it must carry a description, a positive quantity with a positive price,
// or a unit label.
func (li LineItem) Renderable() bool {
	return li.Description != "" || (li.Quantity > 0 && li.UnitPrice > 0) || li.Unit != ""
}

// Invoice is the input record for one rendered page. It is immutable as far
// as rendering is concerned; Status and the date lists are carried through
// but never drawn.
type Invoice struct {
	ID               int64      `json:"id,omitempty"`
	InvoiceNumber    string     `json:"invoiceNumber"`
	Date             string     `json:"date"` // ISO calendar date, "2006-01-02"
	Client           string     `json:"client"`
	ClientAddress    string     `json:"clientAddress"`
	ClientReference  string     `json:"clientReference"`
	ProjectReference string     `json:"projectReference"`
	ExpensesIncluded bool       `json:"expensesIncluded,omitempty"`
	RenderedService  string     `json:"renderedService"`
	Currency         string     `json:"currency"`
	Items            []LineItem `json:"items"`
	TaxRate          float64    `json:"taxRate"`
	Total            float64    `json:"total"`
	WorkDates        []string   `json:"workDates,omitempty"`
	TravelDates      []string   `json:"travelDates,omitempty"`
	Status           string     `json:"status,omitempty"` // Paid, Unpaid, Overdue
}

// Subtotal sums quantity × unit price over all items, unrounded.
func (inv Invoice) Subtotal() float64 {
	return lo.SumBy(inv.Items, LineItem.Total)
}

// TaxAmount returns subtotal × tax rate.
func (inv Invoice) TaxAmount() float64 {
	return inv.Subtotal() * inv.TaxRate / 100
}

// GrandTotal returns subtotal plus tax, unrounded.
func (inv Invoice) GrandTotal() float64 {
	sub := inv.Subtotal()
	return sub + sub*inv.TaxRate/100
}

// RenderableItems returns the items that earn a row in the rendered table,
// in input order.
func (inv Invoice) RenderableItems() []LineItem {
	return lo.Filter(inv.Items, func(li LineItem, _ int) bool {
		return li.Renderable()
	})
}

// SenderInfo identifies the invoicing party. Fields may be empty.
type SenderInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// BankInfo holds payment and contact details for the sidebar footer.
// Fields may be empty; the engine renders whatever is present.
type BankInfo struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	SwiftCode     string `json:"swiftCode"`
	BankAddress   string `json:"bankAddress"`
	ContactName   string `json:"contactName"`
	ContactPhone  string `json:"contactPhone"`
	ContactEmail  string `json:"contactEmail"`
}

// Settings carries the sender and bank records shared by every invoice in a
// render request. The zero value is valid and renders as empty strings.
type Settings struct {
	Sender SenderInfo `json:"sender"`
	Bank   BankInfo   `json:"bank"`
}

// CurrencyCode maps a stored currency symbol to the code printed before
// amounts. Euro and pound symbols become ISO codes so the built-in fonts
// need no glyph for them; everything else passes through, and a missing
// symbol defaults to "$".
func CurrencyCode(symbol string) string {
	switch symbol {
	case "€":
		return "EUR"
	case "£":
		return "GBP"
	case "":
		return "$"
	}
	return symbol
}

// FormatAmount renders a monetary value as the currency code followed by the
// amount fixed to exactly two decimals.
func FormatAmount(code string, v float64) string {
	return fmt.Sprintf("%s%.2f", code, v)
}

// FormatNumber renders a quantity or rate in its shortest decimal form,
// without a trailing ".0" and never in scientific notation.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate rewrites an ISO "2006-01-02" date as "02 / 01 / 2006".
// Input that does not match the ISO shape is returned unchanged, matching
// how hand-entered dates were historically stored.
func FormatDate(s string) string {
	if !isISODate(s) {
		return s
	}
	return s[8:10] + " / " + s[5:7] + " / " + s[0:4]
}

func isISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

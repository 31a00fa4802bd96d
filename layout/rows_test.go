package layout

import (
	"testing"

	"github.com/pdfinvoicer/invoicepdf/invoice"
)

func TestBuildItemRowsDisplayRules(t *testing.T) {
	tests := []struct {
		name string
		item invoice.LineItem
		want [5]string
	}{
		{
			"full row",
			invoice.LineItem{Description: "Consulting", Quantity: 2, Unit: "day", UnitPrice: 500},
			[5]string{"2", "Consulting", "day", "$500.00", "$1000.00"},
		},
		{
			"unit price suppressed without a unit label",
			invoice.LineItem{Description: "Consulting", Quantity: 2, UnitPrice: 500},
			[5]string{"2", "Consulting", "", "", "$1000.00"},
		},
		{
			"no total without a positive product",
			invoice.LineItem{Description: "Retainer", Unit: "month", UnitPrice: 800},
			[5]string{"", "Retainer", "month", "$800.00", ""},
		},
		{
			"description only",
			invoice.LineItem{Description: "See attachment"},
			[5]string{"", "See attachment", "", "", ""},
		},
		{
			"fractional quantity keeps its shortest form",
			invoice.LineItem{Description: "Support", Quantity: 1.5, Unit: "h", UnitPrice: 90},
			[5]string{"1.5", "Support", "h", "$90.00", "$135.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := invoice.Invoice{Items: []invoice.LineItem{tt.item}}
			rows := buildItemRows(inv)
			if len(rows) == 0 {
				t.Fatal("no rows built")
			}
			if rows[0] != tt.want {
				t.Errorf("row = %q, want %q", rows[0], tt.want)
			}
		})
	}
}

func TestBuildItemRowsPadding(t *testing.T) {
	item := invoice.LineItem{Description: "Work", Quantity: 1, Unit: "h", UnitPrice: 10}

	tests := []struct {
		qualifying int
		wantRows   int
	}{
		{0, 0},
		{1, 3},
		{2, 4},
		{4, 6},
		{5, 5},
		{8, 8},
	}
	for _, tt := range tests {
		var inv invoice.Invoice
		for i := 0; i < tt.qualifying; i++ {
			inv.Items = append(inv.Items, item)
		}
		rows := buildItemRows(inv)
		if len(rows) != tt.wantRows {
			t.Errorf("%d qualifying items: %d rows, want %d", tt.qualifying, len(rows), tt.wantRows)
		}
		for i := tt.qualifying; i < len(rows); i++ {
			if rows[i] != ([5]string{}) {
				t.Errorf("padding row %d is not blank: %q", i, rows[i])
			}
		}
	}
}

func TestBuildItemRowsSkipsNonRenderable(t *testing.T) {
	inv := invoice.Invoice{Items: []invoice.LineItem{
		{},
		{Quantity: 3},
		{UnitPrice: 50},
		{Description: "kept"},
	}}
	rows := buildItemRows(inv)
	// One qualifying row plus two padding rows.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][1] != "kept" {
		t.Errorf("first row = %q", rows[0])
	}
}

func TestBuildItemRowsCurrencyCode(t *testing.T) {
	inv := invoice.Invoice{
		Currency: "€",
		Items:    []invoice.LineItem{{Description: "Work", Quantity: 2, Unit: "h", UnitPrice: 120}},
	}
	rows := buildItemRows(inv)
	if rows[0][3] != "EUR120.00" || rows[0][4] != "EUR240.00" {
		t.Errorf("row = %q", rows[0])
	}
}

package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/pdfinvoicer/invoicepdf/invoice"
)

func testInvoice(n int) invoice.Invoice {
	return invoice.Invoice{
		ID:            int64(n),
		InvoiceNumber: fmt.Sprintf("INV-%03d", n),
		Date:          "2025-03-14",
		Client:        "Acme GmbH",
		ClientAddress: "Musterstrasse 1\n10115 Berlin",
		Currency:      "€",
		TaxRate:       19,
		Items: []invoice.LineItem{
			{ID: 1, Description: "Consulting", Quantity: 8, Unit: "h", UnitPrice: 120},
			{ID: 2, Description: "Travel", Quantity: 1, Unit: "day", UnitPrice: 300},
		},
	}
}

func testSettings() invoice.Settings {
	return invoice.Settings{
		Sender: invoice.SenderInfo{
			Name:    "Jane Example",
			Address: "Beispielweg 2, 20095 Hamburg",
			Phone:   "+49 40 123456",
		},
		Bank: invoice.BankInfo{
			BankName:      "Deutsche Kreditbank",
			AccountNumber: "DE02120300000000202051",
			SwiftCode:     "BYLADEM1001",
			ContactName:   "Jane Example",
			ContactEmail:  "jane@example.com",
		},
	}
}

var pageCountRe = regexp.MustCompile(`/Count (\d+)`)

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	m := pageCountRe.FindSubmatch(data)
	if m == nil {
		t.Fatal("no page tree in document")
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	return n
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"single", NewSingle(testInvoice(1), testSettings(), "Classic"), nil},
		{"single without invoice", Request{Mode: ModeSingle}, ErrNoInvoice},
		{"bulk", NewBulk([]invoice.Invoice{testInvoice(1)}, testSettings(), "Classic", nil), nil},
		{"bulk without invoices", Request{Mode: ModeBulk}, ErrNoInvoices},
		{"unknown mode", Request{Mode: "batch"}, ErrUnknownMode},
		{"empty mode", Request{}, ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDocumentSingle(t *testing.T) {
	data, err := Document(NewSingle(testInvoice(1), testSettings(), "Classic"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if got := pageCount(t, data); got != 1 {
		t.Fatalf("page count = %d, want 1", got)
	}
}

func TestDocumentBulkOnePagePerInvoice(t *testing.T) {
	invs := []invoice.Invoice{testInvoice(1), testInvoice(2), testInvoice(3)}
	data, err := Document(NewBulk(invs, testSettings(), "Classic", nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := pageCount(t, data); got != len(invs) {
		t.Fatalf("page count = %d, want %d", got, len(invs))
	}
}

func TestDocumentInvalid(t *testing.T) {
	_, err := Document(Request{Mode: ModeBulk})
	if !errors.Is(err, ErrNoInvoices) {
		t.Fatalf("err = %v, want ErrNoInvoices", err)
	}
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %T, want *Error", err)
	}
	if rerr.Op != "Document" {
		t.Fatalf("Op = %q, want Document", rerr.Op)
	}
}

func TestDocumentDeterministic(t *testing.T) {
	req := NewBulk([]invoice.Invoice{testInvoice(1), testInvoice(2)}, testSettings(), "Emerald & Silver", nil)
	a, err := Document(req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Document(req)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("identical requests produced different bytes")
	}
}

func TestDocumentThemeOverrides(t *testing.T) {
	invs := []invoice.Invoice{testInvoice(1), testInvoice(2)}
	plain, err := Document(NewBulk(invs, testSettings(), "Classic", nil))
	if err != nil {
		t.Fatal(err)
	}
	overridden, err := Document(NewBulk(invs, testSettings(), "Classic", map[int64]string{2: "Ruby & Slate"}))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(plain, overridden) {
		t.Fatal("theme override did not change the document")
	}
}

func TestDocumentEmptyOverrideUsesDefaultTheme(t *testing.T) {
	invs := []invoice.Invoice{testInvoice(1), testInvoice(2)}
	plain, err := Document(NewBulk(invs, testSettings(), "Charcoal & Amber", nil))
	if err != nil {
		t.Fatal(err)
	}
	empty, err := Document(NewBulk(invs, testSettings(), "Charcoal & Amber", map[int64]string{2: ""}))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(plain, empty) {
		t.Fatal("empty override entry must fall back to the default theme, not Classic")
	}
}

func TestDocumentUnknownThemeFallsBack(t *testing.T) {
	classic, err := Document(NewSingle(testInvoice(1), testSettings(), "Classic"))
	if err != nil {
		t.Fatal(err)
	}
	unknown, err := Document(NewSingle(testInvoice(1), testSettings(), "no-such-theme"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(classic, unknown) {
		t.Fatal("unknown theme should render with the default palette")
	}
}

func TestCoordinatorRender(t *testing.T) {
	c := NewCoordinator()
	data, err := c.Render(context.Background(), NewSingle(testInvoice(1), testSettings(), "Classic"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestCoordinatorValidates(t *testing.T) {
	c := NewCoordinator()
	_, err := c.Render(context.Background(), Request{Mode: ModeSingle})
	if !errors.Is(err, ErrNoInvoice) {
		t.Fatalf("err = %v, want ErrNoInvoice", err)
	}
}

func TestIsolatorRecoversPanic(t *testing.T) {
	orig := renderDocument
	renderDocument = func(Request) ([]byte, error) { panic("boom") }
	defer func() { renderDocument = orig }()

	data, err := goroutineIsolator{}.Render(context.Background(), NewSingle(testInvoice(1), testSettings(), "Classic"))
	if err == nil {
		t.Fatal("expected an error from a panicking render")
	}
	if data != nil {
		t.Fatal("panicking render must not yield bytes")
	}
}

func TestIsolatorContextCancel(t *testing.T) {
	block := make(chan struct{})
	orig := renderDocument
	renderDocument = func(Request) ([]byte, error) {
		<-block
		return nil, nil
	}
	defer func() {
		close(block)
		renderDocument = orig
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := goroutineIsolator{}.Render(ctx, NewSingle(testInvoice(1), testSettings(), "Classic"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestIsolatorReturnsFreshCopy(t *testing.T) {
	req := NewSingle(testInvoice(1), testSettings(), "Classic")
	a, err := goroutineIsolator{}.Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte(nil), a...)
	for i := range a {
		a[i] = 0
	}
	b, err := goroutineIsolator{}.Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, want) {
		t.Fatal("mutating a returned document affected a later render")
	}
}

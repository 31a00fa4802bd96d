// Package render assembles invoice documents and coordinates their
// generation. A Request describes either a single invoice or a bulk
// export; Document turns it into PDF bytes, and Coordinator wraps that
// behind a pluggable isolation strategy so a rendering failure never
// takes down the caller.
package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/pdfinvoicer/invoicepdf/invoice"
	"github.com/pdfinvoicer/invoicepdf/layout"
	"github.com/pdfinvoicer/invoicepdf/theme"
)

// Mode selects how a Request is interpreted.
type Mode string

const (
	// ModeSingle renders one invoice into a one-page document.
	ModeSingle Mode = "single"
	// ModeBulk renders every invoice in order, one page each, into a
	// single document.
	ModeBulk Mode = "bulk"
)

// Request carries everything needed to render a document. It is the
// unit exchanged with out-of-process workers, so all fields marshal to
// JSON.
type Request struct {
	Mode     Mode              `json:"mode"`
	Invoice  *invoice.Invoice  `json:"invoice,omitempty"`
	Invoices []invoice.Invoice `json:"invoices,omitempty"`
	Settings invoice.Settings  `json:"settings"`

	// Theme names the palette for a single render. Bulk renders use
	// DefaultTheme unless ThemeOverrides names a palette for a given
	// invoice ID. Unknown names fall back to the default palette.
	Theme          string           `json:"theme,omitempty"`
	DefaultTheme   string           `json:"defaultTheme,omitempty"`
	ThemeOverrides map[int64]string `json:"themeOverrides,omitempty"`
}

// NewSingle builds a single-invoice request.
func NewSingle(inv invoice.Invoice, settings invoice.Settings, themeName string) Request {
	return Request{
		Mode:     ModeSingle,
		Invoice:  &inv,
		Settings: settings,
		Theme:    themeName,
	}
}

// NewBulk builds a bulk request over invs, rendered in the given order.
func NewBulk(invs []invoice.Invoice, settings invoice.Settings, defaultTheme string, overrides map[int64]string) Request {
	return Request{
		Mode:           ModeBulk,
		Invoices:       invs,
		Settings:       settings,
		DefaultTheme:   defaultTheme,
		ThemeOverrides: overrides,
	}
}

// Validate reports whether the request is renderable.
func (r Request) Validate() error {
	switch r.Mode {
	case ModeSingle:
		if r.Invoice == nil {
			return ErrNoInvoice
		}
		return nil
	case ModeBulk:
		if len(r.Invoices) == 0 {
			return ErrNoInvoices
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, string(r.Mode))
	}
}

// invoices returns the render list in page order.
func (r Request) invoices() []invoice.Invoice {
	if r.Mode == ModeSingle {
		return []invoice.Invoice{*r.Invoice}
	}
	return r.Invoices
}

// themeFor resolves the palette for one invoice.
func (r Request) themeFor(inv invoice.Invoice) theme.Theme {
	if r.Mode == ModeSingle {
		return theme.Lookup(r.Theme)
	}
	// An empty override entry counts as absent, not as the fallback palette.
	if name, ok := r.ThemeOverrides[inv.ID]; ok && name != "" {
		return theme.Lookup(name)
	}
	return theme.Lookup(r.DefaultTheme)
}

// creationDate pins document metadata so identical requests produce
// byte-identical output.
var creationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Document renders the request into a finished PDF. Each invoice
// occupies exactly one page, in request order.
func Document(req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, newError("Document", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(creationDate)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Invoice", true)

	for _, inv := range req.invoices() {
		pdf.AddPage()
		if err := layout.Draw(pdf, inv, req.Settings, req.themeFor(inv)); err != nil {
			return nil, newError("Document", err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, newError("Document", err)
	}
	return buf.Bytes(), nil
}

// Isolator runs a render away from the caller so panics and runaway
// work cannot corrupt caller state.
type Isolator interface {
	Render(ctx context.Context, req Request) ([]byte, error)
}

// goroutineIsolator renders in a fresh goroutine per request and
// recovers panics into errors.
type goroutineIsolator struct{}

// renderDocument is swapped in tests to exercise the recovery path.
var renderDocument = Document

type renderResult struct {
	data []byte
	err  error
}

func (goroutineIsolator) Render(ctx context.Context, req Request) ([]byte, error) {
	ch := make(chan renderResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- renderResult{err: newError("Render", fmt.Errorf("panic: %v", r))}
			}
		}()
		data, err := renderDocument(req)
		ch <- renderResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, newError("Render", ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		// Hand the caller its own copy so later renders cannot alias it.
		return append([]byte(nil), res.data...), nil
	}
}

// Coordinator is the front door for rendering. It validates requests,
// delegates to the configured Isolator, and logs the outcome.
type Coordinator struct {
	log      *zap.Logger
	isolator Isolator
}

// NewCoordinator builds a Coordinator with in-process goroutine
// isolation and a nop logger unless options say otherwise.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		log:      zap.NewNop(),
		isolator: goroutineIsolator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render produces the PDF for req.
func (c *Coordinator) Render(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, newError("Render", err)
	}

	start := time.Now()
	c.log.Info("render started",
		zap.String("mode", string(req.Mode)),
		zap.Int("invoices", len(req.invoices())),
	)

	data, err := c.isolator.Render(ctx, req)
	if err != nil {
		c.log.Error("render failed",
			zap.String("mode", string(req.Mode)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	c.log.Info("render finished",
		zap.String("mode", string(req.Mode)),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return data, nil
}

// Command invoicepdf renders a request file into a PDF document.
//
// The request file holds a JSON render request:
//
//	invoicepdf -in request.json -out invoice.pdf
//
// With -worker pointing at an invoicepdf-worker binary the render runs
// in a separate process; otherwise it runs in-process. When -out is
// omitted the file name derives from the request: Invoice-<number>.pdf
// for a single render, Invoice_Export_<date>.pdf for a bulk one.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pdfinvoicer/invoicepdf/render"
	"github.com/pdfinvoicer/invoicepdf/worker"
)

func main() {
	var (
		inPath     = flag.String("in", "", "render request JSON file (default stdin)")
		outPath    = flag.String("out", "", "output PDF file, \"-\" for stdout (default derived from the request)")
		workerPath = flag.String("worker", "", "path to an invoicepdf-worker binary for out-of-process rendering")
		verbose    = flag.Bool("v", false, "log render progress to stderr")
	)
	flag.Parse()

	if err := run(*inPath, *outPath, *workerPath, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "invoicepdf: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, workerPath string, verbose bool) error {
	req, err := readRequest(inPath)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		log, err = cfg.Build()
		if err != nil {
			return err
		}
		defer log.Sync()
	}

	opts := []render.Option{render.WithLogger(log)}
	if workerPath != "" {
		opts = append(opts, render.WithIsolator(worker.NewClient(workerPath, log)))
	}

	data, err := render.NewCoordinator(opts...).Render(context.Background(), req)
	if err != nil {
		return err
	}

	if outPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if outPath == "" {
		outPath = defaultFileName(req)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return err
	}

	fmt.Println(outPath)
	return nil
}

func readRequest(path string) (render.Request, error) {
	var req render.Request

	in := io.Reader(os.Stdin)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return req, err
		}
		defer f.Close()
		in = f
	}

	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

func defaultFileName(req render.Request) string {
	if req.Mode == render.ModeSingle && req.Invoice != nil && req.Invoice.InvoiceNumber != "" {
		return fmt.Sprintf("Invoice-%s.pdf", req.Invoice.InvoiceNumber)
	}
	return fmt.Sprintf("Invoice_Export_%s.pdf", time.Now().Format("2006-01-02"))
}

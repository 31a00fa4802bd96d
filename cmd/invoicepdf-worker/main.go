// Command invoicepdf-worker renders invoice PDFs for a parent process.
//
// It reads newline-delimited JSON envelopes on stdin and writes one
// response per envelope on stdout:
//
//	{"type": "single", "payload": {...render request...}}
//	{"status": "success", "data": "<base64 PDF>", "mimeType": "application/pdf"}
//
// Envelope types are "single" (one invoice, one page) and "bulk" (one
// page per invoice in a single document). Failures answer with
// {"status": "error", "error": "..."} and the loop keeps serving.
//
// Logs go to stderr so stdout stays a clean protocol stream.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdfinvoicer/invoicepdf/worker"
)

func main() {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invoicepdf-worker: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := worker.NewServer(log).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "invoicepdf-worker: %v\n", err)
		os.Exit(1)
	}
}

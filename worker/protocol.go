// Package worker moves document rendering into a separate process. A
// Server reads newline-delimited JSON render envelopes on stdin and
// writes one response per envelope on stdout; a Client spawns the
// worker binary for a single round trip and implements render.Isolator,
// so a crash in the renderer never reaches the caller's process.
package worker

import "github.com/pdfinvoicer/invoicepdf/render"

// Envelope is one render job on the wire.
type Envelope struct {
	Type    string         `json:"type"` // "single" or "bulk"
	Payload render.Request `json:"payload"`
}

// Response is the worker's answer to an Envelope. Data carries the
// finished document and marshals as base64.
type Response struct {
	Status   string `json:"status"`
	Data     []byte `json:"data,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Error    string `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"

	// MIMEType identifies the payload of a successful response.
	MIMEType = "application/pdf"
)

package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/pdfinvoicer/invoicepdf/render"
)

var (
	// ErrStart reports that the worker process could not be spawned.
	ErrStart = errors.New("worker: start failed")
	// ErrFailed reports that the worker answered with an error response.
	ErrFailed = errors.New("worker: render failed")
)

// Client renders by spawning the worker binary for a single round trip.
// It satisfies render.Isolator, so it plugs into a render.Coordinator
// via render.WithIsolator.
type Client struct {
	path string
	log  *zap.Logger
}

// NewClient returns a client that spawns the worker binary at path.
func NewClient(path string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{path: path, log: log}
}

// Render spawns a fresh worker, sends one envelope, reads one response
// and tears the process down. The process is released on every path,
// success or failure.
func (c *Client) Render(ctx context.Context, req render.Request) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStart, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStart, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStart, err)
	}
	defer func() {
		cmd.Process.Kill()
		cmd.Wait()
	}()

	c.log.Info("worker spawned",
		zap.String("path", c.path),
		zap.String("mode", string(req.Mode)),
		zap.Int("pid", cmd.Process.Pid),
	)

	env := Envelope{Type: string(req.Mode), Payload: req}
	enc := json.NewEncoder(stdin)
	if err := enc.Encode(env); err != nil {
		return nil, fmt.Errorf("worker: send envelope: %w", err)
	}
	stdin.Close()

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("worker: read response: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("worker: read response: %w", err)
		}
		return nil, fmt.Errorf("%w: worker exited without a response", ErrFailed)
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("worker: decode response: %w", err)
	}

	if resp.Status != StatusSuccess {
		return nil, fmt.Errorf("%w: %s", ErrFailed, resp.Error)
	}

	c.log.Info("worker finished", zap.Int("bytes", len(resp.Data)))
	return resp.Data, nil
}

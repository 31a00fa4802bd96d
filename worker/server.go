package worker

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/pdfinvoicer/invoicepdf/render"
)

// Server processes render envelopes over newline-delimited JSON.
type Server struct {
	input  io.Reader
	output io.Writer
	log    *zap.Logger
	mu     sync.Mutex
}

// NewServer creates a server reading from stdin and writing to stdout.
func NewServer(log *zap.Logger) *Server {
	return NewServerWithIO(log, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server with custom I/O for testing.
func NewServerWithIO(log *zap.Logger, in io.Reader, out io.Writer) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{input: in, output: out, log: log}
}

// Run processes envelopes until EOF. Every envelope gets exactly one
// response; malformed input and render failures answer with an error
// response rather than terminating the loop.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.input)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			s.log.Warn("malformed envelope", zap.Error(err))
			s.sendError(fmt.Sprintf("decode envelope: %v", err))
			continue
		}

		s.handle(env)
	}

	return scanner.Err()
}

func (s *Server) handle(env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("render panicked", zap.Any("panic", r))
			s.sendError(fmt.Sprintf("render panicked: %v", r))
		}
	}()

	req := env.Payload
	if env.Type != "" {
		req.Mode = render.Mode(env.Type)
	}

	s.log.Info("render job received", zap.String("type", string(req.Mode)))

	data, err := render.Document(req)
	if err != nil {
		s.log.Error("render job failed", zap.Error(err))
		s.sendError(err.Error())
		return
	}

	s.log.Info("render job finished", zap.Int("bytes", len(data)))
	s.send(Response{Status: StatusSuccess, Data: data, MIMEType: MIMEType})
}

func (s *Server) sendError(msg string) {
	s.send(Response{Status: StatusError, Error: msg})
}

func (s *Server) send(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	s.output.Write(data)
}

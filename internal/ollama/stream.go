package ollama

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/bz888/ollamachat/internal/logger"
)

const (
	initialFragmentBuffer = 64 * 1024
	maxFragmentSize       = 4 * 1024 * 1024
)

// Stream decodes a newline-delimited JSON generation body.
//
// Fragments are reassembled across transport reads before they are parsed,
// so a JSON object split over two chunks is never lost. A complete line
// that still fails to parse is logged and skipped.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	log     *logger.Logger
}

func NewStream(body io.ReadCloser) *Stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, initialFragmentBuffer), maxFragmentSize)
	return &Stream{
		body:    body,
		scanner: scanner,
		log:     logger.NewLogger("ollama stream"),
	}
}

// Recv returns the next fragment. It returns io.EOF once the body is
// exhausted, and an *Error of KindServer when a fragment carries an error.
func (s *Stream) Recv() (GenerateResponse, error) {
	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var resp GenerateResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			s.log.Warn("Dropping unparsable fragment:", err)
			continue
		}
		if resp.Error != "" {
			return resp, &Error{Kind: KindServer, Message: resp.Error}
		}
		return resp, nil
	}

	if err := s.scanner.Err(); err != nil {
		return GenerateResponse{}, &Error{Kind: KindConnection, Message: "failed to read stream", Cause: err}
	}
	return GenerateResponse{}, io.EOF
}

func (s *Stream) Close() error {
	return s.body.Close()
}

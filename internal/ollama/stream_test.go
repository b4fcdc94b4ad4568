package ollama

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader hands out the body in the given pieces, one per Read.
type chunkReader struct {
	chunks []string
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if c.chunks[0] == "" {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func collect(t *testing.T, s *Stream) (string, error) {
	t.Helper()
	var text strings.Builder
	for {
		resp, err := s.Recv()
		if errors.Is(err, io.EOF) {
			return text.String(), nil
		}
		if err != nil {
			return text.String(), err
		}
		text.WriteString(resp.Response)
	}
}

func TestStreamAccumulates(t *testing.T) {
	s := NewStream(io.NopCloser(strings.NewReader("{\"response\":\"Hel\"}\n{\"response\":\"lo\"}\n")))
	text, err := collect(t, s)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

func TestStreamRejoinsSplitFragments(t *testing.T) {
	body := &chunkReader{chunks: []string{
		`{"respo`,
		`nse":"Hel"}` + "\n" + `{"response":`,
		`"lo"}` + "\n",
	}}
	text, err := collect(t, NewStream(io.NopCloser(body)))
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

func TestStreamOneByteReads(t *testing.T) {
	body := iotest.OneByteReader(strings.NewReader("{\"response\":\"a\"}\n{\"response\":\"b\"}\n{\"response\":\"c\"}"))
	text, err := collect(t, NewStream(io.NopCloser(body)))
	require.NoError(t, err)
	assert.Equal(t, "abc", text)
}

func TestStreamSkipsBlankAndBrokenLines(t *testing.T) {
	body := "\n  \n{\"response\":\"ok\"}\nnot json\n{\"response\":\"!\"}\n"
	text, err := collect(t, NewStream(io.NopCloser(strings.NewReader(body))))
	require.NoError(t, err)
	assert.Equal(t, "ok!", text)
}

func TestStreamServerError(t *testing.T) {
	body := "{\"response\":\"par\"}\n{\"error\":\"boom\"}\n{\"response\":\"never\"}\n"
	text, err := collect(t, NewStream(io.NopCloser(strings.NewReader(body))))
	require.Error(t, err)
	assert.Equal(t, "par", text)
	assert.True(t, IsKind(err, KindServer))
	assert.Equal(t, "boom", err.Error())
}

func TestStreamReadError(t *testing.T) {
	body := io.MultiReader(strings.NewReader("{\"response\":\"x\"}\n"), iotest.ErrReader(errors.New("reset")))
	text, err := collect(t, NewStream(io.NopCloser(body)))
	assert.Equal(t, "x", text)
	assert.True(t, IsKind(err, KindConnection))
	assert.ErrorContains(t, err, "reset")
}

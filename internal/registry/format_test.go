package registry

import (
	"testing"
	"time"

	"github.com/bz888/ollamachat/internal/ollama"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		0:             "0 Bytes",
		-5:            "0 Bytes",
		500:           "500 Bytes",
		1024:          "1 KB",
		1536:          "1.5 KB",
		1048576:       "1 MB",
		4700000000:    "4.38 GB",
		1099511627776: "1 TB",
		// beyond TB stays in TB
		1125899906842624: "1024 TB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBytes(in), "FormatBytes(%d)", in)
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{Name: "a", Meta: "Unknown size"}, Summarize(ollama.Model{Name: "a"}))

	m := ollama.Model{Name: "b", Size: 1024, ModifiedAt: time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)}
	assert.Equal(t, Summary{Name: "b", Meta: "1 KB • 2024-01-02"}, Summarize(m))
}

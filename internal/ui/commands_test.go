package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		input string
		cmd   command
		arg   string
	}{
		{"hello", cmdNone, ""},
		{"  /help ", cmdHelp, ""},
		{"/clear", cmdClear, ""},
		{"/models", cmdModels, ""},
		{"/model", cmdModels, ""},
		{"/model  phi3:mini ", cmdModel, "phi3:mini"},
		{"/debug", cmdDebug, ""},
		{"/bye", cmdQuit, ""},
		{"/quit", cmdQuit, ""},
		{"/exit", cmdQuit, ""},
		{"/unknown thing", cmdNone, ""},
		{"what does /help do", cmdNone, ""},
	}
	for _, c := range cases {
		cmd, arg := parseCommand(c.input)
		assert.Equal(t, c.cmd, cmd, c.input)
		assert.Equal(t, c.arg, arg, c.input)
	}
}

func TestOptionIndex(t *testing.T) {
	options := []string{placeholderModel, "llama3:latest", "phi3:mini"}
	assert.Equal(t, 2, optionIndex(options, "phi3:mini"))
	assert.Equal(t, 1, optionIndex(options, "llama3:latest"))
	assert.Equal(t, 0, optionIndex(options, ""))
	assert.Equal(t, 0, optionIndex(options, "ghost"))
	assert.Equal(t, 0, optionIndex(nil, "phi3:mini"))
}

package ui

import "strings"

type command int

const (
	cmdNone command = iota
	cmdHelp
	cmdClear
	cmdModels
	cmdModel
	cmdDebug
	cmdQuit
)

const helpText = `Commands:
/help          Display this help message
/clear         Clear the conversation
/models        Jump to the model list
/model <name>  Switch to a model by name
/debug         Toggle the debug console
/bye           Exit the application

Enter sends, Alt+Enter inserts a newline.`

// parseCommand recognises the slash commands. Anything else, including an
// unknown slash word, is sent to the model as a prompt.
func parseCommand(input string) (command, string) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return cmdNone, ""
	}

	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/help":
		return cmdHelp, ""
	case "/clear":
		return cmdClear, ""
	case "/models":
		return cmdModels, ""
	case "/model":
		if arg == "" {
			return cmdModels, ""
		}
		return cmdModel, arg
	case "/debug":
		return cmdDebug, ""
	case "/bye", "/quit", "/exit":
		return cmdQuit, ""
	}
	return cmdNone, ""
}

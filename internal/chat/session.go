// Package chat runs one prompt/response exchange at a time against the
// selected model and renders the streamed reply into the message view.
package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"

	"github.com/bz888/ollamachat/internal/logger"
	"github.com/bz888/ollamachat/internal/ollama"
	"github.com/bz888/ollamachat/internal/view"
)

const MsgSelectModel = "Please select a model first"

var (
	ErrEmptyInput = errors.New("empty input")
	ErrNoModel    = errors.New("no model selected")
	ErrBusy       = errors.New("a response is already streaming")
)

type Generator interface {
	Generate(ctx context.Context, req *ollama.GenerateRequest) (*ollama.Stream, error)
}

type Selection interface {
	Selected() string
}

// Controls is the input side of the UI.
type Controls interface {
	ClearInput()
	// SetBusy disables (true) or re-enables (false) the input and send
	// controls and toggles the typing indicator.
	SetBusy(busy bool)
	FocusInput()
}

type Session struct {
	generator Generator
	selection Selection
	view      *view.View
	controls  Controls
	log       *logger.Logger

	inFlight atomic.Bool
}

func NewSession(generator Generator, selection Selection, v *view.View, controls Controls) *Session {
	return &Session{
		generator: generator,
		selection: selection,
		view:      v,
		controls:  controls,
		log:       logger.NewLogger("chat"),
	}
}

// Busy reports whether a response is streaming.
func (s *Session) Busy() bool {
	return s.inFlight.Load()
}

// Send submits text to the selected model and blocks until the reply has
// finished streaming. Failures after the preconditions are shown in the
// view as transient errors and also returned.
func (s *Session) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}

	model := s.selection.Selected()
	if model == "" {
		s.view.AppendTransientError(MsgSelectModel)
		return ErrNoModel
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.inFlight.Store(false)

	s.view.RemoveWelcome()
	s.view.Append(view.RoleUser, text)
	s.controls.ClearInput()
	s.controls.SetBusy(true)
	defer func() {
		s.controls.SetBusy(false)
		s.controls.FocusInput()
	}()

	s.log.Info("Input model:", model)
	err := s.exchange(ctx, model, text)
	if err != nil {
		s.log.Error("Chat error:", err)
		s.view.AppendTransientError("Failed to get response: " + err.Error())
	}
	return err
}

func (s *Session) exchange(ctx context.Context, model, prompt string) error {
	stream, err := s.generator.Generate(ctx, &ollama.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: true,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			s.log.Warn("Failed to close response body:", err)
		}
	}()

	reply := s.view.Append(view.RoleAssistant, "")

	var full strings.Builder
	detached := false
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if resp.Response == "" {
			continue
		}
		full.WriteString(resp.Response)
		if !reply.SetText(full.String()) && !detached {
			detached = true
			s.log.Warn("Reply entry was cleared, further updates are dropped")
		}
	}

	s.log.Info("Completed response,", full.Len(), "bytes")
	return nil
}

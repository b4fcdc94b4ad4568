package registry

import (
	"context"
	"errors"
	"sync"

	"github.com/bz888/ollamachat/internal/logger"
	"github.com/bz888/ollamachat/internal/ollama"
)

const (
	MsgLoadFailed     = "Failed to load models"
	MsgNoModels       = "No models available"
	MsgLoadingDetails = "Loading details..."
	MsgDetailsFailed  = "Failed to load details"
)

var ErrUnknownModel = errors.New("unknown model")

type Summary struct {
	Name string
	Meta string
}

type Field struct {
	Label string
	Value string
}

// Notice is a status line shown in place of panel content.
type Notice struct {
	Text  string
	Error bool
}

// Panel displays registry state. Implementations must be safe to call from
// any goroutine.
type Panel interface {
	SetModels(models []ollama.Model)
	SetSelected(name string)
	SetSummary(s Summary)
	SetSummaryNotice(n Notice)
	SetDetails(fields []Field)
	SetDetailsNotice(n Notice)
}

type ModelSource interface {
	ListModels(ctx context.Context) ([]ollama.Model, error)
	ShowModel(ctx context.Context, name string) (*ollama.ModelInfo, error)
}

// Registry owns the model list and the current selection.
type Registry struct {
	source ModelSource
	panel  Panel
	log    *logger.Logger

	mu       sync.RWMutex
	models   []ollama.Model
	selected string
}

func New(source ModelSource, panel Panel) *Registry {
	return &Registry{
		source: source,
		panel:  panel,
		log:    logger.NewLogger("registry"),
	}
}

// Load fetches the model list and selects the first model, if any. The
// error is returned for logging only; the panel already shows the outcome.
func (r *Registry) Load(ctx context.Context) error {
	models, err := r.source.ListModels(ctx)
	if err != nil {
		r.log.Error("Error loading models:", err)
		r.panel.SetSummaryNotice(Notice{Text: MsgLoadFailed, Error: true})
		return err
	}

	r.mu.Lock()
	r.models = models
	r.mu.Unlock()

	if len(models) == 0 {
		r.log.Warn("Server returned no models")
		r.panel.SetSummaryNotice(Notice{Text: MsgNoModels})
		return nil
	}

	r.panel.SetModels(models)
	r.log.Info("Loaded", len(models), "models")
	return r.Select(ctx, models[0].Name)
}

// Select makes name the current model and fetches its details. An empty
// name clears the selection.
func (r *Registry) Select(ctx context.Context, name string) error {
	if name == "" {
		r.mu.Lock()
		r.selected = ""
		r.mu.Unlock()
		r.panel.SetSelected("")
		return nil
	}

	model, ok := r.Lookup(name)
	if !ok {
		r.log.Warn("Ignoring unknown model:", name)
		return ErrUnknownModel
	}

	r.mu.Lock()
	r.selected = name
	r.mu.Unlock()

	r.log.Info("Selected:", name)
	r.panel.SetSelected(name)
	r.panel.SetSummary(Summarize(model))
	return r.Details(ctx, name)
}

// Details fetches and renders the details of name. It does not change the
// selection.
func (r *Registry) Details(ctx context.Context, name string) error {
	r.panel.SetDetailsNotice(Notice{Text: MsgLoadingDetails})

	info, err := r.source.ShowModel(ctx, name)
	if err != nil {
		r.log.Error("Error loading model details:", err)
		r.panel.SetDetailsNotice(Notice{Text: MsgDetailsFailed, Error: true})
		return err
	}

	r.panel.SetDetails(DetailFields(name, info))
	return nil
}

func (r *Registry) Selected() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected
}

func (r *Registry) Models() []ollama.Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ollama.Model, len(r.models))
	copy(out, r.models)
	return out
}

func (r *Registry) Lookup(name string) (ollama.Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.models {
		if m.Name == name {
			return m, true
		}
	}
	return ollama.Model{}, false
}

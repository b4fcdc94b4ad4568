// Package view holds the ordered list of entries shown in the conversation
// pane. It knows nothing about terminals; renderers subscribe with OnChange
// and read a snapshot through Entries.
package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultDismissDelay = 5000 * time.Millisecond

type Kind int

const (
	KindWelcome Kind = iota
	KindUser
	KindAssistant
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindWelcome:
		return "welcome"
	case KindUser:
		return "user"
	case KindAssistant:
		return "assistant"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Entry struct {
	ID   uuid.UUID
	Kind Kind
	Text string
}

// Scheduler runs f once after d. time.AfterFunc satisfies it.
type Scheduler func(d time.Duration, f func())

type Option func(*View)

func WithDismissDelay(d time.Duration) Option {
	return func(v *View) {
		if d > 0 {
			v.dismissDelay = d
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(v *View) {
		v.schedule = s
	}
}

// View is safe for concurrent use.
type View struct {
	mu           sync.Mutex
	entries      []Entry
	dismissDelay time.Duration
	schedule     Scheduler
	listeners    []func()
}

// New returns a view holding only the welcome placeholder.
func New(opts ...Option) *View {
	v := &View{
		dismissDelay: DefaultDismissDelay,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.entries = []Entry{welcomeEntry()}
	return v
}

func welcomeEntry() Entry {
	return Entry{ID: uuid.New(), Kind: KindWelcome}
}

func (v *View) DismissDelay() time.Duration {
	return v.dismissDelay
}

// OnChange registers fn to run after every mutation, outside the lock.
func (v *View) OnChange(fn func()) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	v.mu.Unlock()
}

func (v *View) notify() {
	v.mu.Lock()
	listeners := make([]func(), len(v.listeners))
	copy(listeners, v.listeners)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Entries returns a copy of the current entries in display order.
func (v *View) Entries() []Entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Append adds a message at the end and returns a handle to it.
func (v *View) Append(role Role, text string) *Handle {
	kind := KindUser
	if role == RoleAssistant {
		kind = KindAssistant
	}
	e := Entry{ID: uuid.New(), Kind: kind, Text: text}

	v.mu.Lock()
	v.entries = append(v.entries, e)
	v.mu.Unlock()

	v.notify()
	return &Handle{view: v, id: e.ID}
}

// AppendTransientError adds an error entry that is removed after the
// dismiss delay, counted from now.
func (v *View) AppendTransientError(message string) uuid.UUID {
	e := Entry{ID: uuid.New(), Kind: KindError, Text: message}

	v.mu.Lock()
	v.entries = append(v.entries, e)
	v.mu.Unlock()

	v.schedule(v.dismissDelay, func() {
		if v.remove(e.ID) {
			v.notify()
		}
	})
	v.notify()
	return e.ID
}

// RemoveWelcome drops the placeholder if present.
func (v *View) RemoveWelcome() bool {
	v.mu.Lock()
	removed := false
	kept := v.entries[:0]
	for _, e := range v.entries {
		if e.Kind == KindWelcome {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	v.entries = kept
	v.mu.Unlock()

	if removed {
		v.notify()
	}
	return removed
}

// Clear removes every message and error entry and leaves exactly one
// welcome placeholder. Handles to removed entries become detached.
func (v *View) Clear() {
	v.mu.Lock()
	var welcome *Entry
	for i := range v.entries {
		if v.entries[i].Kind == KindWelcome {
			welcome = &v.entries[i]
			break
		}
	}
	if welcome != nil {
		v.entries = []Entry{*welcome}
	} else {
		v.entries = []Entry{welcomeEntry()}
	}
	v.mu.Unlock()

	v.notify()
}

func (v *View) remove(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, e := range v.entries {
		if e.ID == id {
			v.entries = append(v.entries[:i], v.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (v *View) setText(id uuid.UUID, text string) bool {
	v.mu.Lock()
	found := false
	for i := range v.entries {
		if v.entries[i].ID == id {
			v.entries[i].Text = text
			found = true
			break
		}
	}
	v.mu.Unlock()

	if found {
		v.notify()
	}
	return found
}

// Handle points at one entry.
type Handle struct {
	view *View
	id   uuid.UUID
}

func (h *Handle) ID() uuid.UUID {
	return h.id
}

// SetText replaces the entry's text. It reports false, and does nothing,
// once the entry has been cleared from the view.
func (h *Handle) SetText(text string) bool {
	return h.view.setText(h.id, text)
}

// Attached reports whether the entry is still in the view.
func (h *Handle) Attached() bool {
	h.view.mu.Lock()
	defer h.view.mu.Unlock()
	for _, e := range h.view.entries {
		if e.ID == h.id {
			return true
		}
	}
	return false
}

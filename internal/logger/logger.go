package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rivo/tview"
)

type Level int

const (
	Info Level = iota
	Error
	Warn
	Fatal
)

type Message struct {
	Timestamp time.Time
	Tag       string
	Message   string
	Level     Level
}

// Options configures the process-wide log manager.
type Options struct {
	Dev     bool
	LogPath string
	// Console receives colourised copies of every line while Dev is set.
	// A *tview.TextView is the usual target.
	Console io.Writer
}

type manager struct {
	mu      sync.Mutex
	dev     bool
	console io.Writer
	file    *os.File
	logChan chan Message
	closed  bool
	wg      sync.WaitGroup
}

// Logger is a tagged handle onto the shared manager. It is safe to create
// before Init; lines logged that early are dropped.
type Logger struct {
	tag string
}

var (
	current   = &manager{}
	currentMu sync.RWMutex
)

// Init replaces the log manager. A previous manager is closed first.
func Init(opts Options) error {
	m := &manager{
		dev:     opts.Dev,
		console: opts.Console,
	}

	if opts.LogPath != "" {
		timestamp := time.Now().Format("20060102_150405")
		fileName := fmt.Sprintf("ollamachat_log_%s.log", timestamp)
		filePath := filepath.Join(opts.LogPath, fileName)

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		m.file = file
		m.logChan = make(chan Message, 100)
		m.wg.Add(1)
		go m.processLogs()
	}

	currentMu.Lock()
	prev := current
	current = m
	currentMu.Unlock()

	prev.close()
	return nil
}

// SetConsole swaps the debug console. Passing nil turns mirroring off.
func SetConsole(w io.Writer) {
	m := active()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.console = w
	m.dev = w != nil
}

// Close flushes pending file writes and releases the log file.
func Close() {
	active().close()
}

func active() *manager {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

func NewLogger(tag string) *Logger {
	return &Logger{tag: tag}
}

func (m *manager) processLogs() {
	defer m.wg.Done()
	for msg := range m.logChan {
		timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")
		line := fmt.Sprintf("%s [%s] %s: %s\n", timestamp, msg.Tag, msg.Level, msg.Message)
		m.file.WriteString(line)
	}
}

func (m *manager) close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	if m.logChan != nil {
		close(m.logChan)
	}
	m.mu.Unlock()

	m.wg.Wait()
	if m.file != nil {
		m.file.Close()
	}
}

func (m *manager) write(tag string, level Level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dev {
		if m.console != nil {
			var format string
			switch level {
			case Info:
				format = "[green]DEBUG (%s): %s[-]\n"
			case Warn:
				format = "[yellow]DEBUG (%s): %s[-]\n"
			default:
				format = "[red]DEBUG (%s): %s[-]\n"
			}
			fmt.Fprintf(m.console, format, tview.Escape(tag), tview.Escape(message))
		} else {
			log.Printf("[%s] %s: %s", tag, level, message)
		}
	}

	if m.logChan != nil && !m.closed {
		m.logChan <- Message{
			Timestamp: time.Now(),
			Tag:       tag,
			Message:   message,
			Level:     level,
		}
	}
}

func (l *Logger) log(level Level, v ...interface{}) {
	active().write(l.tag, level, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (l *Logger) Info(v ...interface{}) {
	l.log(Info, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.log(Error, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.log(Warn, v...)
}

func (l *Logger) Fatal(v ...interface{}) {
	l.log(Fatal, v...)
	Close()
	os.Exit(1)
}

func (t Level) String() string {
	switch t {
	case Info:
		return "INFO"
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

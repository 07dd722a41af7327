// Package chatlog provides asynchronous NDJSON logging of screening
// conversations for operational review.
package chatlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is one logged conversation turn.
type Event struct {
	Timestamp time.Time `json:"ts"`
	SessionID string    `json:"session_id"`
	Direction string    `json:"direction"` // "inbound" or "outbound"
	Stage     string    `json:"stage,omitempty"`
	Content   string    `json:"content"`
	Submit    bool      `json:"submit,omitempty"`
}

// Config controls conversation logging.
type Config struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Logger appends conversation events to one NDJSON file per session. Writes
// happen on a background goroutine; Log never blocks message handling, and
// events are dropped (with a counter) when the queue is full.
type Logger struct {
	cfg    Config
	queue  chan Event
	done   chan struct{}
	logger *slog.Logger

	mu      sync.Mutex
	dropped int64
	closed  bool
}

// New creates a conversation logger. A disabled config yields a logger whose
// Log is a no-op.
func New(cfg Config, logger *slog.Logger) (*Logger, error) {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Logger{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		return l, nil
	}

	if cfg.Dir == "" {
		return nil, fmt.Errorf("conversation log dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create conversation log dir: %w", err)
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1000
	}
	l.queue = make(chan Event, queueSize)
	l.done = make(chan struct{})
	go l.run()

	return l, nil
}

// Log enqueues an event for writing. Safe to call on a nil or disabled logger.
func (l *Logger) Log(ev Event) {
	if l == nil || !l.cfg.Enabled {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	select {
	case l.queue <- ev:
	default:
		l.dropped++
		if l.dropped%100 == 1 {
			l.logger.Warn("Conversation log queue full, dropping events", "dropped", l.dropped)
		}
	}
}

// Close drains the queue and stops the writer.
func (l *Logger) Close() error {
	if l == nil || !l.cfg.Enabled {
		return nil
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	close(l.queue)
	<-l.done
	return nil
}

func (l *Logger) run() {
	defer close(l.done)
	for ev := range l.queue {
		if err := l.write(ev); err != nil {
			l.logger.Warn("Failed to write conversation log event", "session_id", ev.SessionID, "error", err)
		}
	}
}

func (l *Logger) write(ev Event) error {
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	path := filepath.Join(l.cfg.Dir, ev.SessionID+".ndjson")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append session log: %w", err)
	}
	return nil
}

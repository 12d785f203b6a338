package audit

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger appends one JSON line per state-changing operation to an audit
// file. A nil *Logger is valid and records nothing, so callers never have
// to guard audit calls.
type Logger struct {
	logger zerolog.Logger
	file   *os.File
	mu     sync.Mutex
}

// Event describes a single audited operation.
type Event struct {
	Operation  string
	VM         string
	Node       string
	VMID       int
	Snapshot   string
	Error      error
	DurationMS int64
}

// DefaultPath returns the per-user audit log location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pve-tool", "audit.json")
}

// Open creates or appends to the audit log at path. The parent directory
// is created if needed.
func Open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}

	return &Logger{
		logger: zerolog.New(file).With().Timestamp().Logger(),
		file:   file,
	}, nil
}

// Record writes one audit event.
func (l *Logger) Record(e Event) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	result := "success"
	if e.Error != nil {
		result = "failure"
	}

	ev := l.logger.Log().
		Str("correlation_id", uuid.NewString()).
		Str("operation", e.Operation).
		Str("vm", e.VM).
		Str("result", result).
		Int64("duration_ms", e.DurationMS).
		Time("timestamp", time.Now())

	if e.Node != "" {
		ev = ev.Str("node", e.Node).Int("vmid", e.VMID)
	}
	if e.Snapshot != "" {
		ev = ev.Str("snapshot", e.Snapshot)
	}
	if e.Error != nil {
		ev = ev.Str("error", e.Error.Error())
	}

	ev.Send()
}

// Close releases the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

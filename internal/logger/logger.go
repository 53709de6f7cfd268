package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/portfolio.txt"

// maxLines bounds the in-memory history shown by the console.
const maxLines = 500

// Logger is a zerolog logger that also keeps recent lines in memory (for the in-app console)
// and appends them to a file on disk.
type Logger struct {
	zerolog.Logger
	lines *lineBuffer
	file  *os.File
}

// New returns a logger at the given level writing JSON to out (nil = no JSON output) and a
// human-readable copy to path (empty = no file) and to the in-memory buffer. A log file that
// cannot be opened is skipped.
func New(level string, out io.Writer, path string) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	l := &Logger{lines: &lineBuffer{}}
	human := []io.Writer{l.lines}
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0o755)
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			l.file = f
			human = append(human, f)
		}
	}
	console := zerolog.ConsoleWriter{
		Out:        io.MultiWriter(human...),
		NoColor:    true,
		TimeFormat: "2006-01-02 15:04:05",
	}
	var w io.Writer = console
	if out != nil {
		w = zerolog.MultiLevelWriter(out, console)
	}
	l.Logger = zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Str("service", "portfolio3d").Logger()
	return l
}

// Nop returns a logger that discards everything. Lines stays empty.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), lines: &lineBuffer{}}
}

// Log records a free-form line at info level, e.g. console input.
func (l *Logger) Log(line string) {
	l.Info().Msg(line)
}

// Lines returns a copy of the recent human-readable lines, oldest first.
func (l *Logger) Lines() []string {
	return l.lines.snapshot()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel maps a level name to a zerolog level. Unknown names mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// lineBuffer is an io.Writer that keeps the last maxLines lines written to it.
type lineBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		b.lines = append(b.lines, line)
	}
	if over := len(b.lines) - maxLines; over > 0 {
		b.lines = append(b.lines[:0:0], b.lines[over:]...)
	}
	return len(p), nil
}

func (b *lineBuffer) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

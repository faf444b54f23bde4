package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

const (
	DefaultFileName = "regionshot.log"
	maxSizeBytes    = 10 * 1024 * 1024 // 10 MB
	maxArchives     = 3
)

// Level filters what the package helpers write.
type Level int32

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = []string{"error", "warn", "info", "debug"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int32(l))
	}
	return levelNames[l]
}

// ParseLevel parses error, warn, info or debug.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelError, fmt.Errorf("invalid log level %q: expected one of %s", s, strings.Join(levelNames, ", "))
}

var current atomic.Int32

func init() { current.Store(int32(LevelWarn)) }

// Options configures where logs go.
type Options struct {
	// Path of the log file. Empty disables file logging.
	Path string
	// Stdout logs to standard output instead of the file.
	Stdout bool
	Level  Level
}

// Setup configures the standard logger. File logs rotate at 10MB keeping 3
// archives. With neither a path nor Stdout, logs are discarded.
func Setup(opts Options) {
	current.Store(int32(opts.Level))
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	switch {
	case opts.Stdout:
		log.SetOutput(os.Stdout)
	case opts.Path == "":
		log.SetOutput(io.Discard)
	default:
		if dir := filepath.Dir(opts.Path); dir != "" {
			_ = os.MkdirAll(dir, 0o755)
		}
		rotateIfNeeded(opts.Path)
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			log.SetOutput(io.Discard)
			return
		}
		log.SetOutput(&rotatingWriter{f: f, path: opts.Path})
	}
}

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool { return Level(current.Load()) >= l }

func output(l Level, format string, args ...any) {
	if !Enabled(l) {
		return
	}
	_ = log.Output(3, strings.ToUpper(l.String())+" "+fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) { output(LevelError, format, args...) }
func Warnf(format string, args ...any)  { output(LevelWarn, format, args...) }
func Infof(format string, args ...any)  { output(LevelInfo, format, args...) }
func Debugf(format string, args ...any) { output(LevelDebug, format, args...) }

type rotatingWriter struct {
	f    *os.File
	path string
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	// naive rotation check per write
	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > maxSizeBytes {
		_ = w.f.Close()
		rotate(w.path)
		nf, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return 0, err
		}
		w.f = nf
	}
	return w.f.Write(p)
}

func rotateIfNeeded(path string) {
	if st, err := os.Stat(path); err == nil && st.Size() > maxSizeBytes {
		rotate(path)
	}
}

// rotate shifts path to .1, .2, .3; the oldest is discarded.
func rotate(path string) {
	_ = os.Remove(archiveName(path, maxArchives))
	for i := maxArchives - 1; i >= 1; i-- {
		_ = os.Rename(archiveName(path, i), archiveName(path, i+1))
	}
	_ = os.Rename(path, archiveName(path, 1))
}

func archiveName(path string, n int) string { return fmt.Sprintf("%s.%d", path, n) }

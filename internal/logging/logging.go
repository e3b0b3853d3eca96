package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"walletgo/internal/config"
)

// Manager owns the root logger and the optional log file. Configure may be
// called again whenever the user saves new logging settings.
type Manager struct {
	mu     sync.RWMutex
	logger *slog.Logger
	file   *os.File
}

func NewManager() *Manager {
	return &Manager{
		logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (m *Manager) Configure(cfg config.LoggingConfig, filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}

	m.closeFileLocked()
	writer := io.Writer(os.Stdout)
	if cfg.LogToFile {
		file, err := openLogFile(filePath)
		if err != nil {
			return err
		}
		m.file = file
		writer = newTeeWriter(os.Stdout, file)
	}

	m.logger = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(m.logger)

	return nil
}

// Logger returns the root logger annotated with a component attribute.
func (m *Manager) Logger(component string) *slog.Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.logger.With("component", component)
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil

	return err
}

func (m *Manager) closeFileLocked() {
	if m.file != nil {
		_ = m.file.Close()
		m.file = nil
	}
}

func openLogFile(path string) (*os.File, error) {
	cleanPath := filepath.Clean(path)
	// #nosec G304 -- path is resolved by app runtime and points to user config dir.
	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return file, nil
}

func parseLevel(raw string) (slog.Leveler, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return nil, fmt.Errorf("unsupported log level: %q", raw)
	}
}

// teeWriter duplicates log output to every sink and keeps going when one of
// them fails; a full disk must not silence stdout and vice versa.
type teeWriter struct {
	sinks []io.Writer
}

func newTeeWriter(sinks ...io.Writer) io.Writer {
	kept := make([]io.Writer, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			kept = append(kept, sink)
		}
	}

	return &teeWriter{sinks: kept}
}

func (w *teeWriter) Write(p []byte) (int, error) {
	var (
		delivered bool
		firstErr  error
	)

	for _, sink := range w.sinks {
		n, err := sink.Write(p)
		switch {
		case err != nil:
			if firstErr == nil {
				firstErr = err
			}
		case n != len(p):
			if firstErr == nil {
				firstErr = io.ErrShortWrite
			}
		default:
			delivered = true
		}
	}

	if !delivered && firstErr != nil {
		return 0, firstErr
	}

	return len(p), nil
}

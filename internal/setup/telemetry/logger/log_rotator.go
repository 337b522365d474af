package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogRotator appends to a log file and trims it back to the most recent
// maxLines lines once twice that many have been written.
type LogRotator struct {
	mu       sync.Mutex
	file     *os.File
	ring     *lineRing
	filePath string
}

// Open creates or appends to the log file at path. A maxLines of zero or less
// disables trimming.
func Open(path string, maxLines int) (*LogRotator, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	w := &LogRotator{file: file, filePath: path}
	if maxLines > 0 {
		w.ring = newLineRing(maxLines)
	}

	return w, nil
}

// Write implements io.Writer.
func (w *LogRotator) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil || w.ring == nil {
		return n, err
	}

	for line := range strings.SplitSeq(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}

		w.ring.add(line)

		if w.ring.seen >= w.ring.capacity()*2 {
			if err := w.rotate(); err != nil {
				return n, fmt.Errorf("failed to rotate log file: %w", err)
			}

			w.ring.seen = w.ring.size
		}
	}

	return n, nil
}

// Sync flushes the log file.
func (w *LogRotator) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Sync()
}

// Close closes the log file.
func (w *LogRotator) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Close()
}

// rotate replaces the file with the lines held by the ring.
func (w *LogRotator) rotate() error {
	lines := w.ring.snapshot()
	if len(lines) == 0 {
		return nil
	}

	temp, err := os.CreateTemp(filepath.Dir(w.filePath), "temp-log-")
	if err != nil {
		return err
	}

	content := strings.Join(lines, "\n") + "\n"
	if _, err := temp.WriteString(content); err != nil {
		return errors.Join(err, temp.Close(), os.Remove(temp.Name()))
	}

	if err := temp.Close(); err != nil {
		return errors.Join(err, os.Remove(temp.Name()))
	}

	w.file.Close()

	if err := os.Rename(temp.Name(), w.filePath); err != nil {
		return err
	}

	file, err := os.OpenFile(w.filePath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w.file = file

	return nil
}

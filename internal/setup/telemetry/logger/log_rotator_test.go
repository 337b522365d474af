package logger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalyx/collegemsg/internal/setup/telemetry/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestLogRotator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		maxLines int
		writes   int
		want     []string
	}{
		{
			name:     "below threshold keeps everything",
			maxLines: 3,
			writes:   5,
			want:     []string{"line 1", "line 2", "line 3", "line 4", "line 5"},
		},
		{
			name:     "rotation keeps the newest lines",
			maxLines: 3,
			writes:   6,
			want:     []string{"line 4", "line 5", "line 6"},
		},
		{
			name:     "appends after rotation",
			maxLines: 3,
			writes:   7,
			want:     []string{"line 4", "line 5", "line 6", "line 7"},
		},
		{
			name:     "zero disables trimming",
			maxLines: 0,
			writes:   4,
			want:     []string{"line 1", "line 2", "line 3", "line 4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "test.log")

			w, err := logger.Open(path, tt.maxLines)
			require.NoError(t, err)

			for i := 1; i <= tt.writes; i++ {
				_, err := fmt.Fprintf(w, "line %d\n", i)
				require.NoError(t, err)
			}

			require.NoError(t, w.Close())
			assert.Equal(t, tt.want, readLines(t, path))
		})
	}
}

func TestLogRotator_MultiLineWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.log")

	w, err := logger.Open(path, 2)
	require.NoError(t, err)

	_, err = w.Write([]byte("a\nb\nc\nd\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, []string{"c", "d"}, readLines(t, path))
}

func TestOpen_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := logger.Open(filepath.Join(t.TempDir(), "missing", "test.log"), 10)
	require.Error(t, err)
}

package message_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robalyx/collegemsg/internal/message"
	"github.com/robalyx/collegemsg/internal/timestamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantSrcs []int64
		wantErr  bool
	}{
		{
			name:     "two messages",
			input:    "1 2 1000000000\n2 3 1000000000\n",
			wantSrcs: []int64{1, 2},
		},
		{
			name:     "tabs and blank lines",
			input:    "\n4\t5\t1082008800\n   \n6  7 1082008801",
			wantSrcs: []int64{4, 6},
		},
		{
			name:     "empty input",
			input:    "",
			wantSrcs: nil,
		},
		{
			name:    "non numeric field",
			input:   "1 2 1000000000\n1 2 notanumber\n",
			wantErr: true,
		},
		{
			name:    "too few fields",
			input:   "1 2\n",
			wantErr: true,
		},
		{
			name:    "trailing field",
			input:   "1 2 1000000000 extra\n",
			wantErr: true,
		},
		{
			name:    "timestamp out of range",
			input:   "1 2 9223372036854775807\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msgs, err := message.Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, message.ErrInvalidFormat)
				assert.Nil(t, msgs, "no partial results on failure")
				return
			}

			require.NoError(t, err)
			require.Len(t, msgs, len(tt.wantSrcs))

			for i, src := range tt.wantSrcs {
				assert.Equal(t, src, msgs[i].Src)
			}
		})
	}
}

func TestParseNormalizesTimestamp(t *testing.T) {
	t.Parallel()

	msgs, err := message.Parse(strings.NewReader("5 5 1000000000\n"))
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	m := msgs[0]
	assert.Equal(t, message.Message{
		Src:     5,
		Dest:    5,
		Date:    timestamp.Date{Year: 2001, Month: time.September, Day: 8},
		Time:    timestamp.Time{Hour: 18, Minute: 46, Second: 40},
		Weekday: 6,
	}, m)
	assert.True(t, m.IsSelf())
}

func TestParseReportsLineNumber(t *testing.T) {
	t.Parallel()

	_, err := message.Parse(strings.NewReader("1 2 3\n\n1 2 x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "messages.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 1000000000\n2 3 1000000000\n"), 0o600))

	msgs, err := message.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(3), msgs[1].Dest)

	_, err = message.ReadFile(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, message.ErrInvalidFormat)
}

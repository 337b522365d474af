package timestamp_test

import (
	"testing"
	"time"

	"github.com/robalyx/collegemsg/internal/timestamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ts      int64
		want    timestamp.Stamp
		wantErr error
	}{
		{
			name: "daylight saving time",
			ts:   1000000000, // 2001-09-09 01:46:40 UTC
			want: timestamp.Stamp{
				Date:    timestamp.Date{Year: 2001, Month: time.September, Day: 8},
				Time:    timestamp.Time{Hour: 18, Minute: 46, Second: 40},
				Weekday: 6,
			},
		},
		{
			name: "standard time",
			ts:   1704067200, // 2024-01-01 00:00:00 UTC
			want: timestamp.Stamp{
				Date:    timestamp.Date{Year: 2023, Month: time.December, Day: 31},
				Time:    timestamp.Time{Hour: 16},
				Weekday: 0,
			},
		},
		{
			name: "epoch",
			ts:   0,
			want: timestamp.Stamp{
				Date:    timestamp.Date{Year: 1969, Month: time.December, Day: 31},
				Time:    timestamp.Time{Hour: 16},
				Weekday: 3,
			},
		},
		{
			name:    "beyond year 9999",
			ts:      253402300800 + 86400,
			wantErr: timestamp.ErrTimestampOutOfRange,
		},
		{
			name:    "before year 1",
			ts:      -62135596800 - 86400,
			wantErr: timestamp.ErrTimestampOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := timestamp.Normalize(tt.ts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayRemap(t *testing.T) {
	t.Parallel()

	for w := time.Sunday; w <= time.Saturday; w++ {
		mondayFirst := timestamp.MondayFirst(w)
		got := timestamp.SundayFirst(mondayFirst)

		assert.Equal(t, (mondayFirst+1)%7, got)
		assert.Equal(t, int(w), got, "weekday %s", w)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 6)
	}

	assert.Equal(t, 0, timestamp.MondayFirst(time.Monday))
	assert.Equal(t, 6, timestamp.MondayFirst(time.Sunday))
}

func TestNormalizeWeekdayMatchesZone(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation(timestamp.Zone)
	require.NoError(t, err)

	// One sample every 7 hours over two weeks crosses every weekday and hour offset
	for ts := int64(1082167200); ts < 1082167200+14*86400; ts += 7 * 3600 {
		got, err := timestamp.Normalize(ts)
		require.NoError(t, err)

		local := time.Unix(ts, 0).In(loc)
		assert.Equal(t, int(local.Weekday()), got.Weekday)
		assert.Equal(t, local.Hour(), got.Time.Hour)
	}
}

func TestDateCompareAndString(t *testing.T) {
	t.Parallel()

	a := timestamp.Date{Year: 2004, Month: time.April, Day: 15}
	b := timestamp.Date{Year: 2004, Month: time.May, Day: 1}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, "2004-04-15", a.String())
	assert.Equal(t, "09:05:00", timestamp.Time{Hour: 9, Minute: 5}.String())
}

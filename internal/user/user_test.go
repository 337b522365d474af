package user_test

import (
	"strings"
	"testing"

	"github.com/robalyx/collegemsg/internal/export/types"
	"github.com/robalyx/collegemsg/internal/message"
	"github.com/robalyx/collegemsg/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse builds messages from the raw input format.
func parse(t *testing.T, input string) []message.Message {
	t.Helper()

	msgs, err := message.Parse(strings.NewReader(input))
	require.NoError(t, err)

	return msgs
}

func TestPivot(t *testing.T) {
	t.Parallel()

	msgs := parse(t, "1 2 1000000000\n2 3 1000000000\n")

	ids, users := user.Pivot(msgs)
	assert.Equal(t, []int64{1, 2, 3}, ids)
	require.Len(t, users, 3)

	u2 := users[2]
	assert.Equal(t, 2, u2.CountAll)
	assert.Equal(t, 1, u2.CountReceived)
	assert.Equal(t, 1, u2.CountSent)
	assert.Equal(t, msgs[0], u2.Received[0])
	assert.Equal(t, msgs[1], u2.Sent[0])

	assert.Empty(t, users[1].Received)
	assert.Empty(t, users[3].Sent)
}

func TestPivotSelfMessage(t *testing.T) {
	t.Parallel()

	msgs := parse(t, "5 5 1000000000\n")

	ids, users := user.Pivot(msgs)
	assert.Equal(t, []int64{5}, ids)

	u := users[5]
	require.Len(t, u.Sent, 1)
	require.Len(t, u.Received, 1)
	assert.Equal(t, msgs[0], u.Sent[0])
	assert.Equal(t, msgs[0], u.Received[0])
	assert.Equal(t, 2, u.CountAll)
}

func TestPivotCountInvariant(t *testing.T) {
	t.Parallel()

	msgs := parse(t, strings.Join([]string{
		"1 2 1082008800",
		"2 1 1082008900",
		"3 3 1082009000",
		"1 3 1082095200",
		"4 1 1082181600",
		"1 2 1082181700",
	}, "\n"))

	ids, users := user.Pivot(msgs)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)

	total := 0
	for _, u := range users {
		assert.Equal(t, u.CountReceived+u.CountSent, u.CountAll)
		assert.Equal(t, len(u.Received)+len(u.Sent), u.CountAll)
		assert.Equal(t, len(u.Received), u.CountReceived)
		assert.Equal(t, len(u.Sent), u.CountSent)

		total += u.CountSent
	}

	assert.Equal(t, len(msgs), total)

	// Sent messages keep file order
	assert.Equal(t, []int64{2, 3, 2}, destinations(users[1].Sent))
}

func TestPivotEmpty(t *testing.T) {
	t.Parallel()

	ids, users := user.Pivot(nil)
	assert.Empty(t, ids)
	assert.Empty(t, users)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	// 1082008800 is 2004-04-14 in Pacific time, 1082181600 is 2004-04-16
	msgs := parse(t, "1 2 1082008800\n3 1 1082181600\n")
	ids, users := user.Pivot(msgs)

	records := user.Summarize(ids, users)
	require.Len(t, records, 3)

	assert.Equal(t, &types.UserRecord{
		ID:            1,
		CountAll:      2,
		CountReceived: 1,
		CountSent:     1,
		FirstSeen:     "2004-04-14",
		LastSeen:      "2004-04-16",
	}, records[0])
	assert.Equal(t, int64(2), records[1].ID)
	assert.Equal(t, int64(3), records[2].ID)
}

func TestTopByActivity(t *testing.T) {
	t.Parallel()

	records := []*types.UserRecord{
		{ID: 9, CountAll: 1},
		{ID: 4, CountAll: 3},
		{ID: 2, CountAll: 3},
		{ID: 7, CountAll: 5},
	}

	top := user.TopByActivity(records, 3)
	require.Len(t, top, 3)
	assert.Equal(t, int64(7), top[0].ID)
	assert.Equal(t, int64(2), top[1].ID)
	assert.Equal(t, int64(4), top[2].ID)

	// Input order is preserved
	assert.Equal(t, int64(9), records[0].ID)

	assert.Len(t, user.TopByActivity(records, 10), 4)
	assert.Len(t, user.TopByActivity(records, -1), 4)
}

func destinations(msgs []message.Message) []int64 {
	out := make([]int64, len(msgs))
	for i, m := range msgs {
		out[i] = m.Dest
	}

	return out
}

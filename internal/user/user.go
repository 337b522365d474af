package user

import (
	"cmp"
	"slices"

	"github.com/robalyx/collegemsg/internal/export/types"
	"github.com/robalyx/collegemsg/internal/message"
	"github.com/robalyx/collegemsg/internal/timestamp"
)

// User is the finalized activity of a single user.
// CountAll always equals CountReceived + CountSent.
type User struct {
	ID            int64
	Received      []message.Message
	Sent          []message.Message
	CountAll      int
	CountReceived int
	CountSent     int
}

// builder accumulates a user's messages until every message has been seen.
type builder struct {
	id       int64
	received []message.Message
	sent     []message.Message
}

func (b *builder) addReceived(m message.Message) {
	b.received = append(b.received, m)
}

func (b *builder) addSent(m message.Message) {
	b.sent = append(b.sent, m)
}

// finalize freezes the builder into an immutable User.
func (b *builder) finalize() User {
	received := slices.Clip(b.received)
	sent := slices.Clip(b.sent)

	return User{
		ID:            b.id,
		Received:      received,
		Sent:          sent,
		CountAll:      len(received) + len(sent),
		CountReceived: len(received),
		CountSent:     len(sent),
	}
}

// Pivot groups messages by user. It returns the distinct user ids in order of
// first appearance (sender before recipient within a message) together with
// the finalized users keyed by id.
func Pivot(msgs []message.Message) ([]int64, map[int64]User) {
	var ids []int64

	builders := make(map[int64]*builder)

	get := func(id int64) *builder {
		b, ok := builders[id]
		if !ok {
			b = &builder{id: id}
			builders[id] = b
			ids = append(ids, id)
		}

		return b
	}

	for _, m := range msgs {
		src := get(m.Src)
		dest := get(m.Dest)

		src.addSent(m)
		dest.addReceived(m)
	}

	users := make(map[int64]User, len(builders))
	for id, b := range builders {
		users[id] = b.finalize()
	}

	return ids, users
}

// Summarize flattens users into export records, keeping the order of ids.
func Summarize(ids []int64, users map[int64]User) []*types.UserRecord {
	records := make([]*types.UserRecord, 0, len(ids))

	for _, id := range ids {
		u, ok := users[id]
		if !ok {
			continue
		}

		first, last := u.activeRange()
		records = append(records, &types.UserRecord{
			ID:            u.ID,
			CountAll:      u.CountAll,
			CountReceived: u.CountReceived,
			CountSent:     u.CountSent,
			FirstSeen:     first.String(),
			LastSeen:      last.String(),
		})
	}

	return records
}

// TopByActivity returns up to n records with the most messages. Ties are
// broken by ascending id. The input slice is left untouched.
func TopByActivity(records []*types.UserRecord, n int) []*types.UserRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b *types.UserRecord) int {
		if c := cmp.Compare(b.CountAll, a.CountAll); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}

	return sorted
}

// activeRange returns the earliest and latest local dates the user was involved in.
func (u User) activeRange() (first, last timestamp.Date) {
	seen := false

	for _, list := range [][]message.Message{u.Sent, u.Received} {
		for _, m := range list {
			if !seen || m.Date.Compare(first) < 0 {
				first = m.Date
			}

			if !seen || m.Date.Compare(last) > 0 {
				last = m.Date
			}

			seen = true
		}
	}

	return first, last
}

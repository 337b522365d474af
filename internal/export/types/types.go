package types

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// Node is a user appearing in a bucket graph.
type Node struct {
	ID     int64 `json:"id"`
	Degree *int  `json:"degree,omitempty"`
}

// Link is an undirected edge between two users of a bucket graph.
type Link struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

// BucketData is the node/link form of one bucket graph as consumed by D3.
type BucketData struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Buckets holds the exported graph of every bucket, indexed by bucket key.
type Buckets []*BucketData

// MarshalJSON encodes the buckets as an object keyed by the decimal bucket
// index. Keys are written in ascending numeric order rather than the lexical
// order a map would produce.
func (b Buckets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, bucket := range b {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString(strconv.Quote(strconv.Itoa(i)))
		buf.WriteByte(':')

		data, err := sonic.Marshal(bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bucket %d: %w", i, err)
		}

		buf.Write(data)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UserRecord is the flattened activity summary of a single user.
type UserRecord struct {
	ID            int64  `json:"id"`
	CountAll      int    `json:"countAll"`
	CountReceived int    `json:"countReceived"`
	CountSent     int    `json:"countSent"`
	FirstSeen     string `json:"firstSeen"`
	LastSeen      string `json:"lastSeen"`
}

// Graph is one bucketing of the message set ready for export.
type Graph struct {
	Name    string  // bucketing name, e.g. "hour" or "weekday"
	Buckets Buckets // exported node/link data per bucket
	Counts  []int   // messages that fell in each bucket
}

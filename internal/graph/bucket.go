package graph

import (
	"errors"
	"fmt"

	"github.com/robalyx/collegemsg/internal/export/types"
	"github.com/robalyx/collegemsg/internal/message"
)

// Bucket range sizes.
const (
	HoursPerDay = 24
	DaysPerWeek = 7
)

// ErrBucketOutOfRange indicates a message whose bucket key falls outside the bucketing range.
var ErrBucketOutOfRange = errors.New("bucket key out of range")

// Bucketing partitions messages into a fixed range of buckets.
type Bucketing struct {
	Name       string                    // Short name used in file and table names
	Size       int                       // Number of buckets, keys run from 0 to Size-1
	Key        func(message.Message) int // Bucket key of a message
	WithDegree bool                      // Annotate exported nodes with their degree
	Label      func(key int) string      // Human readable bucket label
}

var weekdayLabels = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ByHour groups messages by local hour of day. Exported nodes carry no degree.
var ByHour = Bucketing{
	Name: "hour",
	Size: HoursPerDay,
	Key:  func(m message.Message) int { return m.Time.Hour },
	Label: func(key int) string {
		return fmt.Sprintf("%02d", key)
	},
}

// ByWeekday groups messages by local day of week, Sunday first. Exported
// nodes carry their degree.
var ByWeekday = Bucketing{
	Name:       "weekday",
	Size:       DaysPerWeek,
	Key:        func(m message.Message) int { return m.Weekday },
	WithDegree: true,
	Label: func(key int) string {
		return weekdayLabels[key]
	},
}

// Split is the result of bucketing a message set.
type Split struct {
	Name   string
	Graphs []*Graph      // one graph per bucket key
	Data   types.Buckets // exported form of Graphs
	Counts []int         // messages per bucket key
}

// SplitByHour builds one graph per hour of the day.
func SplitByHour(msgs []message.Message) (*Split, error) {
	return ByHour.Split(msgs)
}

// SplitByWeekday builds one graph per day of the week.
func SplitByWeekday(msgs []message.Message) (*Split, error) {
	return ByWeekday.Split(msgs)
}

// Split builds a graph for every bucket from the messages falling into it.
// Every bucket of the range is present in the result even when empty.
func (b Bucketing) Split(msgs []message.Message) (*Split, error) {
	graphs := make([]*Graph, b.Size)
	for i := range graphs {
		graphs[i] = New()
	}

	counts := make([]int, b.Size)

	for _, m := range msgs {
		key := b.Key(m)
		if key < 0 || key >= b.Size {
			return nil, fmt.Errorf("%w: %s %d", ErrBucketOutOfRange, b.Name, key)
		}

		graphs[key].AddEdge(m.Src, m.Dest)
		counts[key]++
	}

	data := make(types.Buckets, b.Size)
	for i, g := range graphs {
		data[i] = ToBucketData(g, b.WithDegree)
	}

	return &Split{
		Name:   b.Name,
		Graphs: graphs,
		Data:   data,
		Counts: counts,
	}, nil
}

// Export returns the split in the form consumed by the exporters.
func (s *Split) Export() *types.Graph {
	return &types.Graph{
		Name:    s.Name,
		Buckets: s.Data,
		Counts:  s.Counts,
	}
}

// ToBucketData converts a graph into its node/link form. Nodes are sorted by
// id; links follow the graph's edge order.
func ToBucketData(g *Graph, withDegree bool) *types.BucketData {
	sorted := g.SortedNodes()
	nodes := make([]types.Node, 0, len(sorted))

	for _, n := range sorted {
		node := types.Node{ID: n}
		if withDegree {
			degree := g.Degree(n)
			node.Degree = &degree
		}

		nodes = append(nodes, node)
	}

	edges := g.Edges()
	links := make([]types.Link, 0, len(edges))

	for _, e := range edges {
		links = append(links, types.Link{Source: e.U, Target: e.V})
	}

	return &types.BucketData{
		Nodes: nodes,
		Links: links,
	}
}

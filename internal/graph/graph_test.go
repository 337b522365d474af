package graph_test

import (
	"testing"

	"github.com/robalyx/collegemsg/internal/graph"
	"github.com/stretchr/testify/assert"
)

func TestGraphAddEdge(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge(2, 1))
	assert.True(t, g.HasEdge(3, 2))
	assert.False(t, g.HasEdge(1, 3))
	assert.True(t, g.HasNode(3))
	assert.False(t, g.HasNode(4))

	assert.Equal(t, 1, g.Degree(1))
	assert.Equal(t, 2, g.Degree(2))
	assert.Equal(t, 0, g.Degree(42))
}

func TestGraphSelfLoop(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge(5, 5)
	g.AddEdge(5, 5)

	assert.Equal(t, []int64{5}, g.Nodes())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, []graph.Edge{{U: 5, V: 5}}, g.Edges())
	assert.Equal(t, 2, g.Degree(5))

	g.AddEdge(5, 6)
	assert.Equal(t, 3, g.Degree(5))
	assert.Equal(t, 1, g.Degree(6))
}

func TestGraphEdgeOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edges [][2]int64
		want  []graph.Edge
	}{
		{
			name:  "chain",
			edges: [][2]int64{{1, 2}, {2, 3}},
			want:  []graph.Edge{{U: 1, V: 2}, {U: 2, V: 3}},
		},
		{
			name:  "grouped by first visited endpoint",
			edges: [][2]int64{{1, 2}, {3, 4}, {1, 3}},
			want:  []graph.Edge{{U: 1, V: 2}, {U: 1, V: 3}, {U: 3, V: 4}},
		},
		{
			name:  "reported from earlier node",
			edges: [][2]int64{{9, 1}, {1, 9}, {1, 4}},
			want:  []graph.Edge{{U: 9, V: 1}, {U: 1, V: 4}},
		},
		{
			name:  "self loop among others",
			edges: [][2]int64{{2, 7}, {7, 7}, {7, 2}},
			want:  []graph.Edge{{U: 2, V: 7}, {U: 7, V: 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := graph.New()
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}

			assert.Equal(t, tt.want, g.Edges())
			assert.Len(t, g.Edges(), g.EdgeCount())
		})
	}
}

func TestGraphNodeOrder(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge(30, 10)
	g.AddEdge(20, 10)

	assert.Equal(t, []int64{30, 10, 20}, g.Nodes())
	assert.Equal(t, []int64{10, 20, 30}, g.SortedNodes())
}

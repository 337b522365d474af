package graph

import (
	"slices"
)

// Edge is an undirected edge as returned by Graph.Edges.
type Edge struct {
	U int64
	V int64
}

// Graph is a simple undirected graph over user ids. Parallel edges collapse
// into one and self-loops are allowed. Nodes and neighbours keep their
// insertion order so iteration is deterministic.
type Graph struct {
	nodes []int64
	adj   map[int64][]int64
	edges map[Edge]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		adj:   make(map[int64][]int64),
		edges: make(map[Edge]struct{}),
	}
}

// AddEdge inserts an edge between u and v, adding either endpoint that is
// not yet present. Adding an existing edge in either direction is a no-op.
func (g *Graph) AddEdge(u, v int64) {
	g.addNode(u)
	g.addNode(v)

	key := edgeKey(u, v)
	if _, ok := g.edges[key]; ok {
		return
	}

	g.edges[key] = struct{}{}

	g.adj[u] = append(g.adj[u], v)
	if u != v {
		g.adj[v] = append(g.adj[v], u)
	}
}

// HasEdge reports whether u and v are connected.
func (g *Graph) HasEdge(u, v int64) bool {
	_, ok := g.edges[edgeKey(u, v)]
	return ok
}

// HasNode reports whether n is part of the graph.
func (g *Graph) HasNode(n int64) bool {
	_, ok := g.adj[n]
	return ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []int64 {
	return slices.Clone(g.nodes)
}

// SortedNodes returns the nodes in ascending order.
func (g *Graph) SortedNodes() []int64 {
	return slices.Sorted(slices.Values(g.nodes))
}

// Edges returns every edge exactly once. Nodes are walked in insertion order
// and each edge is reported from the endpoint that was visited first, in the
// order that endpoint gained its neighbours.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	visited := make(map[int64]struct{}, len(g.nodes))

	for _, n := range g.nodes {
		for _, nbr := range g.adj[n] {
			if _, ok := visited[nbr]; !ok {
				out = append(out, Edge{U: n, V: nbr})
			}
		}

		visited[n] = struct{}{}
	}

	return out
}

// Degree returns the number of edge endpoints at n. A self-loop counts twice.
func (g *Graph) Degree(n int64) int {
	degree := len(g.adj[n])
	if g.HasEdge(n, n) {
		degree++
	}

	return degree
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

func (g *Graph) addNode(n int64) {
	if _, ok := g.adj[n]; ok {
		return
	}

	g.adj[n] = nil
	g.nodes = append(g.nodes, n)
}

// edgeKey normalizes an undirected edge so both directions share a key.
func edgeKey(u, v int64) Edge {
	if u > v {
		u, v = v, u
	}

	return Edge{U: u, V: v}
}

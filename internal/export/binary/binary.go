package binary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/robalyx/collegemsg/internal/export/types"
)

// noDegree marks a node exported without a degree annotation.
const noDegree int32 = -1

// Exporter handles exporting bucket graphs to compact binary files.
//
// Layout, little endian: uint32 bucket count, then per bucket a uint32 node
// count followed by (int64 id, int32 degree or -1) pairs and a uint32 link
// count followed by (int64 source, int64 target) pairs.
type Exporter struct {
	outDir string
}

// New creates a new binary exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// FileName returns the file a bucketing is written to.
func FileName(name string) string {
	return name + ".bin"
}

// Export writes one binary file per bucketing. User records are not part of
// the binary format.
func (e *Exporter) Export(graphs []*types.Graph, _ []*types.UserRecord) error {
	for _, g := range graphs {
		path := filepath.Join(e.outDir, FileName(g.Name))

		// Remove existing file if it exists
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing file %s: %w", FileName(g.Name), err)
		}

		if err := writeFile(path, g.Buckets); err != nil {
			return fmt.Errorf("failed to export %s graphs: %w", g.Name, err)
		}
	}

	return nil
}

// writeFile writes all buckets to a binary file.
func writeFile(path string, buckets types.Buckets) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create binary file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	count := uint32(len(buckets)) //nolint:gosec // bounded by the bucketing size
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("failed to write bucket count: %w", err)
	}

	for i, bucket := range buckets {
		if err := writeBucket(w, bucket); err != nil {
			return fmt.Errorf("failed to write bucket %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush binary file: %w", err)
	}

	return file.Close()
}

func writeBucket(w io.Writer, bucket *types.BucketData) error {
	if bucket == nil {
		bucket = &types.BucketData{}
	}

	// Write nodes
	nodeCount := uint32(len(bucket.Nodes)) //nolint:gosec // unlikely to overflow
	if err := binary.Write(w, binary.LittleEndian, nodeCount); err != nil {
		return fmt.Errorf("failed to write node count: %w", err)
	}

	for _, n := range bucket.Nodes {
		degree := noDegree
		if n.Degree != nil {
			degree = int32(*n.Degree) //nolint:gosec // unlikely to overflow
		}

		if err := binary.Write(w, binary.LittleEndian, n.ID); err != nil {
			return fmt.Errorf("failed to write node id: %w", err)
		}

		if err := binary.Write(w, binary.LittleEndian, degree); err != nil {
			return fmt.Errorf("failed to write node degree: %w", err)
		}
	}

	// Write links
	linkCount := uint32(len(bucket.Links)) //nolint:gosec // unlikely to overflow
	if err := binary.Write(w, binary.LittleEndian, linkCount); err != nil {
		return fmt.Errorf("failed to write link count: %w", err)
	}

	for _, l := range bucket.Links {
		if err := binary.Write(w, binary.LittleEndian, [2]int64{l.Source, l.Target}); err != nil {
			return fmt.Errorf("failed to write link: %w", err)
		}
	}

	return nil
}

// Read decodes a file written by Export.
func Read(r io.Reader) (types.Buckets, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read bucket count: %w", err)
	}

	buckets := make(types.Buckets, count)
	for i := range buckets {
		bucket, err := readBucket(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read bucket %d: %w", i, err)
		}

		buckets[i] = bucket
	}

	return buckets, nil
}

func readBucket(r io.Reader) (*types.BucketData, error) {
	var nodeCount uint32
	if err := binary.Read(r, binary.LittleEndian, &nodeCount); err != nil {
		return nil, fmt.Errorf("failed to read node count: %w", err)
	}

	bucket := &types.BucketData{
		Nodes: make([]types.Node, 0, nodeCount),
	}

	for range nodeCount {
		var (
			id     int64
			degree int32
		)

		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return nil, fmt.Errorf("failed to read node id: %w", err)
		}

		if err := binary.Read(r, binary.LittleEndian, &degree); err != nil {
			return nil, fmt.Errorf("failed to read node degree: %w", err)
		}

		node := types.Node{ID: id}
		if degree != noDegree {
			d := int(degree)
			node.Degree = &d
		}

		bucket.Nodes = append(bucket.Nodes, node)
	}

	var linkCount uint32
	if err := binary.Read(r, binary.LittleEndian, &linkCount); err != nil {
		return nil, fmt.Errorf("failed to read link count: %w", err)
	}

	bucket.Links = make([]types.Link, 0, linkCount)

	for range linkCount {
		var pair [2]int64
		if err := binary.Read(r, binary.LittleEndian, &pair); err != nil {
			return nil, fmt.Errorf("failed to read link: %w", err)
		}

		bucket.Links = append(bucket.Links, types.Link{Source: pair[0], Target: pair[1]})
	}

	return bucket, nil
}

package json

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/robalyx/collegemsg/internal/export/types"
)

// UsersFile is the name of the user summary written next to the graph files.
const UsersFile = "users.json"

// Exporter handles exporting bucket graphs to JSON documents.
type Exporter struct {
	outDir string
	indent int
}

// New creates a new JSON exporter instance. An indent of zero or less
// produces compact output.
func New(outDir string, indent int) *Exporter {
	return &Exporter{outDir: outDir, indent: indent}
}

// FileName returns the file a bucketing is written to.
func FileName(name string) string {
	return name + ".json"
}

// Export writes one document per bucketing plus the user summary.
func (e *Exporter) Export(graphs []*types.Graph, users []*types.UserRecord) error {
	for _, g := range graphs {
		if err := Write(filepath.Join(e.outDir, FileName(g.Name)), g.Buckets, e.indent); err != nil {
			return fmt.Errorf("failed to export %s graphs: %w", g.Name, err)
		}
	}

	data, err := Marshal(users, e.indent)
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	if err := WriteFile(filepath.Join(e.outDir, UsersFile), data); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}

	return nil
}

// Write serializes the buckets to path as a single JSON object keyed by
// bucket index, replacing any existing file.
func Write(path string, buckets types.Buckets, indent int) error {
	data, err := Marshal(buckets, indent)
	if err != nil {
		return fmt.Errorf("failed to marshal buckets: %w", err)
	}

	return WriteFile(path, data)
}

// Marshal encodes v, pretty printed with indent spaces when indent is positive.
func Marshal(v any, indent int) ([]byte, error) {
	if indent <= 0 {
		return sonic.Marshal(v)
	}

	return sonic.MarshalIndent(v, "", strings.Repeat(" ", indent))
}

// WriteFile writes data to a temporary file next to path and renames it into
// place, so path either keeps its old content or holds the complete new one.
func WriteFile(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", base, err)
	}

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", base, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", base, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", base, err)
	}

	return nil
}

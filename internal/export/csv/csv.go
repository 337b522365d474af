package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/robalyx/collegemsg/internal/export/types"
)

// UsersFile is the name of the user summary file.
const UsersFile = "users.csv"

// Exporter handles exporting bucket graphs to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// NodesFile returns the node file name of a bucketing.
func NodesFile(name string) string {
	return "nodes_" + name + ".csv"
}

// LinksFile returns the link file name of a bucketing.
func LinksFile(name string) string {
	return "links_" + name + ".csv"
}

// Export writes node and link files for every bucketing and a user summary.
func (e *Exporter) Export(graphs []*types.Graph, users []*types.UserRecord) error {
	// Remove existing files if they exist
	files := []string{UsersFile}
	for _, g := range graphs {
		files = append(files, NodesFile(g.Name), LinksFile(g.Name))
	}

	for _, file := range files {
		path := filepath.Join(e.outDir, file)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing file %s: %w", file, err)
		}
	}

	for _, g := range graphs {
		if err := e.writeFile(NodesFile(g.Name), []string{"bucket", "id", "degree"}, nodeRows(g)); err != nil {
			return fmt.Errorf("failed to export %s nodes: %w", g.Name, err)
		}

		if err := e.writeFile(LinksFile(g.Name), []string{"bucket", "source", "target"}, linkRows(g)); err != nil {
			return fmt.Errorf("failed to export %s links: %w", g.Name, err)
		}
	}

	header := []string{"id", "count_all", "count_received", "count_sent", "first_seen", "last_seen"}
	if err := e.writeFile(UsersFile, header, userRows(users)); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}

	return nil
}

// writeFile writes a header and records to a csv file.
func (e *Exporter) writeFile(filename string, header []string, records [][]string) error {
	file, err := os.Create(filepath.Join(e.outDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	// Create CSV writer
	writer := csv.NewWriter(file)

	// Write header
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Write each record
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return file.Close()
}

func nodeRows(g *types.Graph) [][]string {
	var rows [][]string

	for bucket, data := range g.Buckets {
		if data == nil {
			continue
		}

		for _, n := range data.Nodes {
			degree := ""
			if n.Degree != nil {
				degree = strconv.Itoa(*n.Degree)
			}

			rows = append(rows, []string{strconv.Itoa(bucket), formatID(n.ID), degree})
		}
	}

	return rows
}

func linkRows(g *types.Graph) [][]string {
	var rows [][]string

	for bucket, data := range g.Buckets {
		if data == nil {
			continue
		}

		for _, l := range data.Links {
			rows = append(rows, []string{strconv.Itoa(bucket), formatID(l.Source), formatID(l.Target)})
		}
	}

	return rows
}

func userRows(users []*types.UserRecord) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			formatID(u.ID),
			strconv.Itoa(u.CountAll),
			strconv.Itoa(u.CountReceived),
			strconv.Itoa(u.CountSent),
			u.FirstSeen,
			u.LastSeen,
		})
	}

	return rows
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

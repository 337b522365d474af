package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/robalyx/collegemsg/internal/export/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// FileName is the database every export is written to.
const FileName = "graphs.db"

const batchSize = 1000

const schema = `
	CREATE TABLE nodes (
		bucketing TEXT NOT NULL,
		bucket INTEGER NOT NULL,
		id INTEGER NOT NULL,
		degree INTEGER,
		PRIMARY KEY (bucketing, bucket, id)
	);
	CREATE TABLE links (
		bucketing TEXT NOT NULL,
		bucket INTEGER NOT NULL,
		position INTEGER NOT NULL,
		source INTEGER NOT NULL,
		target INTEGER NOT NULL,
		PRIMARY KEY (bucketing, bucket, position)
	);
	CREATE TABLE bucket_counts (
		bucketing TEXT NOT NULL,
		bucket INTEGER NOT NULL,
		messages INTEGER NOT NULL,
		PRIMARY KEY (bucketing, bucket)
	);
	CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		count_all INTEGER NOT NULL,
		count_received INTEGER NOT NULL,
		count_sent INTEGER NOT NULL,
		first_seen TEXT NOT NULL,
		last_seen TEXT NOT NULL
	);
`

// Exporter handles exporting bucket graphs to a SQLite database.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// row is a single statement execution.
type row struct {
	query string
	args  []any
}

// Export writes every bucketing and the user summary into a fresh database.
func (e *Exporter) Export(graphs []*types.Graph, users []*types.UserRecord) error {
	path := filepath.Join(e.outDir, FileName)

	// Remove existing file if it exists
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file %s: %w", FileName, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	for _, g := range graphs {
		if err := insertRows(conn, graphRows(g)); err != nil {
			return fmt.Errorf("failed to export %s graphs: %w", g.Name, err)
		}
	}

	if err := insertRows(conn, userRows(users)); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}

	return nil
}

// graphRows flattens a bucketing into node, link and count rows.
func graphRows(g *types.Graph) []row {
	var rows []row

	for bucket, data := range g.Buckets {
		if data == nil {
			continue
		}

		for _, n := range data.Nodes {
			var degree any
			if n.Degree != nil {
				degree = *n.Degree
			}

			rows = append(rows, row{
				query: "INSERT INTO nodes (bucketing, bucket, id, degree) VALUES (?, ?, ?, ?)",
				args:  []any{g.Name, bucket, n.ID, degree},
			})
		}

		for position, l := range data.Links {
			rows = append(rows, row{
				query: "INSERT INTO links (bucketing, bucket, position, source, target) VALUES (?, ?, ?, ?, ?)",
				args:  []any{g.Name, bucket, position, l.Source, l.Target},
			})
		}
	}

	for bucket, count := range g.Counts {
		rows = append(rows, row{
			query: "INSERT INTO bucket_counts (bucketing, bucket, messages) VALUES (?, ?, ?)",
			args:  []any{g.Name, bucket, count},
		})
	}

	return rows
}

// userRows converts user records into insert statements.
func userRows(users []*types.UserRecord) []row {
	rows := make([]row, 0, len(users))
	for _, u := range users {
		rows = append(rows, row{
			query: `INSERT INTO users (id, count_all, count_received, count_sent, first_seen, last_seen)
				VALUES (?, ?, ?, ?, ?, ?)`,
			args: []any{u.ID, u.CountAll, u.CountReceived, u.CountSent, u.FirstSeen, u.LastSeen},
		})
	}

	return rows
}

// insertRows executes rows in batched transactions.
func insertRows(conn *sqlite.Conn, rows []row) error {
	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))

		// Begin transaction
		if err := sqlitex.Execute(conn, "BEGIN TRANSACTION", nil); err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		// Insert batch
		for _, r := range rows[i:end] {
			if err := sqlitex.Execute(conn, r.query, &sqlitex.ExecOptions{Args: r.args}); err != nil {
				_ = sqlitex.Execute(conn, "ROLLBACK", nil)
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}

		// Commit transaction
		if err := sqlitex.Execute(conn, "COMMIT", nil); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return nil
}

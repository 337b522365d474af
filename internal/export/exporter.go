package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/robalyx/collegemsg/internal/export/binary"
	"github.com/robalyx/collegemsg/internal/export/chart"
	"github.com/robalyx/collegemsg/internal/export/csv"
	exportJSON "github.com/robalyx/collegemsg/internal/export/json"
	"github.com/robalyx/collegemsg/internal/export/sqlite"
	"github.com/robalyx/collegemsg/internal/export/types"
	"github.com/robalyx/collegemsg/internal/graph"
	"github.com/robalyx/collegemsg/internal/message"
	"github.com/robalyx/collegemsg/internal/user"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
	FormatBinary Format = "binary"
	FormatCSV    Format = "csv"
	FormatChart  Format = "chart"
)

const (
	// EngineVersion represents the version of the export engine.
	// This should be updated when making breaking changes to the export format.
	EngineVersion = "1.0.0"

	// ConfigFile is the name of the export summary written last.
	ConfigFile = "export_config.json"
)

// ParseFormats validates format names. JSON is always exported and is added
// when missing; duplicates are dropped.
func ParseFormats(names []string) ([]Format, error) {
	formats := []Format{FormatJSON}

	for _, name := range names {
		format := Format(strings.ToLower(strings.TrimSpace(name)))
		switch format {
		case FormatJSON, FormatSQLite, FormatBinary, FormatCSV, FormatChart:
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
		}

		if !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}

	return formats, nil
}

// Config holds the configuration for exports.
type Config struct {
	RunID       string   `json:"runId"`
	InputPath   string   `json:"inputPath"`
	Indent      int      `json:"indent"`
	Formats     []Format `json:"formats"`
	HashType    HashType `json:"hashType"`
	Description string   `json:"description,omitempty"`
}

// Summary describes a finished export.
type Summary struct {
	Messages  int          `json:"messages"`
	Users     int          `json:"users"`
	Buckets   []BucketInfo `json:"buckets"`
	Checksums []Checksum   `json:"checksums"`
}

// BucketInfo holds the totals of one bucketing.
type BucketInfo struct {
	Name     string `json:"name"`
	Nodes    int    `json:"nodes"`
	Links    int    `json:"links"`
	Messages int    `json:"messages"`
}

// Exporter runs the message pipeline and writes every selected format.
type Exporter struct {
	logger *zap.Logger
	outDir string
	config *Config
}

// New creates a new exporter instance.
func New(logger *zap.Logger, outDir string, config *Config) *Exporter {
	return &Exporter{
		logger: logger.Named("export"),
		outDir: outDir,
		config: config,
	}
}

// ExportAll reads the input, builds the bucket graphs and exports them in all
// configured formats followed by the export configuration.
func (e *Exporter) ExportAll(ctx context.Context) (*Summary, error) {
	start := time.Now()

	e.logger.Info("Starting export",
		zap.String("run_id", e.config.RunID),
		zap.String("input", e.config.InputPath),
		zap.String("output_dir", e.outDir),
		zap.Int("indent", e.config.Indent),
		zap.Any("formats", e.config.Formats),
		zap.String("engine_version", EngineVersion))

	msgs, err := message.ReadFile(e.config.InputPath)
	if err != nil {
		return nil, err
	}

	ids, users := user.Pivot(msgs)
	records := user.Summarize(ids, users)

	e.logger.Info("Read messages",
		zap.Int("messages", len(msgs)),
		zap.Int("users", len(ids)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	splits := make([]*graph.Split, 0, 2)
	for _, bucketing := range []graph.Bucketing{graph.ByHour, graph.ByWeekday} {
		split, err := bucketing.Split(msgs)
		if err != nil {
			return nil, fmt.Errorf("failed to split by %s: %w", bucketing.Name, err)
		}

		splits = append(splits, split)
	}

	graphs := make([]*types.Graph, len(splits))
	summary := &Summary{
		Messages: len(msgs),
		Users:    len(ids),
		Buckets:  make([]BucketInfo, len(splits)),
	}

	for i, split := range splits {
		graphs[i] = split.Export()
		summary.Buckets[i] = bucketInfo(split)

		e.logger.Debug("Built bucket graphs",
			zap.String("bucketing", split.Name),
			zap.Int("nodes", summary.Buckets[i].Nodes),
			zap.Int("links", summary.Buckets[i].Links))
	}

	var written []string

	for _, format := range e.formats() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.logger.Info("Writing format", zap.String("format", string(format)))

		if err := e.export(format, graphs, records); err != nil {
			return nil, fmt.Errorf("failed to export %s format: %w", format, err)
		}

		written = append(written, outputFiles(format, graphs)...)
	}

	summary.Checksums, err = hashFiles(e.outDir, written, e.hashType())
	if err != nil {
		return nil, fmt.Errorf("failed to checksum exported files: %w", err)
	}

	if err := e.writeConfig(summary); err != nil {
		return nil, err
	}

	e.logger.Info("Export completed successfully",
		zap.String("output_dir", e.outDir),
		zap.Int("files", len(written)+1),
		zap.Duration("elapsed", time.Since(start)))

	return summary, nil
}

// formats returns the configured formats with JSON always first.
func (e *Exporter) formats() []Format {
	formats := []Format{FormatJSON}
	for _, format := range e.config.Formats {
		if !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}

	return formats
}

func (e *Exporter) hashType() HashType {
	if e.config.HashType == "" {
		return HashTypeBLAKE2b
	}

	return e.config.HashType
}

// writeConfig saves the configuration, engine version and summary.
func (e *Exporter) writeConfig(summary *Summary) error {
	jsonConfig := struct {
		*Config
		*Summary

		EngineVersion string `json:"engineVersion"`
	}{
		Config:        e.config,
		Summary:       summary,
		EngineVersion: EngineVersion,
	}

	configData, err := sonic.MarshalIndent(jsonConfig, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal export config: %w", err)
	}

	if err := exportJSON.WriteFile(filepath.Join(e.outDir, ConfigFile), configData); err != nil {
		return fmt.Errorf("failed to write export config: %w", err)
	}

	return nil
}

// export handles exporting data in the specified format.
func (e *Exporter) export(format Format, graphs []*types.Graph, records []*types.UserRecord) error {
	var exporter interface {
		Export(graphs []*types.Graph, users []*types.UserRecord) error
	}

	switch format {
	case FormatJSON:
		exporter = exportJSON.New(e.outDir, e.config.Indent)
	case FormatSQLite:
		exporter = sqlite.New(e.outDir)
	case FormatBinary:
		exporter = binary.New(e.outDir)
	case FormatCSV:
		exporter = csv.New(e.outDir)
	case FormatChart:
		exporter = chart.New(e.outDir, map[string]chart.Labeler{
			graph.ByHour.Name:    graph.ByHour.Label,
			graph.ByWeekday.Name: graph.ByWeekday.Label,
		})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return exporter.Export(graphs, records)
}

// outputFiles lists the files a format writes for the graphs.
func outputFiles(format Format, graphs []*types.Graph) []string {
	var files []string

	switch format {
	case FormatJSON:
		for _, g := range graphs {
			files = append(files, exportJSON.FileName(g.Name))
		}

		files = append(files, exportJSON.UsersFile)
	case FormatSQLite:
		files = append(files, sqlite.FileName)
	case FormatBinary:
		for _, g := range graphs {
			files = append(files, binary.FileName(g.Name))
		}
	case FormatCSV:
		for _, g := range graphs {
			files = append(files, csv.NodesFile(g.Name), csv.LinksFile(g.Name))
		}

		files = append(files, csv.UsersFile)
	case FormatChart:
		for _, g := range graphs {
			files = append(files, chart.FileName(g.Name))
		}
	}

	return files
}

func bucketInfo(split *graph.Split) BucketInfo {
	info := BucketInfo{Name: split.Name}

	for i, g := range split.Graphs {
		info.Nodes += g.NodeCount()
		info.Links += g.EdgeCount()
		info.Messages += split.Counts[i]
	}

	return info
}

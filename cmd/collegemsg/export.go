package main

import (
	"context"
	"fmt"
	"os"

	"github.com/robalyx/collegemsg/internal/export"
	"github.com/robalyx/collegemsg/internal/setup"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	textmsg "golang.org/x/text/message"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the hour and weekday graphs as JSON and optional extra formats",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for export files",
			},
			&cli.IntFlag{
				Name:  "indent",
				Usage: "JSON indent width, zero or less for compact output",
			},
			&cli.StringSliceFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Extra formats to write (sqlite, binary, csv, chart)",
			},
			&cli.StringFlag{
				Name:  "hash-type",
				Usage: "Checksum algorithm for exported files (blake2b or sha256)",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Export description",
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := initApp(c)
			if err != nil {
				return err
			}
			defer app.Cleanup()

			config, outDir, err := getExportConfig(c, app)
			if err != nil {
				return fmt.Errorf("failed to get export configuration: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			summary, err := export.New(app.Logger, outDir, config).ExportAll(ctx)
			if err != nil {
				app.Logger.Error("Export failed", zap.Error(err))
				return fmt.Errorf("failed to export data: %w", err)
			}

			p := textmsg.NewPrinter(language.English)
			p.Fprintf(c.Root().Writer, "Exported %d messages from %d users to %s\n",
				summary.Messages, summary.Users, outDir)

			for _, b := range summary.Buckets {
				p.Fprintf(c.Root().Writer, "  %-8s %d nodes, %d links\n", b.Name, b.Nodes, b.Links)
			}

			return nil
		},
	}
}

// getExportConfig merges the command flags over the loaded configuration.
func getExportConfig(c *cli.Command, app *setup.App) (*export.Config, string, error) {
	cfg := app.Config.Export

	outDir := cfg.OutputDir
	if c.IsSet("output") {
		outDir = c.String("output")
	}

	indent := cfg.Indent
	if c.IsSet("indent") {
		indent = int(c.Int("indent"))
	}

	names := cfg.Formats
	if c.IsSet("format") {
		names = c.StringSlice("format")
	}

	formats, err := export.ParseFormats(names)
	if err != nil {
		return nil, "", err
	}

	hashType := cfg.HashType
	if c.IsSet("hash-type") {
		hashType = c.String("hash-type")
	}

	description := cfg.Description
	if c.IsSet("description") {
		description = c.String("description")
	}

	return &export.Config{
		RunID:       app.RunID,
		InputPath:   c.String("input"),
		Indent:      indent,
		Formats:     formats,
		HashType:    export.HashType(hashType),
		Description: description,
	}, outDir, nil
}

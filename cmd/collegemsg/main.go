package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/robalyx/collegemsg/internal/setup"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := run(context.Background(), os.Args, os.Stdout); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	return newCommand(stdout).Run(ctx, args)
}

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "collegemsg",
		Usage:  "Build per-hour and per-weekday message graphs from a message log",
		Writer: stdout,
		Commands: []*cli.Command{
			exportCommand(),
			usersCommand(),
			bucketsCommand(),
		},
	}
}

// commonFlags returns the flags shared by every subcommand.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "Message log with one `src dest timestamp` line per message",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Config file, searched in the default locations when empty",
		},
		&cli.StringFlag{
			Name:  "log-dir",
			Usage: "Base directory for session logs",
		},
	}
}

// initApp initializes the application from the common flags.
func initApp(c *cli.Command) (*setup.App, error) {
	app, err := setup.InitializeApp(c.String("config"), c.String("log-dir"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return app, nil
}

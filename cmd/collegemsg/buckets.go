package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalyx/collegemsg/internal/graph"
	"github.com/robalyx/collegemsg/internal/message"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	textmsg "golang.org/x/text/message"
)

var ErrInvalidBucketing = errors.New("invalid bucketing")

func bucketsCommand() *cli.Command {
	return &cli.Command{
		Name:  "buckets",
		Usage: "Print node, link and message counts per bucket",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:  "by",
				Usage: "Bucketing to print (hour or weekday)",
				Value: graph.ByHour.Name,
			},
		),
		Action: func(_ context.Context, c *cli.Command) error {
			bucketing, err := parseBucketing(c.String("by"))
			if err != nil {
				return err
			}

			app, err := initApp(c)
			if err != nil {
				return err
			}
			defer app.Cleanup()

			msgs, err := message.ReadFile(c.String("input"))
			if err != nil {
				return fmt.Errorf("failed to read messages: %w", err)
			}

			split, err := bucketing.Split(msgs)
			if err != nil {
				return fmt.Errorf("failed to split by %s: %w", bucketing.Name, err)
			}

			app.Logger.Info("Split messages",
				zap.String("bucketing", bucketing.Name),
				zap.Int("messages", len(msgs)))

			p := textmsg.NewPrinter(language.English)
			w := c.Root().Writer

			p.Fprintf(w, "%-6s %8s %8s %10s\n", "BUCKET", "NODES", "LINKS", "MESSAGES")

			for key, g := range split.Graphs {
				p.Fprintf(w, "%-6s %8d %8d %10d\n",
					bucketing.Label(key), g.NodeCount(), g.EdgeCount(), split.Counts[key])
			}

			return nil
		},
	}
}

func parseBucketing(name string) (graph.Bucketing, error) {
	switch name {
	case graph.ByHour.Name:
		return graph.ByHour, nil
	case graph.ByWeekday.Name:
		return graph.ByWeekday, nil
	default:
		return graph.Bucketing{}, fmt.Errorf("%w: %s", ErrInvalidBucketing, name)
	}
}

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/robalyx/collegemsg/internal/message"
	"github.com/robalyx/collegemsg/internal/user"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	textmsg "golang.org/x/text/message"
)

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Print the most active users",
		Flags: append(commonFlags(),
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "Number of users to print, negative for all",
				Value:   10,
			},
		),
		Action: func(_ context.Context, c *cli.Command) error {
			app, err := initApp(c)
			if err != nil {
				return err
			}
			defer app.Cleanup()

			msgs, err := message.ReadFile(c.String("input"))
			if err != nil {
				return fmt.Errorf("failed to read messages: %w", err)
			}

			ids, users := user.Pivot(msgs)
			records := user.TopByActivity(user.Summarize(ids, users), int(c.Int("top")))

			app.Logger.Info("Summarized users",
				zap.Int("messages", len(msgs)),
				zap.Int("users", len(ids)),
				zap.Int("printed", len(records)))

			p := textmsg.NewPrinter(language.English)
			w := c.Root().Writer

			p.Fprintf(w, "%-12s %10s %10s %10s  %-10s  %-10s\n",
				"USER", "TOTAL", "SENT", "RECEIVED", "FIRST", "LAST")

			for _, r := range records {
				p.Fprintf(w, "%-12s %10d %10d %10d  %-10s  %-10s\n",
					strconv.FormatInt(r.ID, 10), r.CountAll, r.CountSent, r.CountReceived, r.FirstSeen, r.LastSeen)
			}

			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

// watchCmd represents the watch command. It observes external edits to the
// record files (e.g. hand-editing a YAML data directory) until interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the data directory for external record changes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()
		defer closeService(svc)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		events, err := svc.Watch(ctx, "*")
		if err != nil {
			fatal("Failed to watch", err)
		}

		fmt.Println("Watching for record changes (Ctrl-C to stop)...")
		for ev := range events {
			fmt.Printf("%s  %-6s %s\n", time.Unix(ev.Timestamp, 0).Format(time.TimeOnly), ev.Type, ev.Key)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

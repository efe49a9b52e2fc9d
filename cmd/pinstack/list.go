package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listJSON bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all boards",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()
		defer closeService(svc)

		boards := svc.Boards()
		activeID := svc.ActiveID()

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(boards); err != nil {
				fatal("Failed to encode boards", err)
			}
			return
		}

		for _, b := range boards {
			marker := " "
			if b.ID == activeID {
				marker = "*"
			}
			fmt.Printf("%s %s  %-24s [%s]  %d media\n", marker, b.ID, b.Title, b.Color, len(b.Media))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

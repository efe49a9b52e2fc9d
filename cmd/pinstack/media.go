package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinstack/pinstack/pkg/core"
	"github.com/pinstack/pinstack/pkg/enrich"
)

var mediaAsImage bool

// mediaCmd groups the media subcommands.
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage a board's attached media",
}

// mediaAddCmd represents the media add command. It plays the manual-URL-entry
// collaborator role: the URL is validated and classified here, before the
// core ever sees it.
var mediaAddCmd = &cobra.Command{
	Use:   "add <board-id> <url>",
	Short: "Attach an image or link to a board",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		boardID, rawURL := args[0], args[1]

		if !enrich.LooksLikeURL(rawURL) {
			fmt.Fprintf(os.Stderr, "not a valid http(s) URL: %s\n", rawURL)
			os.Exit(1)
		}

		svc, cfg := openService()
		defer closeService(svc)

		var item core.MediaItem
		if mediaAsImage || enrich.LooksLikeImageURL(rawURL) {
			item = enrich.Image(rawURL)
		} else {
			var resolver enrich.FaviconResolver
			if cfg.Favicons {
				resolver = enrich.DefaultFaviconResolver
			}
			item = enrich.Link(rawURL, resolver)
		}

		stored, ok := svc.AddMedia(boardID, item)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown board: %s\n", boardID)
			os.Exit(1)
		}
		fmt.Printf("Added %s %s to board %s\n", stored.Kind, stored.ID, boardID)
	},
}

// mediaRmCmd represents the media rm command
var mediaRmCmd = &cobra.Command{
	Use:   "rm <board-id> <media-id>",
	Short: "Remove an attachment from a board",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()
		defer closeService(svc)

		if !svc.RemoveMedia(args[0], args[1]) {
			fmt.Fprintln(os.Stderr, "no such attachment")
			os.Exit(1)
		}
		fmt.Printf("Removed %s from board %s\n", args[1], args[0])
	},
}

func init() {
	rootCmd.AddCommand(mediaCmd)
	mediaCmd.AddCommand(mediaAddCmd)
	mediaCmd.AddCommand(mediaRmCmd)
	mediaAddCmd.Flags().BoolVar(&mediaAsImage, "image", false, "Force treating the URL as an image")
}

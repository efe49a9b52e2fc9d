package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinstack/pinstack/pkg/core"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new board and make it active",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()
		defer closeService(svc)

		b := svc.CreateBoard()
		fmt.Printf("Created board %s (%s)\n", b.ID, b.Title)
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [board-id]",
	Short: "Show a board (the active one by default)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()
		defer closeService(svc)

		var b core.Board
		if len(args) == 1 {
			var ok bool
			b, ok = svc.Board(args[0])
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown board: %s\n", args[0])
				os.Exit(1)
			}
		} else {
			b = svc.Active()
		}

		fmt.Printf("%s [%s]\n\n%s\n", b.Title, b.Color, b.Content)
		if len(b.Media) > 0 {
			fmt.Println("\nMedia:")
			for _, m := range b.Media {
				fmt.Printf("  %s  %-5s  %s\n", m.ID, m.Kind, m.URL)
			}
		}
	},
}

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm <board-id>",
	Short: "Delete a board",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()
		defer closeService(svc)

		if !svc.DeleteBoard(args[0]) {
			fmt.Fprintln(os.Stderr, "board not deleted (unknown id, or it is the last remaining board)")
			os.Exit(1)
		}
		fmt.Printf("Deleted board %s\n", args[0])
	},
}

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select <board-id>",
	Short: "Make a board active",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()
		defer closeService(svc)

		if !svc.SelectBoard(args[0]) {
			fmt.Fprintf(os.Stderr, "unknown board: %s\n", args[0])
			os.Exit(1)
		}
		fmt.Printf("Active board is now %s\n", args[0])
	},
}

var (
	editTitle   string
	editContent string
	editColor   string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <board-id>",
	Short: "Update a board's title, content or color",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()
		defer closeService(svc)

		id := args[0]
		if _, ok := svc.Board(id); !ok {
			fmt.Fprintf(os.Stderr, "unknown board: %s\n", id)
			os.Exit(1)
		}

		if cmd.Flags().Changed("title") {
			svc.UpdateTitle(id, editTitle)
		}
		if cmd.Flags().Changed("content") {
			svc.UpdateContent(id, editContent)
		}
		if cmd.Flags().Changed("color") {
			if !svc.UpdateColor(id, core.Color(editColor)) {
				fmt.Fprintf(os.Stderr, "unknown color %q (palette: %v)\n", editColor, core.Palette)
				os.Exit(1)
			}
		}
		fmt.Printf("Updated board %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content")
	editCmd.Flags().StringVar(&editColor, "color", "", "New background color")
}

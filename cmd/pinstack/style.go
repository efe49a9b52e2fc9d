package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinstack/pinstack/pkg/core"
)

var (
	styleSize      int
	styleFamily    string
	styleAlign     string
	styleColor     string
	styleBold      bool
	styleItalic    bool
	styleUnderline bool
)

// styleCmd represents the style command
var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Show or update the global text style",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("size") && !core.ValidFontSize(styleSize) {
			fmt.Fprintf(os.Stderr, "unknown size %d (sizes: %v)\n", styleSize, core.FontSizes)
			os.Exit(1)
		}
		if cmd.Flags().Changed("family") && !core.ValidFontFamily(styleFamily) {
			fmt.Fprintf(os.Stderr, "unknown family %q (families: %v)\n", styleFamily, core.FontFamilies)
			os.Exit(1)
		}
		if cmd.Flags().Changed("align") && !core.ValidAlignment(core.Alignment(styleAlign)) {
			fmt.Fprintf(os.Stderr, "unknown alignment %q (left|center|right)\n", styleAlign)
			os.Exit(1)
		}
		if cmd.Flags().Changed("color") && !core.ValidTextColor(styleColor) {
			fmt.Fprintf(os.Stderr, "unknown color %q (colors: %v)\n", styleColor, core.TextColors)
			os.Exit(1)
		}

		svc, _ := openService()
		defer closeService(svc)

		svc.UpdateTextStyle(func(s *core.TextStyle) {
			if cmd.Flags().Changed("size") {
				s.FontSize = styleSize
			}
			if cmd.Flags().Changed("family") {
				s.FontFamily = styleFamily
			}
			if cmd.Flags().Changed("align") {
				s.Align = core.Alignment(styleAlign)
			}
			if cmd.Flags().Changed("color") {
				s.Color = styleColor
			}
			if cmd.Flags().Changed("bold") {
				s.Bold = styleBold
			}
			if cmd.Flags().Changed("italic") {
				s.Italic = styleItalic
			}
			if cmd.Flags().Changed("underline") {
				s.Underline = styleUnderline
			}
		})

		s := svc.TextStyle()
		fmt.Printf("size=%d family=%s align=%s color=%s bold=%t italic=%t underline=%t\n",
			s.FontSize, s.FontFamily, s.Align, s.Color, s.Bold, s.Italic, s.Underline)
	},
}

func init() {
	rootCmd.AddCommand(styleCmd)
	styleCmd.Flags().IntVar(&styleSize, "size", 0, "Font size")
	styleCmd.Flags().StringVar(&styleFamily, "family", "", "Font family")
	styleCmd.Flags().StringVar(&styleAlign, "align", "", "Alignment (left|center|right)")
	styleCmd.Flags().StringVar(&styleColor, "color", "", "Text color")
	styleCmd.Flags().BoolVar(&styleBold, "bold", false, "Bold")
	styleCmd.Flags().BoolVar(&styleItalic, "italic", false, "Italic")
	styleCmd.Flags().BoolVar(&styleUnderline, "underline", false, "Underline")
}

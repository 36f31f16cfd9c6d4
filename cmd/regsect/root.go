package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/regsect/internal/config"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool

	cfg config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "regsect",
	Short: "Extract sections from regulatory manuals",
	Long: `regsect splits regulatory and operations manuals (PDF, DOCX, Markdown,
HTML or plain text) into titled sections with labeled subsections.

Documents are classified into one of three header styles:
  - outline: sections come from the document's bookmarks and bold headings
  - range_bound: coded headers (ORG, FLT, DSP, ...) inside known page windows
  - numeric: ECAR-style "45.1 Title" headings`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "YAML config file (default: $REGSECT_CONFIG)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: json or yaml",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "debug logging on stderr",
	)

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(versionCmd)
}

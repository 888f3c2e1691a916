package cli

import (
	"github.com/mgpai22/gosub/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gosub",
	Short: "Convert Movie XML transcripts to SRT subtitles",
	Long: `Gosub converts frame-timed Movie XML dialogue transcripts into SRT
subtitle files.

Overlapping dialogue is merged into single captions, long captions are
split at sentence boundaries with redistributed timing, and speaker names
can be replaced on the way out.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "TOML config file with processing defaults")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output SRT file path")
}

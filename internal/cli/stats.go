package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/mgpai22/gosub/internal/pipeline"
	"github.com/mgpai22/gosub/internal/subtitle"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [movie_xml]",
	Short: "Show conversion statistics without writing output",
	Long: `Run the full conversion pipeline over a Movie XML transcript and
print entry counts, per-speaker breakdown, and timing totals, without
writing an SRT file.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	registerProcessingFlags(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.ConvertFile(args[0], opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	fmt.Println(renderStats(result.Stats, opts.FPS))
	return nil
}

func renderStats(stats pipeline.Stats, fps int) string {
	var sb strings.Builder

	sb.WriteString("=== Subtitle Statistics ===\n")
	fmt.Fprintf(&sb, "Parsed entries:      %d\n", stats.Parsed)
	fmt.Fprintf(&sb, "Skipped entries:     %d\n", stats.Skipped)
	fmt.Fprintf(&sb, "Merged windows:      %d\n", stats.Merged)
	fmt.Fprintf(&sb, "Final captions:      %d\n", stats.Split-stats.ZeroDropped)
	if stats.Clamped > 0 {
		fmt.Fprintf(&sb, "Clamped to zero:     %d\n", stats.Clamped)
	}
	if stats.ZeroDropped > 0 {
		fmt.Fprintf(&sb, "Dropped (zero span): %d\n", stats.ZeroDropped)
	}
	fmt.Fprintf(&sb, "Unique speakers:     %d\n", len(stats.Speakers))
	fmt.Fprintf(&sb, "Caption duration:    %s\n", subtitle.FormatDuration(stats.TotalFrames, fps))
	if stats.HasDocDuration {
		fmt.Fprintf(&sb, "Declared duration:   %s\n", subtitle.FormatDuration(stats.DocDuration, fps))
	}

	if len(stats.Speakers) > 0 {
		sb.WriteString(speakerTable(stats.Speakers))
		sb.WriteString("\n")
	}

	return sb.String()
}

func speakerTable(speakers map[string]int) string {
	names := make([]string, 0, len(speakers))
	for name := range speakers {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := table.NewWriter()
	if isTerminal(os.Stdout) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	tw.AppendHeader(table.Row{"Speaker", "Captions"})
	for _, name := range names {
		tw.AppendRow(table.Row{name, speakers[name]})
	}

	return tw.Render()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

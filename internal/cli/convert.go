package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/gosub/internal/config"
	"github.com/mgpai22/gosub/internal/pipeline"
	"github.com/mgpai22/gosub/internal/subtitle"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [movie_xml]",
	Short: "Convert a Movie XML transcript to an SRT subtitle file",
	Long: `Convert a Movie XML transcript to an SRT subtitle file.

By default the output file sits next to the input with a .srt extension.

Examples:
  gosub convert movie.xml
  gosub convert movie.xml -o subtitles.srt --offset 24
  gosub convert movie.xml -r "John:Jane" -r "Bob:Robert"
  gosub convert movie.xml --max-words 15 --stats`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	registerProcessingFlags(convertCmd)

	convertCmd.Flags().
		StringArrayP("replace", "r", nil, `Replace speaker names, format "OldName:NewName" (repeatable)`)
	convertCmd.Flags().
		Bool("stats", false, "Display subtitle statistics after converting")
}

func registerProcessingFlags(cmd *cobra.Command) {
	cmd.Flags().
		Int("fps", subtitle.DefaultFPS, "Frames per second of the transcript")
	cmd.Flags().
		IntP("max-words", "w", subtitle.DefaultMaxWordsPerLine, "Maximum words per subtitle line")
	cmd.Flags().
		Float64("words-per-second", subtitle.DefaultWordsPerSecond, "Speaking rate used for split timing")
	cmd.Flags().
		Float64("min-duration", subtitle.DefaultMinDuration, "Minimum subtitle duration in seconds")
	cmd.Flags().
		Float64("offset", 0, "Offset all subtitles by this many frames (can be negative)")
}

// buildOptions layers the configuration surface: built-in defaults, then
// the optional config file, then any flag the user explicitly set.
func buildOptions(cmd *cobra.Command) (pipeline.Options, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		FPS:             cfg.FPS,
		MaxWordsPerLine: cfg.MaxWordsPerLine,
		WordsPerSecond:  cfg.WordsPerSecond,
		MinDuration:     cfg.MinDuration,
		Offset:          cfg.Offset,
		Replacements:    subtitle.ReplacementMap{},
		Logger:          logger,
	}
	for oldName, newName := range cfg.Replacements {
		opts.Replacements[oldName] = newName
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		opts.FPS, _ = flags.GetInt("fps")
	}
	if flags.Changed("max-words") {
		opts.MaxWordsPerLine, _ = flags.GetInt("max-words")
	}
	if flags.Changed("words-per-second") {
		opts.WordsPerSecond, _ = flags.GetFloat64("words-per-second")
	}
	if flags.Changed("min-duration") {
		opts.MinDuration, _ = flags.GetFloat64("min-duration")
	}
	if flags.Changed("offset") {
		opts.Offset, _ = flags.GetFloat64("offset")
	}
	if flags.Changed("replace") {
		pairs, _ := flags.GetStringArray("replace")
		mapping, warnings := parseReplacements(pairs)
		for _, w := range warnings {
			logger.Warnw("ignoring replacement pair", "reason", w)
		}
		for oldName, newName := range mapping {
			opts.Replacements[oldName] = newName
		}
	}

	return opts, nil
}

// parseReplacements turns "OldName:NewName" pairs into a replacement map.
// Malformed pairs are reported back as warnings, not errors, so one bad
// pair never sinks a batch run.
func parseReplacements(pairs []string) (subtitle.ReplacementMap, []string) {
	mapping := subtitle.ReplacementMap{}
	var warnings []string

	for _, pair := range pairs {
		oldName, newName, found := strings.Cut(pair, ":")
		if !found {
			warnings = append(warnings, fmt.Sprintf("invalid format %q, expected \"OldName:NewName\"", pair))
			continue
		}
		oldName = strings.TrimSpace(oldName)
		newName = strings.TrimSpace(newName)
		if oldName == "" || newName == "" {
			warnings = append(warnings, fmt.Sprintf("empty name in %q", pair))
			continue
		}
		mapping[oldName] = newName
	}

	return mapping, warnings
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if !strings.EqualFold(filepath.Ext(inputPath), ".xml") {
		return fmt.Errorf("input must be a Movie XML file, got %q", filepath.Ext(inputPath))
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".srt"
	}

	logger.Infow("Converting transcript",
		"input", inputPath,
		"output", outputPath,
		"fps", opts.FPS,
		"max_words", opts.MaxWordsPerLine,
	)

	result, err := pipeline.ConvertFile(inputPath, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	captions := result.Stats.Split - result.Stats.ZeroDropped
	if captions == 0 {
		fmt.Println("No subtitles found in the transcript; nothing to write.")
		return nil
	}

	if err := subtitle.NewSRTWriter(opts.FPS).Write(result.Entries, outputPath); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}

	showStats, _ := cmd.Flags().GetBool("stats")
	if showStats || verbose {
		fmt.Println(renderStats(result.Stats, opts.FPS))
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles written: %s\n", absOutput)
	fmt.Printf("  Captions: %d\n", captions)
	fmt.Printf("  Duration: %s\n", subtitle.FormatDuration(result.Stats.TotalFrames, opts.FPS))

	return nil
}

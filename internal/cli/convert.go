package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mgpai22/txt2srt/internal/logging"
	"github.com/mgpai22/txt2srt/internal/subtitle"
	"github.com/mgpai22/txt2srt/internal/textfile"
	"github.com/mgpai22/txt2srt/internal/transcript"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	InputPath  string
	OutputPath string
	Encoding   string
	Format     subtitle.Format
}

func runConvert(cmd *cobra.Command, args []string) error {
	encoding := cfg.Encoding
	if cmd.Flags().Changed("encoding") {
		encoding, _ = cmd.Flags().GetString("encoding")
	}

	formatStr := cfg.Format
	if cmd.Flags().Changed("format") {
		formatStr, _ = cmd.Flags().GetString("format")
	}
	format, err := resolveFormat(formatStr, args[1])
	if err != nil {
		return err
	}

	opts := convertOptions{
		InputPath:  args[0],
		OutputPath: args[1],
		Encoding:   encoding,
		Format:     format,
	}
	return convertFile(opts, logger, cmd.OutOrStdout())
}

// picks the explicit format if given, otherwise the one implied by the
// output file extension
func resolveFormat(name, outputPath string) (subtitle.Format, error) {
	if strings.TrimSpace(name) == "" {
		return subtitle.FormatFromExtension(outputPath), nil
	}
	return subtitle.ParseFormat(name)
}

func convertFile(opts convertOptions, log *logging.Logger, out io.Writer) error {
	log.Infow("Converting transcript",
		"input", opts.InputPath,
		"output", opts.OutputPath,
		"encoding", opts.Encoding,
		"format", opts.Format,
	)

	if ext := subtitle.GetExtensionForFormat(opts.Format); !strings.EqualFold(filepath.Ext(opts.OutputPath), ext) {
		log.Warnw("Output extension does not match subtitle format",
			"output", opts.OutputPath,
			"expected_extension", ext,
		)
	}

	writer, err := subtitle.NewWriter(opts.Format, opts.Encoding)
	if err != nil {
		return err
	}

	lines, err := textfile.ReadLines(opts.InputPath, opts.Encoding)
	if err != nil {
		return err
	}
	log.Debugw("Transcript read", "lines", len(lines))

	pairs, err := transcript.ExtractPairs(lines)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.InputPath, err)
	}
	log.Debugw("Caption pairs extracted", "pairs", len(pairs))

	subs, err := subtitle.Build(pairs)
	if err != nil {
		return fmt.Errorf("failed to build subtitles: %w", err)
	}

	if err := writer.Write(subs, opts.OutputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(opts.OutputPath)
	fmt.Fprintf(out, "Subtitles converted successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Entries: %d\n", len(subs.Entries))

	return nil
}

package cli

import (
	"fmt"

	"github.com/mgpai22/txt2srt/internal/config"
	"github.com/mgpai22/txt2srt/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "txt2srt [input.txt] [output.srt]",
	Short: "Convert a timestamped text transcript into an SRT subtitle file",
	Long: `txt2srt turns a plain-text transcript with timestamp lines into subtitles.

Each line shaped like mm:ss or hh:mm:ss starts a subtitle, and the line right
after it becomes the subtitle text. A subtitle ends where the next one begins,
or 3 seconds after it starts when there is no later timestamp.

Examples:
  txt2srt input.txt output.srt
  txt2srt input.txt output.srt --encoding gbk
  txt2srt input.txt output.vtt
  txt2srt input.txt output.ass --format ass -v`,
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	PreRunE: loadConfig,
	RunE:    runConvert,
}

// reads the config file and rebuilds the logger from it; only the converter
// needs this, so `license` keeps working with a broken config
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, resolved, exists, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	l, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	logger = l
	logger.Debugw("Configuration loaded",
		"path", resolved,
		"exists", exists,
	)
	return nil
}

// Execute runs the command tree. Errors are returned, not printed.
func Execute() error {
	defer func() {
		_ = logger.Sync()
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", fmt.Sprintf("Config file path (default %s)", "~/.config/txt2srt/config.toml"))

	rootCmd.Flags().
		StringP("encoding", "e", "utf-8", "Text encoding used to read the transcript and write the subtitles")
	rootCmd.Flags().
		StringP("format", "f", "", "Output subtitle format (srt, vtt, ass); defaults to the output file extension")
}

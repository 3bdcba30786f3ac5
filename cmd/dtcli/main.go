// Command dtcli translates files with DeepL and extracts text from images
// without the desktop UI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deepl-desktop/internal/logger"
	"deepl-desktop/models"
)

// options holds persistent flags shared by all subcommands.
type options struct {
	apiKey     string
	baseURL    string
	configPath string
	logLevel   string

	cfg *models.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "dtcli <COMMAND>",
		Short:         "DeepL file translation and Tesseract OCR from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.apiKey, "api-key", "", "DeepL API key (default: DEEPL_API_KEY or the settings file)")
	flags.StringVar(&opts.baseURL, "base-url", "", "Override the DeepL endpoint derived from the key")
	flags.StringVar(&opts.configPath, "config", models.DefaultConfigPath(), "Path to the settings file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newTranslateCmd(opts),
		newOCRCmd(opts),
		newUsageCmd(opts),
	)
	return rootCmd
}

// load reads settings and applies any flags the user set explicitly.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := models.LoadConfigFrom(o.configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = o.apiKey
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	o.cfg = cfg
	return nil
}

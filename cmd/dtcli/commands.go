package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"deepl-desktop/models"
	"deepl-desktop/services"
)

func newTranslateCmd(opts *options) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Translate a .txt, .srt, .docx or .pdf file",
		Long: "Translate a file with DeepL. The result is written next to the input\n" +
			"as <name>_<LANG><ext>.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("target") {
				target = opts.cfg.DefaultTargetLang
			}
			p, err := services.NewPipeline(opts.cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			task := models.NewTask(models.KindTranslateFile, args[0], target)
			if err := p.Run(ctx, task); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), task.OutputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target language code, e.g. DE or EN-US (default: settings)")
	return cmd
}

func newOCRCmd(opts *options) *cobra.Command {
	var langs, translateTo string

	cmd := &cobra.Command{
		Use:   "ocr <image>",
		Short: "Extract text from an image, optionally translating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if langs != "" {
				opts.cfg.OCRLanguages = langs
			}
			p, err := services.NewPipeline(opts.cfg)
			if err != nil {
				return err
			}

			task := models.NewTask(models.KindOCR, args[0], translateTo)
			if err := p.Run(cmd.Context(), task); err != nil {
				return err
			}
			if task.Translated != "" {
				fmt.Fprintln(cmd.OutOrStdout(), services.CombinedText(task.Text, task.Translated, task.TargetLang))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), task.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&langs, "lang", "l", "", "Tesseract languages joined with '+' (default: settings, eng+ind)")
	cmd.Flags().StringVar(&translateTo, "translate-to", "", "Translate the extracted text to this language")
	return cmd
}

func newUsageCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Validate the API key and show the character quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := services.NewDeepLTranslator(opts.cfg)
			if err != nil {
				return err
			}
			u, err := t.ValidateKey(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d characters used, %d remaining\n",
				u.CharacterCount, u.CharacterLimit, u.Remaining())
			return nil
		},
	}
}

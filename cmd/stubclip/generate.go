package main

import (
	"fmt"

	"github.com/example/stubclip/internal/audio"
	"github.com/example/stubclip/internal/batch"
	"github.com/example/stubclip/internal/config"
	"github.com/example/stubclip/internal/ffmpeg"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [output_dir [api_key [bg_image]]]",
		Short: "Create one silent placeholder clip per script file in a directory",
		Long: "Scans a directory for script files (*.txt by default) and writes one\n" +
			"silent placeholder clip per file, deriving each output name from the\n" +
			"input name. The API key and background image are accepted for the\n" +
			"upstream pipeline's calling convention; they are logged but unused.",
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			// Positional arguments override the configured values, matching
			// the upstream pipeline's `<dir> <api_key> <bg_image>` call shape.
			if len(args) > 0 {
				cfg.Pipeline.OutputDir = args[0]
			}
			if len(args) > 1 {
				cfg.Pipeline.APIKey = args[1]
			}
			if len(args) > 2 {
				cfg.Pipeline.BackgroundImage = args[2]
			}

			if cfg.Pipeline.OutputDir == "" {
				return fmt.Errorf("no output directory: pass it as the first argument or set --pipeline-output-dir")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			enc, outExt, err := buildEncoder(cfg.Encoder)
			if err != nil {
				return err
			}

			summary, err := batch.Run(cmd.Context(), batch.Options{
				Dir:             cfg.Pipeline.OutputDir,
				APIKey:          cfg.Pipeline.APIKey,
				BackgroundImage: cfg.Pipeline.BackgroundImage,
				Extension:       cfg.Pipeline.Extension,
				OutExtension:    outExt,
				Concurrency:     cfg.Pipeline.Concurrency,
				FailFast:        cfg.Pipeline.FailFast,
				Encoder:         enc,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %d of %d placeholder clips\n", summary.Created, summary.Requested)
			return nil
		},
	}

	return cmd
}

// buildEncoder selects the placeholder encoder for the configured format
// and returns it together with the output file extension.
func buildEncoder(cfg config.EncoderConfig) (batch.Encoder, string, error) {
	format, err := config.NormalizeFormat(cfg.Format)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case config.FormatWAV:
		return audio.PlaceholderWriter{
			SampleRate: cfg.SampleRate,
			DurationMS: cfg.DurationMS,
		}, ".wav", nil
	default:
		return ffmpeg.Encoder{
			Path:       cfg.FFmpegPath,
			SampleRate: cfg.SampleRate,
			Channels:   cfg.Channels,
			DurationMS: cfg.DurationMS,
			Quality:    cfg.Quality,
		}, ".mp3", nil
	}
}

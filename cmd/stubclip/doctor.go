package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/example/stubclip/internal/config"
	"github.com/example/stubclip/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local environment checks",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			exe := cfg.Encoder.FFmpegPath
			if exe == "" {
				exe = "ffmpeg"
			}

			format, err := config.NormalizeFormat(cfg.Encoder.Format)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "format: %s\n", format)

			result := doctor.Run(doctor.Config{
				FFmpegVersion: func() (string, error) {
					return probeFFmpegVersion(exe)
				},
				SkipFFmpeg:      format == config.FormatWAV,
				OutputDir:       cfg.Pipeline.OutputDir,
				BackgroundImage: cfg.Pipeline.BackgroundImage,
			}, os.Stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "doctor checks passed")

			return nil
		},
	}

	return cmd
}

// probeFFmpegVersion runs `ffmpeg -version` and returns its first output line.
func probeFFmpegVersion(exe string) (string, error) {
	out, err := exec.CommandContext(context.Background(), exe, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("%s -version failed: %w", exe, err)
	}

	// Output starts with e.g. "ffmpeg version 6.1.1 Copyright ...".
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")

	return strings.TrimSpace(line), nil
}

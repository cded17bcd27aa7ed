// Package doctor provides environment preflight checks for stubclip.
package doctor

import (
	"fmt"
	"io"
	"os"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// VersionFunc returns a version string or an error if the component is unavailable.
type VersionFunc func() (string, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// FFmpegVersion returns the first line of `ffmpeg -version`.
	FFmpegVersion VersionFunc
	// SkipFFmpeg skips the ffmpeg check (native WAV output mode).
	SkipFFmpeg bool
	// OutputDir is the batch input/output directory to verify on disk.
	// Empty means unset and is reported as a failure.
	OutputDir string
	// BackgroundImage is the reserved image path; checked only when set.
	BackgroundImage string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- ffmpeg binary ----------------------------------------------------
	if cfg.SkipFFmpeg {
		fmt.Fprintf(w, "%s ffmpeg binary: skipped (wav output needs no external encoder)\n", PassMark)
	} else {
		ver, err := cfg.FFmpegVersion()
		if err != nil {
			res.fail(fmt.Sprintf("ffmpeg binary: %v", err))
			fmt.Fprintf(w, "%s ffmpeg binary: not found (%v)\n", FailMark, err)
		} else {
			fmt.Fprintf(w, "%s ffmpeg binary: %s\n", PassMark, ver)
		}
	}

	// ---- output directory -------------------------------------------------
	if cfg.OutputDir == "" {
		res.fail("output directory: not configured")
		fmt.Fprintf(w, "%s output directory: not configured\n", FailMark)
	} else if info, err := os.Stat(cfg.OutputDir); err != nil {
		res.fail(fmt.Sprintf("output directory %q: %v", cfg.OutputDir, err))
		fmt.Fprintf(w, "%s output directory %s: not found\n", FailMark, cfg.OutputDir)
	} else if !info.IsDir() {
		res.fail(fmt.Sprintf("output directory %q: not a directory", cfg.OutputDir))
		fmt.Fprintf(w, "%s output directory %s: not a directory\n", FailMark, cfg.OutputDir)
	} else {
		fmt.Fprintf(w, "%s output directory: %s\n", PassMark, cfg.OutputDir)
	}

	// ---- background image -------------------------------------------------
	if cfg.BackgroundImage != "" {
		if _, err := os.Stat(cfg.BackgroundImage); err != nil {
			res.fail(fmt.Sprintf("background image %q: %v", cfg.BackgroundImage, err))
			fmt.Fprintf(w, "%s background image %s: not found\n", FailMark, cfg.BackgroundImage)
		} else {
			fmt.Fprintf(w, "%s background image: %s\n", PassMark, cfg.BackgroundImage)
		}
	}

	return res
}

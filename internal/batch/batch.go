// Package batch drives one placeholder-generation run: scan a directory
// for script files, derive one output path per input, and encode a silent
// clip at each output path.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/example/stubclip/internal/scan"
)

// Encoder writes one placeholder clip to outPath.
type Encoder interface {
	Encode(ctx context.Context, outPath string) error
}

// Options configures a single Run.
type Options struct {
	// Dir is scanned non-recursively for input files.
	Dir string
	// APIKey and BackgroundImage are reserved pipeline inputs; Run only
	// announces them (the key masked) and passes them through.
	APIKey          string
	BackgroundImage string
	// Extension filters input files; OutExtension names the outputs.
	// Both include the leading dot.
	Extension    string
	OutExtension string
	// Concurrency bounds parallel encodes. Values below 1 mean 1, which
	// preserves strictly sequential processing.
	Concurrency int
	// FailFast aborts the batch after the first encoder failure instead
	// of continuing with the remaining files.
	FailFast bool

	Encoder Encoder
	Logger  *slog.Logger
}

// Summary reports the outcome of a Run.
type Summary struct {
	Requested int
	Created   int
	Failed    int
}

// Run executes one batch. Each input file is independent: by default a
// failed encode is logged and the rest of the batch proceeds, and the
// returned error reports the failure count at the end. With FailFast the
// first failure cancels the remaining encodes.
func Run(ctx context.Context, opts Options) (Summary, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	log.Info("starting placeholder run",
		"dir", opts.Dir,
		"api_key", MaskKey(opts.APIKey),
		"background_image", opts.BackgroundImage,
		"extension", opts.Extension,
	)

	if _, err := os.Stat(opts.Dir); err != nil {
		log.Warn("output directory not accessible, nothing to do", "dir", opts.Dir, "error", err)
		return Summary{}, nil
	}

	files, err := scan.List(opts.Dir, opts.Extension)
	if err != nil {
		return Summary{}, fmt.Errorf("scan %s: %w", opts.Dir, err)
	}
	if len(files) == 0 {
		log.Info("no matching input files", "dir", opts.Dir, "extension", opts.Extension)
		return Summary{}, nil
	}

	summary := Summary{Requested: len(files)}

	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	sem := make(chan struct{}, workers)

	for _, in := range files {
		if runCtx.Err() != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)

		go func(in string) {
			defer wg.Done()
			defer func() { <-sem }()

			if runCtx.Err() != nil {
				return
			}

			out := scan.OutputPath(in, opts.OutExtension)
			if err := opts.Encoder.Encode(runCtx, out); err != nil {
				log.Error("placeholder encode failed", "input", in, "output", out, "error", err)

				mu.Lock()
				summary.Failed++
				if firstErr == nil {
					firstErr = fmt.Errorf("encode %s: %w", out, err)
				}
				mu.Unlock()

				if opts.FailFast {
					cancel()
				}
				return
			}

			log.Info("created placeholder", "input", in, "output", out)

			mu.Lock()
			summary.Created++
			mu.Unlock()
		}(in)
	}

	wg.Wait()

	if summary.Failed > 0 {
		if opts.FailFast {
			return summary, firstErr
		}
		return summary, fmt.Errorf("%d of %d placeholder encodes failed", summary.Failed, summary.Requested)
	}

	log.Info("placeholder run complete", "created", summary.Created)
	return summary, nil
}

// MaskKey hides an API key for log output, keeping only the last four
// characters of sufficiently long keys.
func MaskKey(key string) string {
	if key == "" {
		return "(none)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return "****" + key[len(key)-4:]
}

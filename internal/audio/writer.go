package audio

import (
	"context"
	"fmt"
	"os"
)

// PlaceholderWriter writes silent WAV placeholders natively, without an
// external encoder process. It mirrors the ffmpeg encoder's Encode
// signature so batch runs can swap between the two.
type PlaceholderWriter struct {
	SampleRate int
	DurationMS int
}

// Encode writes a silent mono WAV clip to outPath, overwriting any
// existing file.
func (w PlaceholderWriter) Encode(ctx context.Context, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeWAV(Silence(w.SampleRate, w.DurationMS), w.SampleRate)
	if err != nil {
		return fmt.Errorf("encode placeholder WAV: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write placeholder WAV: %w", err)
	}
	return nil
}

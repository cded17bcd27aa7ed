// Package ffmpeg shells out to an external ffmpeg process to fabricate
// silent placeholder clips. ffmpeg is treated as a black box: only a
// successful exit and the presence of the output file matter.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Encoder holds the fixed parameters of a placeholder encode. The zero
// value is not usable; construct via New or fill every field.
type Encoder struct {
	// Path is the ffmpeg executable; empty means "ffmpeg" on PATH.
	Path       string
	SampleRate int
	Channels   int
	DurationMS int
	// Quality is the libmp3lame VBR level, 0 (best) through 9 (worst).
	Quality int
}

// New returns an Encoder with the given executable path and the default
// placeholder parameters: 44.1 kHz mono, 2 seconds, lowest-fidelity VBR.
func New(path string) Encoder {
	return Encoder{
		Path:       path,
		SampleRate: 44100,
		Channels:   1,
		DurationMS: 2000,
		Quality:    9,
	}
}

// runEncode is swapped out by tests to avoid spawning real processes.
var runEncode = runCommand

// Args returns the ffmpeg argv (without the executable) that synthesizes
// silence and encodes it to outPath, overwriting an existing file.
func (e Encoder) Args(outPath string) []string {
	sec := float64(e.DurationMS) / 1000.0
	return []string{
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%d:cl=%s", e.SampleRate, channelLayout(e.Channels)),
		"-t", strconv.FormatFloat(sec, 'f', -1, 64),
		"-acodec", "libmp3lame",
		"-q:a", strconv.Itoa(e.Quality),
		outPath,
	}
}

// Encode writes a silent placeholder clip to outPath. Failures are
// returned with ffmpeg's stderr folded into the message.
func (e Encoder) Encode(ctx context.Context, outPath string) error {
	exe := e.Path
	if exe == "" {
		exe = "ffmpeg"
	}

	if err := runEncode(ctx, exe, e.Args(outPath)); err != nil {
		return mapEncodeError(exe, err)
	}
	return nil
}

func runCommand(ctx context.Context, exe string, args []string) error {
	cmd := exec.CommandContext(ctx, exe, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := lastStderrLine(stderr.Bytes()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// mapEncodeError translates low-level exec failures into actionable messages.
func mapEncodeError(exe string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("encode failed: %s not found; install ffmpeg or set --encoder-ffmpeg-path: %w", exe, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("encode failed: %s returned non-zero exit: %w", exe, err)
	}

	return fmt.Errorf("encode failed: %w", err)
}

// lastStderrLine returns the final non-empty stderr line, which is where
// ffmpeg puts its actual error after the banner noise.
func lastStderrLine(stderr []byte) string {
	lines := strings.Split(strings.TrimSpace(string(stderr)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func channelLayout(channels int) string {
	if channels == 2 {
		return "stereo"
	}
	return "mono"
}

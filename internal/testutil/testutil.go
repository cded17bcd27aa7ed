// Package testutil provides shared skip helpers for integration tests.
//
// Each helper calls t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so integration tests remain runnable in partial
// environments without failing noisily.
//
// Typical usage:
//
//	func TestMyIntegration(t *testing.T) {
//	    testutil.RequireFFmpeg(t)
//	    ...
//	}
package testutil

import (
	"os"
	"os/exec"
	"testing"
)

// RequireFFmpeg skips the test if the ffmpeg binary is not found in PATH
// or at the path given by the STUBCLIP_ENCODER_FFMPEG_PATH environment
// variable.
func RequireFFmpeg(tb testing.TB) {
	tb.Helper()

	exe := os.Getenv("STUBCLIP_ENCODER_FFMPEG_PATH")
	if exe == "" {
		exe = "ffmpeg"
	}

	_, err := exec.LookPath(exe)
	if err != nil {
		tb.Skipf("ffmpeg binary not available (%q not in PATH); set STUBCLIP_ENCODER_FFMPEG_PATH to override", exe)
	}
}

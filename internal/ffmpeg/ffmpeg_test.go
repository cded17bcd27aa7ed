package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestArgs(t *testing.T) {
	enc := New("ffmpeg")

	got := strings.Join(enc.Args("out/a.mp3"), " ")
	want := "-y -f lavfi -i anullsrc=r=44100:cl=mono -t 2 -acodec libmp3lame -q:a 9 out/a.mp3"
	if got != want {
		t.Errorf("Args:\n got %q\nwant %q", got, want)
	}
}

func TestArgs_FractionalDuration(t *testing.T) {
	enc := New("ffmpeg")
	enc.DurationMS = 1500

	args := enc.Args("a.mp3")
	found := false
	for i, a := range args {
		if a == "-t" && i+1 < len(args) {
			found = true
			if args[i+1] != "1.5" {
				t.Errorf("-t = %q; want 1.5", args[i+1])
			}
		}
	}
	if !found {
		t.Fatal("no -t flag in args")
	}
}

func TestArgs_Stereo(t *testing.T) {
	enc := New("ffmpeg")
	enc.Channels = 2

	joined := strings.Join(enc.Args("a.mp3"), " ")
	if !strings.Contains(joined, "cl=stereo") {
		t.Errorf("expected stereo channel layout, got %q", joined)
	}
}

func TestEncode_InvokesRunner(t *testing.T) {
	orig := runEncode
	t.Cleanup(func() { runEncode = orig })

	var gotExe string
	var gotArgs []string
	runEncode = func(_ context.Context, exe string, args []string) error {
		gotExe = exe
		gotArgs = args
		return nil
	}

	enc := New("")
	if err := enc.Encode(context.Background(), "out.mp3"); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if gotExe != "ffmpeg" {
		t.Errorf("empty Path should fall back to %q, got %q", "ffmpeg", gotExe)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != "out.mp3" {
		t.Errorf("output path should be the final argument, got %v", gotArgs)
	}
}

func TestEncode_MapsNotFound(t *testing.T) {
	orig := runEncode
	t.Cleanup(func() { runEncode = orig })

	runEncode = func(_ context.Context, _ string, _ []string) error {
		return exec.ErrNotFound
	}

	enc := New("ffmpeg")
	err := enc.Encode(context.Background(), "out.mp3")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error should wrap exec.ErrNotFound: %v", err)
	}
	if !strings.Contains(err.Error(), "--encoder-ffmpeg-path") {
		t.Errorf("error should point at the override flag: %v", err)
	}
}

func TestEncode_MissingExecutable(t *testing.T) {
	enc := New("/nonexistent/ffmpeg-binary")

	err := enc.Encode(context.Background(), "out.mp3")
	if err == nil {
		t.Fatal("expected error for missing executable")
	}
}

func TestLastStderrLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "single", in: "boom\n", want: "boom"},
		{name: "skips trailing blanks", in: "banner\nreal error\n\n  \n", want: "real error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastStderrLine([]byte(tt.in)); got != tt.want {
				t.Errorf("lastStderrLine(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

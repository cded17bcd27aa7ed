package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("script"), 0o644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.txt", "a.txt", "notes.md", "c.TXT")

	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	writeFiles(t, filepath.Join(dir, "sub.txt"), "nested.txt")

	got, err := List(dir, ".txt")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.TXT"),
	}
	if len(got) != len(want) {
		t.Fatalf("List returned %d files, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestList_NoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "notes.md", "cover.png")

	got, err := List(dir, ".txt")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestList_MissingDir(t *testing.T) {
	got, err := List(filepath.Join(t.TempDir(), "does-not-exist"), ".txt")
	if err != nil {
		t.Fatalf("List on missing dir should not error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list for missing dir, got %v", got)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ext  string
		want string
	}{
		{name: "simple", in: "out/a.txt", ext: ".mp3", want: "out/a.mp3"},
		{name: "wav output", in: "out/a.txt", ext: ".wav", want: "out/a.wav"},
		{name: "dotted base", in: "out/script_v1.2.txt", ext: ".mp3", want: "out/script_v1.2.mp3"},
		{name: "no directory", in: "a.txt", ext: ".mp3", want: "a.mp3"},
		{name: "nested directory preserved", in: "a/b/c.txt", ext: ".mp3", want: "a/b/c.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath(filepath.FromSlash(tt.in), tt.ext)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("OutputPath(%q, %q) = %q; want %q", tt.in, tt.ext, got, tt.want)
			}
		})
	}
}

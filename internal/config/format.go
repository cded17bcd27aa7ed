package config

import (
	"fmt"
	"strings"
)

const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
)

// NormalizeFormat lowercases and validates a placeholder format name.
// An empty value selects mp3.
func NormalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		format = FormatMP3
	}
	switch format {
	case FormatMP3, FormatWAV:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected %s|%s)", raw, FormatMP3, FormatWAV)
	}
}

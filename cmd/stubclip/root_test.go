package main

import (
	"testing"

	"github.com/example/stubclip/internal/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"generate", "doctor"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentConfigFlag(t *testing.T) {
	root := NewRootCmd()
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("expected --config persistent flag to be registered")
	}
}

func TestNewRootCmd_RegistersConfigFlags(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"pipeline-output-dir", "encoder-format", "encoder-quality", "log-level"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q to be registered", name)
		}
	}
}

func TestSetupLogger_DoesNotPanic(_ *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		setupLogger(level)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(_ *testing.T) {
	// Should not panic on invalid level.
	setupLogger("not-a-level")
}

func TestParseLogLevel_UnknownErrors(t *testing.T) {
	if _, err := parseLogLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	origCfg, origLoaded := activeCfg, cfgLoaded

	t.Cleanup(func() { activeCfg, cfgLoaded = origCfg, origLoaded })

	activeCfg = config.Config{}
	cfgLoaded = false

	_, err := requireConfig()
	if err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	origCfg, origLoaded := activeCfg, cfgLoaded

	t.Cleanup(func() { activeCfg, cfgLoaded = origCfg, origLoaded })

	activeCfg = config.DefaultConfig()
	activeCfg.Pipeline.OutputDir = "/some/output/dir"
	cfgLoaded = true

	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if got.Pipeline.OutputDir != "/some/output/dir" {
		t.Errorf("unexpected OutputDir: %q", got.Pipeline.OutputDir)
	}
}

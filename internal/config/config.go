package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Encoder  EncoderConfig  `mapstructure:"encoder"`
	LogLevel string         `mapstructure:"log_level"`
}

// PipelineConfig describes one batch run. APIKey and BackgroundImage are
// reserved for the real synthesis and compositing stages of the pipeline;
// they are accepted and logged (the key masked) but drive no behavior yet.
type PipelineConfig struct {
	OutputDir       string `mapstructure:"output_dir"`
	APIKey          string `mapstructure:"api_key"`
	BackgroundImage string `mapstructure:"background_image"`
	Extension       string `mapstructure:"extension"`
	Concurrency     int    `mapstructure:"concurrency"`
	FailFast        bool   `mapstructure:"fail_fast"`
}

type EncoderConfig struct {
	FFmpegPath string `mapstructure:"ffmpeg_path"`
	Format     string `mapstructure:"format"`
	SampleRate int    `mapstructure:"sample_rate"`
	Channels   int    `mapstructure:"channels"`
	DurationMS int    `mapstructure:"duration_ms"`
	Quality    int    `mapstructure:"quality"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Pipeline: PipelineConfig{
			OutputDir:       "",
			APIKey:          "",
			BackgroundImage: "",
			Extension:       ".txt",
			Concurrency:     1,
			FailFast:        false,
		},
		Encoder: EncoderConfig{
			FFmpegPath: "ffmpeg",
			Format:     FormatMP3,
			SampleRate: 44100,
			Channels:   1,
			DurationMS: 2000,
			Quality:    9,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("pipeline-output-dir", defaults.Pipeline.OutputDir, "Directory holding script files and receiving audio output")
	fs.String("pipeline-api-key", defaults.Pipeline.APIKey, "Speech API key (reserved, not consumed yet)")
	fs.String("pipeline-background-image", defaults.Pipeline.BackgroundImage, "Background image path (reserved, not consumed yet)")
	fs.String("pipeline-extension", defaults.Pipeline.Extension, "Input file extension to match")
	fs.Int("pipeline-concurrency", defaults.Pipeline.Concurrency, "Max concurrent placeholder encodes")
	fs.Bool("pipeline-fail-fast", defaults.Pipeline.FailFast, "Abort the batch on the first encoder failure")
	fs.String("encoder-ffmpeg-path", defaults.Encoder.FFmpegPath, "Path to ffmpeg executable")
	fs.String("encoder-format", defaults.Encoder.Format, "Placeholder format (mp3|wav)")
	fs.Int("encoder-sample-rate", defaults.Encoder.SampleRate, "Placeholder sample rate in Hz")
	fs.Int("encoder-channels", defaults.Encoder.Channels, "Placeholder channel count")
	fs.Int("encoder-duration-ms", defaults.Encoder.DurationMS, "Placeholder duration in milliseconds")
	fs.Int("encoder-quality", defaults.Encoder.Quality, "libmp3lame VBR quality (0 best .. 9 worst)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("STUBCLIP")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	// The upstream pipeline exports the key as ELEVEN_API_KEY; honour it.
	if err := v.BindEnv("pipeline.api_key", "STUBCLIP_PIPELINE_API_KEY", "ELEVEN_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("stubclip")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate checks field ranges that would otherwise surface as confusing
// ffmpeg or WAV-encoder failures deep in a run.
func (c Config) Validate() error {
	if _, err := NormalizeFormat(c.Encoder.Format); err != nil {
		return err
	}
	if c.Encoder.SampleRate < 1 {
		return fmt.Errorf("invalid sample rate %d", c.Encoder.SampleRate)
	}
	if c.Encoder.Channels < 1 {
		return fmt.Errorf("invalid channel count %d", c.Encoder.Channels)
	}
	if c.Encoder.DurationMS <= 0 {
		return fmt.Errorf("invalid duration %dms", c.Encoder.DurationMS)
	}
	if c.Encoder.Quality < 0 || c.Encoder.Quality > 9 {
		return fmt.Errorf("invalid quality %d (want 0..9)", c.Encoder.Quality)
	}
	if c.Pipeline.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d", c.Pipeline.Concurrency)
	}
	if !strings.HasPrefix(c.Pipeline.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Pipeline.Extension)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("pipeline.output_dir", c.Pipeline.OutputDir)
	v.SetDefault("pipeline.api_key", c.Pipeline.APIKey)
	v.SetDefault("pipeline.background_image", c.Pipeline.BackgroundImage)
	v.SetDefault("pipeline.extension", c.Pipeline.Extension)
	v.SetDefault("pipeline.concurrency", c.Pipeline.Concurrency)
	v.SetDefault("pipeline.fail_fast", c.Pipeline.FailFast)
	v.SetDefault("encoder.ffmpeg_path", c.Encoder.FFmpegPath)
	v.SetDefault("encoder.format", c.Encoder.Format)
	v.SetDefault("encoder.sample_rate", c.Encoder.SampleRate)
	v.SetDefault("encoder.channels", c.Encoder.Channels)
	v.SetDefault("encoder.duration_ms", c.Encoder.DurationMS)
	v.SetDefault("encoder.quality", c.Encoder.Quality)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("pipeline.output_dir", "pipeline-output-dir")
	v.RegisterAlias("pipeline.api_key", "pipeline-api-key")
	v.RegisterAlias("pipeline.background_image", "pipeline-background-image")
	v.RegisterAlias("pipeline.extension", "pipeline-extension")
	v.RegisterAlias("pipeline.concurrency", "pipeline-concurrency")
	v.RegisterAlias("pipeline.fail_fast", "pipeline-fail-fast")
	v.RegisterAlias("encoder.ffmpeg_path", "encoder-ffmpeg-path")
	v.RegisterAlias("encoder.format", "encoder-format")
	v.RegisterAlias("encoder.sample_rate", "encoder-sample-rate")
	v.RegisterAlias("encoder.channels", "encoder-channels")
	v.RegisterAlias("encoder.duration_ms", "encoder-duration-ms")
	v.RegisterAlias("encoder.quality", "encoder-quality")
	v.RegisterAlias("log_level", "log-level")
}

// Package config loads the engine configuration from defaults, an optional
// config file, environment variables (KITTENTTS_*) and bound flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths      PathsConfig      `mapstructure:"paths"`
	Normalizer NormalizerConfig `mapstructure:"normalizer"`
	TTS        TTSConfig        `mapstructure:"tts"`
}

type PathsConfig struct {
	VoicesPath string `mapstructure:"voices_path"`
}

// NormalizerConfig mirrors text.Options; see that type for semantics.
type NormalizerConfig struct {
	Lowercase           bool   `mapstructure:"lowercase"`
	StripPunctuation    bool   `mapstructure:"strip_punctuation"`
	RemoveSocialHandles bool   `mapstructure:"remove_social_handles"`
	ExpandCurrency      bool   `mapstructure:"expand_currency"`
	DecimalSeparator    string `mapstructure:"decimal_separator"`
}

type TTSConfig struct {
	Voice               string  `mapstructure:"voice"`
	Speed               float64 `mapstructure:"speed"`
	MaxChunkChars       int     `mapstructure:"max_chunk_chars"`
	TrimTrailingSamples int     `mapstructure:"trim_trailing_samples"`

	// VoiceAliases maps friendly voice names to archive keys.
	VoiceAliases map[string]string `mapstructure:"voice_aliases"`

	// SpeedPriors holds per-voice speed factors multiplied into the
	// requested speed; absent voices default to 1.0.
	SpeedPriors map[string]float64 `mapstructure:"speed_priors"`
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
		Paths: PathsConfig{
			VoicesPath: "models/voices.npz",
		},
		Normalizer: NormalizerConfig{
			Lowercase:           false,
			StripPunctuation:    false,
			RemoveSocialHandles: false,
			ExpandCurrency:      true,
			DecimalSeparator:    "point",
		},
		TTS: TTSConfig{
			Voice:               "expr-voice-5-m",
			Speed:               1.0,
			MaxChunkChars:       400,
			TrimTrailingSamples: 5000,
			VoiceAliases:        map[string]string{},
			SpeedPriors:         map[string]float64{},
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-voices-path", defaults.Paths.VoicesPath, "Path to packed voice archive")
	fs.Bool("normalizer-lowercase", defaults.Normalizer.Lowercase, "Lowercase normalized text")
	fs.Bool("normalizer-strip-punctuation", defaults.Normalizer.StripPunctuation, "Strip punctuation from normalized text")
	fs.Bool("normalizer-remove-social-handles", defaults.Normalizer.RemoveSocialHandles, "Remove #hashtags and @mentions")
	fs.Bool("normalizer-expand-currency", defaults.Normalizer.ExpandCurrency, "Expand currency amounts into words")
	fs.String("normalizer-decimal-separator", defaults.Normalizer.DecimalSeparator, "Spoken decimal separator word")
	fs.String("tts-voice", defaults.TTS.Voice, "Default voice name or archive key")
	fs.Float64("tts-speed", defaults.TTS.Speed, "Default speaking speed factor")
	fs.Int("tts-max-chunk-chars", defaults.TTS.MaxChunkChars, "Maximum characters per synthesis chunk")
	fs.Int("tts-trim-trailing-samples", defaults.TTS.TrimTrailingSamples, "Trailing padding samples trimmed from each chunk waveform")
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

	v.SetEnvPrefix("KITTENTTS")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("kittentts")
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

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.voices_path", c.Paths.VoicesPath)
	v.SetDefault("normalizer.lowercase", c.Normalizer.Lowercase)
	v.SetDefault("normalizer.strip_punctuation", c.Normalizer.StripPunctuation)
	v.SetDefault("normalizer.remove_social_handles", c.Normalizer.RemoveSocialHandles)
	v.SetDefault("normalizer.expand_currency", c.Normalizer.ExpandCurrency)
	v.SetDefault("normalizer.decimal_separator", c.Normalizer.DecimalSeparator)
	v.SetDefault("tts.voice", c.TTS.Voice)
	v.SetDefault("tts.speed", c.TTS.Speed)
	v.SetDefault("tts.max_chunk_chars", c.TTS.MaxChunkChars)
	v.SetDefault("tts.trim_trailing_samples", c.TTS.TrimTrailingSamples)
	v.SetDefault("tts.voice_aliases", c.TTS.VoiceAliases)
	v.SetDefault("tts.speed_priors", c.TTS.SpeedPriors)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.voices_path", "paths-voices-path")
	v.RegisterAlias("normalizer.lowercase", "normalizer-lowercase")
	v.RegisterAlias("normalizer.strip_punctuation", "normalizer-strip-punctuation")
	v.RegisterAlias("normalizer.remove_social_handles", "normalizer-remove-social-handles")
	v.RegisterAlias("normalizer.expand_currency", "normalizer-expand-currency")
	v.RegisterAlias("normalizer.decimal_separator", "normalizer-decimal-separator")
	v.RegisterAlias("tts.voice", "tts-voice")
	v.RegisterAlias("tts.speed", "tts-speed")
	v.RegisterAlias("tts.max_chunk_chars", "tts-max-chunk-chars")
	v.RegisterAlias("tts.trim_trailing_samples", "tts-trim-trailing-samples")
}

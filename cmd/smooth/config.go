package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-smooth/dsp/filter/oneeuro"
)

// Config is the driver configuration. Values come from defaults, an
// optional config file, SMOOTH_* environment variables and flags, in
// increasing priority.
type Config struct {
	Kind       string       `mapstructure:"kind"       validate:"oneof=scalar vec2 vec3 vec4 rotation"`
	Timestamps bool         `mapstructure:"timestamps"`
	Header     bool         `mapstructure:"header"`
	Delimiter  string       `mapstructure:"delimiter"  validate:"len=1"`
	Bypass     bool         `mapstructure:"bypass"`
	Report     bool         `mapstructure:"report"`
	LogLevel   string       `mapstructure:"log_level"  validate:"oneof=debug info warn error"`
	Filter     FilterConfig `mapstructure:"filter"`
}

// FilterConfig mirrors oneeuro.Params. Cutoffs and frequency are not
// validated here: the filter corrects them and reports a warning.
type FilterConfig struct {
	Frequency        float64 `mapstructure:"frequency"`
	MinCutoff        float64 `mapstructure:"min_cutoff"`
	Beta             float64 `mapstructure:"beta"              validate:"gte=0"`
	DerivativeCutoff float64 `mapstructure:"derivative_cutoff"`
}

// Params converts the filter section to filter parameters.
func (c FilterConfig) Params() oneeuro.Params {
	return oneeuro.Params{
		Frequency:        c.Frequency,
		MinCutoff:        c.MinCutoff,
		Beta:             c.Beta,
		DerivativeCutoff: c.DerivativeCutoff,
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"kind":              "kind",
	"timestamps":        "timestamps",
	"header":            "header",
	"delimiter":         "delimiter",
	"bypass":            "bypass",
	"report":            "report",
	"log-level":         "log_level",
	"frequency":         "filter.frequency",
	"min-cutoff":        "filter.min_cutoff",
	"beta":              "filter.beta",
	"derivative-cutoff": "filter.derivative_cutoff",
}

func setDefaults(v *viper.Viper) {
	p := oneeuro.DefaultParams()

	v.SetDefault("kind", "scalar")
	v.SetDefault("timestamps", true)
	v.SetDefault("header", false)
	v.SetDefault("delimiter", ",")
	v.SetDefault("bypass", false)
	v.SetDefault("report", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("filter.frequency", p.Frequency)
	v.SetDefault("filter.min_cutoff", p.MinCutoff)
	v.SetDefault("filter.beta", p.Beta)
	v.SetDefault("filter.derivative_cutoff", p.DerivativeCutoff)
}

// loadConfig merges defaults, the config file at path (if not empty), the
// environment and every flag explicitly set on fs.
func loadConfig(path string, fs *flag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SMOOTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("smooth: read config: %w", err)
		}
	}

	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			if key, ok := flagKeys[f.Name]; ok {
				v.Set(key, f.Value.String())
			}
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("smooth: decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("smooth: invalid config: %w", err)
	}

	return cfg, nil
}

func (c Config) slogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) dimensions() int {
	switch c.Kind {
	case "vec2":
		return oneeuro.KindVector2.Dimensions()
	case "vec3":
		return oneeuro.KindVector3.Dimensions()
	case "vec4":
		return oneeuro.KindVector4.Dimensions()
	case "rotation":
		return oneeuro.KindRotation.Dimensions()
	default:
		return oneeuro.KindScalar.Dimensions()
	}
}

// Package config loads the run configuration from defaults, an optional YAML
// file and NETSIG_* environment variables, and validates it.
//
// Keys:
//
//	binning.res
//	infomap.seed, infomap.num_trials, infomap.markov_time, infomap.variable_markov_time
//	bootstrap.num_bootstraps, bootstrap.seed, bootstrap.workers
//	sig_clu.scheme, sig_clu.thresh, sig_clu.confidence
//	log.level, log.format
//
// Environment variables replace '.' with '_' after the prefix, e.g.
// NETSIG_SIG_CLU_SCHEME=RECURSIVE.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/katalvlaran/netsig/bootstrap"
	"github.com/katalvlaran/netsig/metrics"
	"github.com/katalvlaran/netsig/partition"
	"github.com/katalvlaran/netsig/sigclu"
)

// EnvPrefix is the environment variable prefix for overrides.
const EnvPrefix = "NETSIG"

// ErrInvalid indicates a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the whole run configuration.
type Config struct {
	Binning   BinningConfig   `mapstructure:"binning"`
	Infomap   InfomapConfig   `mapstructure:"infomap"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	SigClu    SigCluConfig    `mapstructure:"sig_clu"`
	Log       LogConfig       `mapstructure:"log"`
}

// BinningConfig holds the positional binning resolution.
type BinningConfig struct {
	Res float64 `mapstructure:"res" validate:"gt=0"`
}

// InfomapConfig is forwarded verbatim to the partitioner.
type InfomapConfig struct {
	Seed               int64   `mapstructure:"seed"`
	NumTrials          int     `mapstructure:"num_trials" validate:"gte=1"`
	MarkovTime         float64 `mapstructure:"markov_time" validate:"gt=0"`
	VariableMarkovTime bool    `mapstructure:"variable_markov_time"`
}

// BootstrapConfig is forwarded to the bootstrap generator.
type BootstrapConfig struct {
	NumBootstraps int   `mapstructure:"num_bootstraps" validate:"gte=0"`
	Seed          int64 `mapstructure:"seed"`
	Workers       int   `mapstructure:"workers" validate:"gte=0"`
}

// SigCluConfig selects the significance scheme.
type SigCluConfig struct {
	Scheme     string  `mapstructure:"scheme" validate:"oneof=STANDARD RECURSIVE NONE"`
	Thresh     float64 `mapstructure:"thresh" validate:"gt=0,lt=1"`
	Confidence float64 `mapstructure:"confidence" validate:"gt=0,lte=1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("binning.res", 1.0)

	v.SetDefault("infomap.seed", int64(0))
	v.SetDefault("infomap.num_trials", partition.DefaultNumTrials)
	v.SetDefault("infomap.markov_time", partition.DefaultMarkovTime)
	v.SetDefault("infomap.variable_markov_time", false)

	v.SetDefault("bootstrap.num_bootstraps", 100)
	v.SetDefault("bootstrap.seed", int64(0))
	v.SetDefault("bootstrap.workers", 0)

	v.SetDefault("sig_clu.scheme", metrics.SchemeStandard.String())
	v.SetDefault("sig_clu.thresh", sigclu.DefaultThresh)
	v.SetDefault("sig_clu.confidence", sigclu.DefaultConfidence)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Default returns the built-in defaults. It reads neither files nor the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}

	return cfg
}

// Load reads defaults, then the YAML file at path (skipped when path is
// empty), then NETSIG_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode: %w", err)
	}
	cfg.SigClu.Scheme = strings.ToUpper(strings.TrimSpace(cfg.SigClu.Scheme))
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field. The error wraps ErrInvalid and lists one
// readable message per failing field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	var e validator.FieldError
	for _, e = range verrs {
		msgs = append(msgs, formatFieldError(e))
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	field = strings.ToLower(field)

	switch e.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// PartitionOptions returns the partitioner options.
func (c *Config) PartitionOptions() partition.Options {
	opts := partition.DefaultOptions()
	opts.Seed = c.Infomap.Seed
	opts.NumTrials = c.Infomap.NumTrials
	opts.MarkovTime = c.Infomap.MarkovTime
	opts.VariableMarkovTime = c.Infomap.VariableMarkovTime

	return opts
}

// BootstrapOptions returns the bootstrap generator options.
func (c *Config) BootstrapOptions() bootstrap.Options {
	return bootstrap.Options{
		NumBootstraps: c.Bootstrap.NumBootstraps,
		Seed:          c.Bootstrap.Seed,
		Workers:       c.Bootstrap.Workers,
	}
}

// SigCluConfig returns the significance clusterer configuration.
//
// Errors:
//   - metrics.ErrUnknownScheme for a scheme outside NONE/STANDARD/RECURSIVE.
func (c *Config) SigCluConfig() (sigclu.Config, error) {
	s, err := metrics.ParseScheme(c.SigClu.Scheme)
	if err != nil {
		return sigclu.Config{}, err
	}

	return sigclu.Config{
		Scheme:     s,
		Thresh:     c.SigClu.Thresh,
		Confidence: c.SigClu.Confidence,
	}, nil
}

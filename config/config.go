// Package config loads analyzer settings from defaults, an optional config
// file, CHESS_ANALYZER_* environment variables and command line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/jacokyle01/critical-moves/apperrors"
)

// EnvPrefix is prepended to environment overrides, e.g.
// CHESS_ANALYZER_ANALYSIS_DEPTH.
const EnvPrefix = "CHESS_ANALYZER"

// Config holds every analyzer setting.
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Server   ServerConfig   `mapstructure:"server"`
}

// EngineConfig locates the UCI engine and its options.
type EngineConfig struct {
	Path    string            `mapstructure:"path"`
	Args    []string          `mapstructure:"args"`
	Options map[string]string `mapstructure:"options"` // UCI setoption values
}

// AnalysisConfig controls search depth and the critical move threshold.
type AnalysisConfig struct {
	Depth     int     `mapstructure:"depth"`
	Threshold float64 `mapstructure:"threshold"`
}

// OutputConfig selects where reports go and which are written.
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	HTML    bool   `mapstructure:"html"`
	Prompts bool   `mapstructure:"prompts"`
}

// LogConfig configures the log file and level.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// CacheConfig enables the evaluation cache when Dir is set.
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// ServerConfig is the report server listen address.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("engine.path", "stockfish")
	v.SetDefault("engine.args", []string{})
	v.SetDefault("engine.options", map[string]string{})
	v.SetDefault("analysis.depth", 15)
	v.SetDefault("analysis.threshold", 2.0)
	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.html", true)
	v.SetDefault("output.prompts", true)
	v.SetDefault("log.file", "chess_analyzer.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("cache.dir", "")
	v.SetDefault("server.addr", ":8080")
}

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgPath into v when set, then decodes and validates the
// result.
func Load(v *viper.Viper, cfgPath string) (*Config, error) {
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Engine.Path == "" {
		return fmt.Errorf("%w: engine path is empty", apperrors.ErrInvalidValue)
	}
	if c.Analysis.Depth <= 0 {
		return fmt.Errorf("%w: depth must be positive, got %d", apperrors.ErrInvalidValue, c.Analysis.Depth)
	}
	if c.Analysis.Threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative, got %g", apperrors.ErrInvalidValue, c.Analysis.Threshold)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %w", apperrors.ErrInvalidValue, err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/richard-senior/gcode2bmp/internal/logger"
	"github.com/richard-senior/gcode2bmp/pkg/canvas"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, eg GCODE2BMP_WIDTH
const EnvPrefix = "GCODE2BMP"

// ConfigName is the base name searched for when no config file is given
const ConfigName = "gcode2bmp"

// Config holds everything the command line tool needs
type Config struct {
	CanvasWidth  int    `mapstructure:"width"`
	CanvasHeight int    `mapstructure:"height"`
	OutputPath   string `mapstructure:"output"`
	SVGPath      string `mapstructure:"svg"`
	LogLevel     string `mapstructure:"log-level"`
	LogOutput    string `mapstructure:"log-output"`
	LogFile      string `mapstructure:"log-file"`
	ShowDateTime bool   `mapstructure:"show-datetime"`
	Verify       bool   `mapstructure:"verify"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CanvasWidth:  canvas.DefaultSize,
		CanvasHeight: canvas.DefaultSize,
		OutputPath:   "result.bmp",
		LogLevel:     "INFO",
		LogOutput:    "console",
		LogFile:      logger.DefaultLogFile,
	}
}

// Flags returns a flag set whose names match the config keys, ready to be
// bound by Load
func Flags(name string) *pflag.FlagSet {
	d := DefaultConfig()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (yaml, toml or json)")
	fs.StringP("input", "i", "", "G-code file to read (default stdin)")
	fs.IntP("width", "W", d.CanvasWidth, "canvas width in pixels")
	fs.IntP("height", "H", d.CanvasHeight, "canvas height in pixels")
	fs.StringP("output", "o", d.OutputPath, "bitmap output path")
	fs.String("svg", "", "also write the shapes as SVG to this path")
	fs.String("log-level", d.LogLevel, "DEBUG, INFO, WARN, ERROR or FATAL")
	fs.String("log-output", d.LogOutput, "console, file or both")
	fs.String("log-file", d.LogFile, "log file used when log-output includes file")
	fs.Bool("show-datetime", false, "prefix log lines with date and time")
	fs.Bool("verify", false, "read the bitmap back after writing it")
	return fs
}

// Load layers defaults, an optional config file, GCODE2BMP_* environment
// variables and finally any flags that were set on the command line.
// An empty configFile searches for gcode2bmp.* in the working directory and
// in the configs directory beside the executable; not finding one is fine.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("width", d.CanvasWidth)
	v.SetDefault("height", d.CanvasHeight)
	v.SetDefault("output", d.OutputPath)
	v.SetDefault("svg", d.SVGPath)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-output", d.LogOutput)
	v.SetDefault("log-file", d.LogFile)
	v.SetDefault("show-datetime", d.ShowDateTime)
	v.SetDefault("verify", d.Verify)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file %s", used)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late
func (c *Config) Validate() error {
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return errors.New("output path must not be empty")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.LogOutputType(); err != nil {
		return err
	}
	return nil
}

// LogOutputType maps LogOutput onto the type understood by
// logger.SetLogOutput
func (c *Config) LogOutputType() (rune, error) {
	switch strings.ToLower(c.LogOutput) {
	case "", "console":
		return 'c', nil
	case "file":
		return 'f', nil
	case "both":
		return 'b', nil
	}
	return 0, fmt.Errorf("invalid log output %q, use console, file or both", c.LogOutput)
}

// GetExecutableDir returns the directory containing the executable
func GetExecutableDir() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(executable), nil
}

// ConfigDir is the configs directory beside the executable, the second
// place Load looks for gcode2bmp.*
func ConfigDir() (string, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(execDir, "configs"), nil
}

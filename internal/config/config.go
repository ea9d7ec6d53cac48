package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/carstats/internal/parser"
	"github.com/KaramelBytes/carstats/internal/utils"
)

// Global configuration structure.
type Global struct {
	DataFile     string `mapstructure:"data_file" yaml:"data_file" validate:"required"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format" validate:"oneof=text markdown json yaml"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn warning error"`

	// Listing layout. Indices are 0-based positions after splitting a line.
	MinFields        int    `mapstructure:"min_fields" yaml:"min_fields" validate:"min=1"`
	YearColumn       int    `mapstructure:"year_column" yaml:"year_column" validate:"min=0"`
	EngineColumn     int    `mapstructure:"engine_column" yaml:"engine_column" validate:"min=0"`
	KilometersColumn int    `mapstructure:"kilometers_column" yaml:"kilometers_column" validate:"min=0"`
	PriceColumn      int    `mapstructure:"price_column" yaml:"price_column" validate:"min=0"`
	Delimiter        string `mapstructure:"delimiter" yaml:"delimiter" validate:"required"`
}

// Schema returns the listing layout described by the configuration.
func (c *Global) Schema() parser.Schema {
	return parser.Schema{
		Year:       c.YearColumn,
		Engine:     c.EngineColumn,
		Kilometers: c.KilometersColumn,
		Price:      c.PriceColumn,
		MinFields:  c.MinFields,
		Delimiter:  c.Delimiter,
	}
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	s := parser.DefaultSchema()
	return &Global{
		DataFile:         "./Egypt-Used-Car-Price.csv",
		OutputFormat:     "text",
		LogLevel:         "info",
		MinFields:        s.MinFields,
		YearColumn:       s.Year,
		EngineColumn:     s.Engine,
		KilometersColumn: s.Kilometers,
		PriceColumn:      s.Price,
		Delimiter:        s.Delimiter,
	}
}

var validate = validator.New()

// Validate checks field constraints and that the schema is consistent.
func (c *Global) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Schema().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Dir returns ~/.carstats.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".carstats"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.carstats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CARSTATS")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("data_file", d.DataFile)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("min_fields", d.MinFields)
	v.SetDefault("year_column", d.YearColumn)
	v.SetDefault("engine_column", d.EngineColumn)
	v.SetDefault("kilometers_column", d.KilometersColumn)
	v.SetDefault("price_column", d.PriceColumn)
	v.SetDefault("delimiter", d.Delimiter)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// a missing file is fine; config set creates it
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

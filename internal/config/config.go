// Package config defines the engine's file-based configuration and the
// loaders for project and program records, used by the CLI and the JSON API.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/aundre1/incentedge/internal/engine"
	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/datetime"
)

// Configuration holds all file-level settings for the incentive engine.
type Configuration struct {
	Engine  EngineSettings `mapstructure:"engine"`
	Logging LoggingConfig  `mapstructure:"logging,omitempty"`
	Output  OutputConfig   `mapstructure:"output,omitempty"`
	Server  ServerConfig   `mapstructure:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level,omitempty"`       // debug, info, warn, error
	Format     string `mapstructure:"format,omitempty"`      // json, console
	OutputFile string `mapstructure:"output_file,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format,omitempty"` // pretty, csv, json
}

// ServerConfig holds JSON API settings.
type ServerConfig struct {
	Address             string `mapstructure:"address,omitempty"`
	MaxRequestSizeBytes int64  `mapstructure:"max_request_size_bytes,omitempty"`
}

// EngineSettings mirrors engine.Config with file-friendly types; dates are
// strings in the file and parsed on conversion.
type EngineSettings struct {
	IncludeInactive  bool    `mapstructure:"include_inactive"`
	MinScore         float64 `mapstructure:"min_score"`
	MaxResults       int     `mapstructure:"max_results"`
	IncludeBreakdown *bool   `mapstructure:"include_breakdown"`
	AnalyzeStacking  *bool   `mapstructure:"analyze_stacking"`
	EvaluationDate   string  `mapstructure:"evaluation_date"`
}

// ToEngineConfig converts the file settings into an engine configuration.
// An explicit evaluation date pins the run for reproducibility.
func (s EngineSettings) ToEngineConfig() (engine.Config, error) {
	cfg := engine.Config{
		IncludeInactive:  s.IncludeInactive,
		MinScore:         s.MinScore,
		MaxResults:       s.MaxResults,
		IncludeBreakdown: s.IncludeBreakdown,
		AnalyzeStacking:  s.AnalyzeStacking,
	}
	if s.EvaluationDate != "" {
		date, ok := datetime.Parse(s.EvaluationDate)
		if !ok {
			return cfg, fmt.Errorf("unparseable evaluation_date %q", s.EvaluationDate)
		}
		cfg.EvaluationDate = date
	}
	return cfg, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.Server.Address == "" {
		configuration.Server.Address = constants.DefaultServerAddress
	}
	if configuration.Server.MaxRequestSizeBytes <= 0 {
		configuration.Server.MaxRequestSizeBytes = constants.DefaultMaxRequestSizeBytes
	}

	return &configuration, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/arffkit/internal/analysis"
	"github.com/KaramelBytes/arffkit/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	IDAttribute       string   `mapstructure:"id_attribute" yaml:"id_attribute"`
	ClassAttribute    string   `mapstructure:"class_attribute" yaml:"class_attribute"`
	PositiveLabel     string   `mapstructure:"positive_label" yaml:"positive_label"`
	NegativeLabel     string   `mapstructure:"negative_label" yaml:"negative_label"`
	MissingToken      string   `mapstructure:"missing_token" yaml:"missing_token"`
	TrackedAttributes []string `mapstructure:"tracked_attributes" yaml:"tracked_attributes"`
	// last|first: which non-missing value wins when duplicates disagree
	Consolidate string `mapstructure:"consolidate" yaml:"consolidate"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// AnalysisOptions converts the config into analysis options.
func (c *Global) AnalysisOptions() (analysis.Options, error) {
	pol, err := analysis.ParsePolicy(c.Consolidate)
	if err != nil {
		return analysis.Options{}, err
	}
	opt := analysis.DefaultOptions()
	if c.IDAttribute != "" {
		opt.IDField = c.IDAttribute
	}
	if c.ClassAttribute != "" {
		opt.ClassField = c.ClassAttribute
	}
	if c.PositiveLabel != "" {
		opt.PositiveLabel = c.PositiveLabel
	}
	if c.NegativeLabel != "" {
		opt.NegativeLabel = c.NegativeLabel
	}
	if c.MissingToken != "" {
		opt.MissingToken = c.MissingToken
	}
	if len(c.TrackedAttributes) > 0 {
		opt.Tracked = append([]string(nil), c.TrackedAttributes...)
	}
	opt.Consolidate = pol
	return opt, nil
}

// Path returns cfgFile, or ~/.arffkit/config.yaml when cfgFile is empty.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".arffkit", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.arffkit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("ARFFKIT")
	v.AutomaticEnv()

	def := analysis.DefaultOptions()
	v.SetDefault("id_attribute", def.IDField)
	v.SetDefault("class_attribute", def.ClassField)
	v.SetDefault("positive_label", def.PositiveLabel)
	v.SetDefault("negative_label", def.NegativeLabel)
	v.SetDefault("missing_token", def.MissingToken)
	v.SetDefault("tracked_attributes", def.Tracked)
	v.SetDefault("consolidate", string(def.Consolidate))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".arffkit"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

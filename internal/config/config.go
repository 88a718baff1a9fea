// Package config loads blockforge settings from defaults, an optional config
// file, BLOCKFORGE_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrsinham/blockforge/internal/logging"
)

// EnvPrefix prefixes every environment variable, e.g. BLOCKFORGE_FORGE_API_KEY.
const EnvPrefix = "BLOCKFORGE"

// Config is the full application configuration.
type Config struct {
	Log    logging.Config `mapstructure:"log" yaml:"log"`
	Output Output         `mapstructure:"output" yaml:"output"`
	Forge  Forge          `mapstructure:"forge" yaml:"forge"`
}

// Output configures local texture generation.
type Output struct {
	Dir          string `mapstructure:"dir" yaml:"dir"`
	Seed         int64  `mapstructure:"seed" yaml:"seed"`
	Workers      int    `mapstructure:"workers" yaml:"workers"`
	Formats      string `mapstructure:"formats" yaml:"formats"`
	PreviewScale int    `mapstructure:"preview_scale" yaml:"preview_scale"`
	ContactSheet bool   `mapstructure:"contact_sheet" yaml:"contact_sheet"`
	Atlas        bool   `mapstructure:"atlas" yaml:"atlas"`
}

// Forge configures the batch image-generation client.
type Forge struct {
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint"`
	Model     string        `mapstructure:"model" yaml:"model"`
	MaxTokens int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	APIKey    string        `mapstructure:"api_key" yaml:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Delay     time.Duration `mapstructure:"delay" yaml:"delay"`
	Prompts   string        `mapstructure:"prompts" yaml:"prompts"`
}

var defaults = map[string]any{
	"log.level":            "info",
	"log.file":             "",
	"log.json":             false,
	"output.dir":           "textures",
	"output.seed":          0,
	"output.workers":       0,
	"output.formats":       "png",
	"output.preview_scale": 0,
	"output.contact_sheet": false,
	"output.atlas":         false,
	"forge.endpoint":       "http://localhost:8080/v1/messages",
	"forge.model":          "gemini-3-pro-image",
	"forge.max_tokens":     8096,
	"forge.api_key":        "test",
	"forge.timeout":        "120s",
	"forge.delay":          "1s",
	"forge.prompts":        "prompts.toml",
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":     "log.level",
	"log-file":      "log.file",
	"log-json":      "log.json",
	"output":        "output.dir",
	"seed":          "output.seed",
	"workers":       "output.workers",
	"format":        "output.formats",
	"preview-scale": "output.preview_scale",
	"contact-sheet": "output.contact_sheet",
	"atlas":         "output.atlas",
	"endpoint":      "forge.endpoint",
	"model":         "forge.model",
	"max-tokens":    "forge.max_tokens",
	"api-key":       "forge.api_key",
	"timeout":       "forge.timeout",
	"delay":         "forge.delay",
	"prompts":       "forge.prompts",
}

// Meta reports how the configuration was assembled.
type Meta struct {
	FileNotFound bool
	DotEnvUsed   bool
}

// LoadDotEnv loads ./.env into the process environment when it exists.
func LoadDotEnv() (bool, error) {
	if _, err := os.Stat(".env"); err != nil {
		return false, nil
	}
	if err := godotenv.Load(); err != nil {
		return false, fmt.Errorf("error loading .env file: %w", err)
	}
	return true, nil
}

// GetConfig builds the configuration. Flags of cmd that are known
// configuration flags are bound, so an explicitly set flag wins over the
// environment and the config file. configFile may be empty.
func GetConfig(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for flag, key := range flagKeys {
			if f := cmd.Flags().Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	meta := Meta{}
	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			var configFileNotFoundError *os.PathError
			if errors.As(err, &configFileNotFoundError) {
				meta.FileNotFound = true
			} else {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	conf := Config{}
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, Meta{}, err
	}
	return conf, meta, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Output.Workers < 0 {
		return fmt.Errorf("output.workers must be >= 0, got %d", c.Output.Workers)
	}
	if c.Output.PreviewScale < 0 {
		return fmt.Errorf("output.preview_scale must be >= 0, got %d", c.Output.PreviewScale)
	}
	if c.Forge.MaxTokens <= 0 {
		return fmt.Errorf("forge.max_tokens must be > 0, got %d", c.Forge.MaxTokens)
	}
	if c.Forge.Timeout <= 0 {
		return fmt.Errorf("forge.timeout must be > 0, got %s", c.Forge.Timeout)
	}
	if c.Forge.Delay < 0 {
		return fmt.Errorf("forge.delay must be >= 0, got %s", c.Forge.Delay)
	}
	return nil
}

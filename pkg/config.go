package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/titanous/json5"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
)

// Config is loaded once at process start and handed to the runner.
// Environment values win over the optional CONFIG_FILE.
type Config struct {
	Username string        `envconfig:"GH_USERNAME" json:"username"`
	Token    string        `envconfig:"GH_TOKEN" json:"token"`
	GistID   string        `envconfig:"GIST_ID" json:"gistId"`
	Style    string        `envconfig:"REPORT_STYLE" json:"style"`
	LogLevel string        `envconfig:"LOG_LEVEL" json:"logLevel"`
	Timeout  time.Duration `envconfig:"HTTP_TIMEOUT" json:"-"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileCfg, err := ReadConfigFile(path)
		if err != nil {
			return nil, &ConfigurationError{Reason: errors.Wrapf(err, "read %s", path).Error()}
		}
		cfg = &fileCfg
	}

	var envCfg Config
	err := envconfig.Process("", &envCfg)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	err = mergo.Merge(cfg, envCfg, mergo.WithOverride)
	if err != nil {
		return nil, errors.Wrap(err, "merge environment over config file")
	}

	if cfg.Style == "" {
		cfg.Style = StyleBar
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// Validate reports every required value that is absent or blank.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "GH_USERNAME")
	}
	if strings.TrimSpace(c.Token) == "" {
		missing = append(missing, "GH_TOKEN")
	}
	if strings.TrimSpace(c.GistID) == "" {
		missing = append(missing, "GIST_ID")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	_, err := LookupStyle(c.Style)
	return err
}

func (c *Config) Credentials() Credentials {
	return Credentials{Username: c.Username, Token: c.Token}
}

// ReadConfigFile reads a JSON5 config file and merges <name>.local.<ext> over it when present.
func ReadConfigFile(name string) (Config, error) {
	var out Config
	allNotFound := true

	defaultFile, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(defaultFile) > 0 {
		err = json5.Unmarshal(defaultFile, &out)
		if err != nil {
			return out, err
		}
		allNotFound = false
	}

	ext := filepath.Ext(name)
	localPath := strings.TrimSuffix(name, ext) + ".local" + ext
	localFile, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(localFile) > 0 {
		var override Config
		err = json5.Unmarshal(localFile, &override)
		if err != nil {
			return out, err
		}
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		log.Debug().Str("local", localPath).Msg("Merging config with local overrides")
		allNotFound = false
	}

	if allNotFound {
		return out, os.ErrNotExist
	}
	return out, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"labelsync/constants"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Hosts []Host `yaml:"hosts"`
}

func (config *Config) massageConfig() error {
	for i := range config.Hosts {
		err := (&config.Hosts[i]).massageConfig(i)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to parse host %d config", i)
			return err
		}
	}

	return nil
}

// Host returns the host called name, or the first host when name is empty.
func (config *Config) Host(name string) (*Host, error) {
	if len(config.Hosts) == 0 {
		return nil, errors.New("no hosts configured")
	}

	if name == "" {
		return &config.Hosts[0], nil
	}

	for i := range config.Hosts {
		if config.Hosts[i].Name == name {
			return &config.Hosts[i], nil
		}
	}

	return nil, fmt.Errorf("unknown host: %s", name)
}

type Host struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	BaseUrl string `yaml:"base"`
	Token   string `yaml:"token"`
}

func readEnvVar(logger zerolog.Logger, val *string) error {
	if strings.HasPrefix(*val, "$") {
		name := strings.TrimPrefix(*val, "$")
		value, exists := os.LookupEnv(name)
		if exists {
			logger.Debug().Msgf("Looked up value from %s", *val)
			*val = value
		} else {
			return fmt.Errorf("missing environment variable %s", *val)
		}
	}

	return nil
}

func (host *Host) massageConfig(i int) error {
	logger := log.With().Int("host", i).Logger()

	if host.Type == "" {
		return errors.New("missing host type")
	}

	if host.Type != constants.HOST_GITHUB && host.Type != constants.HOST_GITEA {
		return fmt.Errorf("invalid host type: %s", host.Type)
	}

	err := readEnvVar(logger, &host.BaseUrl)
	if err != nil {
		return err
	}

	if host.Type == constants.HOST_GITHUB {
		if host.BaseUrl == "" {
			host.BaseUrl = constants.GITHUB_URL
		}
	} else if host.Type == constants.HOST_GITEA {
		if host.BaseUrl == "" {
			return errors.New("a base url is required for a gitea host")
		}
	}

	if host.Name == "" {
		logger.Info().Msgf("Defaulted name to type (%s)", host.Type)
		host.Name = host.Type
	}

	// The token may stay empty: read-only commands work anonymously.
	return readEnvVar(logger, &host.Token)
}

// Default is used when no configuration file exists: a single GitHub host
// authenticated through GITHUB_ACCESS_TOKEN when it is set.
func Default() *Config {
	return &Config{
		Hosts: []Host{{
			Name:    constants.HOST_GITHUB,
			Type:    constants.HOST_GITHUB,
			BaseUrl: constants.GITHUB_URL,
			Token:   os.Getenv(constants.TOKEN_ENV),
		}},
	}
}

func Parse(raw []byte) (*Config, error) {
	var config Config
	err := yaml.Unmarshal(raw, &config)
	if err != nil {
		return nil, err
	}

	err = config.massageConfig()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfig reads the configuration at path, falling back to Default
// when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("No configuration file, using the default GitHub host")
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	return Parse(raw)
}

package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const defaultPollIntervalInSeconds = 30

// ServerConfig identifies one monitored server. Its stats blobs are expected
// under the "<ID>/" prefix in the configured container.
type ServerConfig struct {
	ID string `toml:"ID"`
}

// Config maps to the config.toml file for the exporter
type Config struct {
	ListenAddress         string         `toml:"ListenAddress"`
	PollIntervalInSeconds uint32         `toml:"PollIntervalInSeconds"`
	StorageAccount        string         `toml:"StorageAccount"`
	ContainerName         string         `toml:"ContainerName"`
	Servers               []ServerConfig `toml:"Servers"`
}

// LoadConfig parses a TOML file into the Config struct and validates it.
// Any validation failure here is fatal at startup.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if cfg.PollIntervalInSeconds == 0 {
		cfg.PollIntervalInSeconds = defaultPollIntervalInSeconds
	}

	err = cfg.validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	if len(cfg.ListenAddress) == 0 {
		return errEmptyListenAddress
	}
	if len(cfg.StorageAccount) == 0 {
		return errEmptyStorageAccount
	}
	if len(cfg.ContainerName) == 0 {
		return errEmptyContainerName
	}
	if len(cfg.Servers) == 0 {
		return errNoServers
	}
	for _, srv := range cfg.Servers {
		if len(srv.ID) == 0 {
			return errEmptyServerID
		}
	}

	return nil
}

// ServerIDs returns the IDs of all configured servers
func (cfg *Config) ServerIDs() []string {
	ids := make([]string, 0, len(cfg.Servers))
	for _, srv := range cfg.Servers {
		ids = append(ids, srv.ID)
	}

	return ids
}

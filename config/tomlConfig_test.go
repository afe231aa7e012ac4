package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	testString := `
ListenAddress = ":9101"
PollIntervalInSeconds = 30
StorageAccount = "xraystats"
ContainerName = "xray-stats"

[[Servers]]
    ID = "sg01"

[[Servers]]
    ID = "de02"
`

	expectedCfg := Config{
		ListenAddress:         ":9101",
		PollIntervalInSeconds: 30,
		StorageAccount:        "xraystats",
		ContainerName:         "xray-stats",
		Servers: []ServerConfig{
			{
				ID: "sg01",
			},
			{
				ID: "de02",
			},
		},
	}

	cfg := Config{}

	err := toml.Unmarshal([]byte(testString), &cfg)
	assert.Nil(t, err)
	assert.Equal(t, expectedCfg, cfg)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, contents string) string {
		path := filepath.Join(t.TempDir(), "config.toml")
		err := os.WriteFile(path, []byte(contents), 0644)
		require.NoError(t, err)

		return path
	}

	validContents := `
ListenAddress = ":9101"
StorageAccount = "xraystats"
ContainerName = "xray-stats"

[[Servers]]
    ID = "sg01"
`

	t.Run("missing file should error", func(t *testing.T) {
		cfg, err := LoadConfig("not-an-existing-file.toml")

		assert.Nil(t, cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
	t.Run("invalid toml should error", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "not a toml {{"))

		assert.Nil(t, cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode config file")
	})
	t.Run("missing poll interval should use the default", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, validContents))

		assert.Nil(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, uint32(defaultPollIntervalInSeconds), cfg.PollIntervalInSeconds)
	})
	t.Run("empty listen address should error", func(t *testing.T) {
		contents := `
StorageAccount = "xraystats"
ContainerName = "xray-stats"

[[Servers]]
    ID = "sg01"
`
		cfg, err := LoadConfig(writeConfig(t, contents))

		assert.Nil(t, cfg)
		assert.Equal(t, errEmptyListenAddress, err)
	})
	t.Run("empty storage account should error", func(t *testing.T) {
		contents := `
ListenAddress = ":9101"
ContainerName = "xray-stats"

[[Servers]]
    ID = "sg01"
`
		cfg, err := LoadConfig(writeConfig(t, contents))

		assert.Nil(t, cfg)
		assert.Equal(t, errEmptyStorageAccount, err)
	})
	t.Run("empty container name should error", func(t *testing.T) {
		contents := `
ListenAddress = ":9101"
StorageAccount = "xraystats"

[[Servers]]
    ID = "sg01"
`
		cfg, err := LoadConfig(writeConfig(t, contents))

		assert.Nil(t, cfg)
		assert.Equal(t, errEmptyContainerName, err)
	})
	t.Run("no servers should error", func(t *testing.T) {
		contents := `
ListenAddress = ":9101"
StorageAccount = "xraystats"
ContainerName = "xray-stats"
`
		cfg, err := LoadConfig(writeConfig(t, contents))

		assert.Nil(t, cfg)
		assert.Equal(t, errNoServers, err)
	})
	t.Run("empty server ID should error", func(t *testing.T) {
		contents := `
ListenAddress = ":9101"
StorageAccount = "xraystats"
ContainerName = "xray-stats"

[[Servers]]
    ID = ""
`
		cfg, err := LoadConfig(writeConfig(t, contents))

		assert.Nil(t, cfg)
		assert.Equal(t, errEmptyServerID, err)
	})
	t.Run("should work", func(t *testing.T) {
		contents := validContents + `
PollIntervalInSeconds = 10
`
		cfg, err := LoadConfig(writeConfig(t, contents))

		assert.Nil(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, uint32(10), cfg.PollIntervalInSeconds)
		assert.Equal(t, []string{"sg01"}, cfg.ServerIDs())
	})
}

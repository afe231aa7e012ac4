package config

import "errors"

var (
	errEmptyListenAddress  = errors.New("empty ListenAddress in configuration")
	errEmptyStorageAccount = errors.New("empty StorageAccount in configuration")
	errEmptyContainerName  = errors.New("empty ContainerName in configuration")
	errNoServers           = errors.New("no servers defined in configuration")
	errEmptyServerID       = errors.New("empty server ID in configuration")
)

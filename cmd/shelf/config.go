// Config loading for the shelf CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "SHELF"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyPostgresDSN = "postgres.dsn"
	cfgKeyUniqueISBN  = "catalog.unique_isbn"
	cfgKeyLogLevel    = "log_level"
	cfgKeyServeAddr   = "serve.addr"

	defaultBackend   = types.BackendSQLite
	defaultLogLevel  = "warn"
	defaultServeAddr = ":8888"
)

// fileConfig is the shape of config.yaml. It is used to write the default
// file; reads go through viper so env overrides apply.
type fileConfig struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level"`
	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`
	Catalog struct {
		UniqueISBN bool `yaml:"unique_isbn"`
	} `yaml:"catalog"`
	Serve struct {
		Addr string `yaml:"addr"`
	} `yaml:"serve"`
}

const configHeader = `# shelf configuration
# backend: sqlite | files | postgres
# Every key can be overridden by a SHELF_ environment variable,
# e.g. SHELF_BACKEND or SHELF_POSTGRES_DSN.
`

// defaultConfigYAML renders the config.yaml written on first run.
func defaultConfigYAML() ([]byte, error) {
	var fc fileConfig
	fc.Backend = defaultBackend
	fc.LogLevel = defaultLogLevel
	fc.Serve.Addr = defaultServeAddr

	body, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, err
	}
	return append([]byte(configHeader), body...), nil
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. A missing file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyServeAddr, defaultServeAddr)
	v.SetDefault(cfgKeyUniqueISBN, false)
	v.SetDefault(cfgKeyPostgresDSN, "")
	v.SetDefault(cfgKeyDataDir, "")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes a default config.yaml unless one exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := defaultConfigYAML()
	if err != nil {
		return fmt.Errorf("render default config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// storeConfig builds the backend configuration from flags and config.
func storeConfig() (types.Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend:     cfg.GetString(cfgKeyBackend),
		DataDir:     dataDir,
		PostgresDSN: cfg.GetString(cfgKeyPostgresDSN),
	}, nil
}

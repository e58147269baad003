// Package conf loads the daemon's configuration: a YAML file read with
// viper, overridable by environment variables, with command-line flags
// (see flag.go) taking precedence over both.
package conf

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// AppConf is the process-wide configuration, populated by InitConfig
// before anything else (the backing store, the cache stack, logging)
// is constructed.
var AppConf *Configuration

// Configuration holds everything the daemon needs to open its backing
// store and start a cache stack. It intentionally does not carry P2P,
// RPC, or wallet settings: those subsystems are out of scope here.
type Configuration struct {
	DataDir    string   `mapstructure:"datadir"`
	DBCacheMiB int      `mapstructure:"dbcache"`
	LogLevel   string   `mapstructure:"loglevel"`
	LogModule  []string `mapstructure:"logmodule"`
}

func defaults() *Configuration {
	return &Configuration{
		DataDir:    "./data",
		DBCacheMiB: 450,
		LogLevel:   "info",
		LogModule:  []string{"utxo", "persist"},
	}
}

// InitConfig reads configFile (if non-empty) with viper, applies
// CITADELD_-prefixed environment overrides, and falls back to sane
// defaults for anything unset. It is safe to call more than once; each
// call replaces AppConf.
func InitConfig(configFile string) (*Configuration, error) {
	cfg := defaults()

	v := viper.New()
	v.SetEnvPrefix("CITADELD")
	v.AutomaticEnv()
	v.SetDefault("datadir", cfg.DataDir)
	v.SetDefault("dbcache", cfg.DBCacheMiB)
	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("logmodule", cfg.LogModule)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.DataDir = filepath.Clean(cfg.DataDir)

	AppConf = cfg
	return cfg, nil
}

// GetDataPath returns the directory logs and the backing store are
// rooted under.
func GetDataPath() string {
	if AppConf == nil {
		return defaults().DataDir
	}
	return AppConf.DataDir
}

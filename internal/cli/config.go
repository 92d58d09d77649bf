package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/flowkit/flowkit/pkg/cache"
	"github.com/flowkit/flowkit/pkg/store"
)

// Config holds CLI and server settings, loaded from a TOML file.
//
// Example:
//
//	[cache]
//	backend = "file"   # file, redis, none
//
//	[redis]
//	addr = "localhost:6379"
//
//	[store]
//	backend = "memory" # memory, mongo
//	uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8484"
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // file, redis, none
	Dir     string `toml:"dir"`     // file backend directory
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects the graph store backend for serve.
type StoreConfig struct {
	Backend  string `toml:"backend"` // memory, mongo
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ServerConfig holds the HTTP listen settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file"},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Store:  StoreConfig{Backend: "memory", URI: "mongodb://localhost:27017"},
		Server: ServerConfig{Addr: ":8484"},
	}
}

// defaultConfigPath returns ~/.config/flowkit/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "flowkit", "config.toml"), nil
}

// loadConfig reads the TOML config at path. An empty path uses the
// default location; a missing file at the default location is not an
// error and yields defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// cacheDir returns the artifact cache directory, creating the default
// under the user cache dir when unconfigured.
func cacheDir(cfg Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "flowkit"), nil
}

// openCache creates the configured cache backend. noCache forces the
// null backend regardless of configuration.
func openCache(ctx context.Context, cfg Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "", "file":
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// openStore creates the configured graph store backend.
func openStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.URI,
			Database: cfg.Store.Database,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend         string `json:"backend" toml:"backend" yaml:"backend" env:"BACKEND"`
	Dir             string `json:"dir,omitempty" toml:"dir" yaml:"dir" env:"DIR"`
	RedisAddr       string `json:"redis_addr,omitempty" toml:"redis_addr" yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword   string `json:"-" toml:"redis_password" yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB         int    `json:"redis_db,omitempty" toml:"redis_db" yaml:"redis_db" env:"REDIS_DB"`
	MongoURI        string `json:"-" toml:"mongo_uri" yaml:"mongo_uri" env:"MONGO_URI"`
	MongoDatabase   string `json:"mongo_database,omitempty" toml:"mongo_database" yaml:"mongo_database" env:"MONGO_DATABASE"`
	MongoCollection string `json:"mongo_collection,omitempty" toml:"mongo_collection" yaml:"mongo_collection" env:"MONGO_COLLECTION"`
}

// Open constructs the backend named by opts.Backend. An empty name means
// file if a directory is set and none otherwise.
func Open(ctx context.Context, opts Options) (Cache, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendNone
		if opts.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: dir is required")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		addr := opts.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		c, err := NewRedisCache(ctx, addr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		uri, db, coll := opts.MongoURI, opts.MongoDatabase, opts.MongoCollection
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		if db == "" {
			db = "lifeline"
		}
		if coll == "" {
			coll = "cache"
		}
		c, err := NewMongoCache(ctx, uri, db, coll)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

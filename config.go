package stockroom

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds configuration for the storage manager.
type Config struct {
	// SQLitePath is the embedded database file. ":memory:" is allowed.
	SQLitePath string `env:"STOCKROOM_SQLITE_PATH,default=stockroom.db" json:"sqlite_path"`

	// MongoURI is the document backend connection string.
	MongoURI string `env:"STOCKROOM_MONGO_URI,default=mongodb://localhost:27017" json:"mongo_uri"`

	// MongoDatabase is the document backend database name.
	MongoDatabase string `env:"STOCKROOM_MONGO_DB,default=stockroom" json:"mongo_database"`

	// AuthPath is the directory holding the auth credential store.
	AuthPath string `env:"STOCKROOM_AUTH_PATH,default=stockroom-auth" json:"auth_path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SQLitePath:    "stockroom.db",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "stockroom",
		AuthPath:      "stockroom-auth",
	}
}

// FromEnv builds a Config from STOCKROOM_* environment variables.
func FromEnv() (Config, error) {
	var c Config
	if err := envdecode.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("stockroom: decode config: %w", err)
	}
	return c, nil
}

package buildCFG

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
)

type ServerConfig struct {
	Port string
}

type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

type StorageConfig struct {
	URL    string
	Key    string
	Bucket string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) *ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}
	return &ServerConfig{Port: port}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	host := cfg.GetString("db.host")
	port := cfg.GetString("db.port")
	user := cfg.GetString("db.user")
	password := cfg.GetString("db.password")
	name := cfg.GetString("db.name")
	if host == "" || port == "" || user == "" || name == "" {
		return "", nil, nil, fmt.Errorf("incomplete db config: host, port, user and name are required")
	}

	masterDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name)

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.GetInt("db.max_open_conns"),
		MaxIdleConns:    cfg.GetInt("db.max_idle_conns"),
		ConnMaxLifetime: time.Duration(cfg.GetInt("db.conn_max_lifetime_seconds")) * time.Second,
	}

	log.Info().Str("host", host).Str("db", name).Msg("database config built")
	return masterDSN, nil, opts, nil
}

func BuildAuthConfig(cfg *config.Config, log *zerolog.Logger) (*AuthConfig, error) {
	secret := cfg.GetString("auth.jwt_secret")
	if secret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}

	ttlHours := cfg.GetInt("auth.session_ttl_hours")
	if ttlHours <= 0 {
		ttlHours = 24
		log.Warn().Msg("auth.session_ttl_hours not set, defaulting to 24h")
	}

	return &AuthConfig{
		JWTSecret:  secret,
		SessionTTL: time.Duration(ttlHours) * time.Hour,
	}, nil
}

// BuildStorageConfig returns nil when object storage is not configured; the
// attachment endpoint reports storage as unavailable in that case.
func BuildStorageConfig(cfg *config.Config, log *zerolog.Logger) *StorageConfig {
	url := cfg.GetString("storage.url")
	key := cfg.GetString("storage.key")
	bucket := cfg.GetString("storage.bucket")
	if url == "" || key == "" || bucket == "" {
		log.Warn().Msg("object storage not configured, attachments disabled")
		return nil
	}
	return &StorageConfig{URL: url, Key: key, Bucket: bucket}
}

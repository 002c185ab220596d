package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-supplied settings for the gateway.
// SupabaseURL and SupabaseAnonKey are both optional: when either is
// missing the remote data service is disabled and every data access
// falls back to the in-memory dataset.
type Config struct {
	ServerPort      string
	SupabaseURL     string
	SupabaseAnonKey string
}

// Load reads configuration from a .env file (if present) and the
// process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:      os.Getenv("SERVER_PORT"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	return cfg
}

// RemoteEnabled reports whether the Supabase data service is configured.
func (c *Config) RemoteEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

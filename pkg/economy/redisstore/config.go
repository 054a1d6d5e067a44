package redisstore

// Config holds Redis connection settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string `yaml:"url"`

	// Pool settings
	PoolSize     int `yaml:"poolSize"`
	MinIdleConns int `yaml:"minIdleConns"`

	// KeyPrefix namespaces every key, so several deployments can share a server
	KeyPrefix string `yaml:"keyPrefix"`
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 2,
		KeyPrefix:    "vpoker",
	}
}

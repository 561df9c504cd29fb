package redisstore

// Config contains configuration variables for the Redis backend.
type Config struct {
	Addr     string `json:"addr" yaml:"addr" env:"REDIS_ADDR"`
	Password string `json:"password" yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `json:"db" yaml:"db" env:"REDIS_DB"`

	// KeyPrefix namespaces every key written by the Store.
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix" env:"REDIS_KEY_PREFIX"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		Addr:      "localhost:6379",
		DB:        0,
		KeyPrefix: "series",
	}
}

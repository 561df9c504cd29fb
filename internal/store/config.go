package store

const (
	// DriverMongo selects the MongoDB backend.
	DriverMongo = "mongo"

	// DriverRedis selects the Redis backend.
	DriverRedis = "redis"
)

// Config selects the storage backend.
type Config struct {
	Driver string `json:"driver" yaml:"driver" env:"STORE_DRIVER"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		Driver: DriverMongo,
	}
}

package mongostore

import "time"

// Config contains configuration variables for the MongoDB backend.
type Config struct {
	// URL is the MongoDB connection string.
	URL string `json:"url" yaml:"url" env:"MONGODB_URL"`

	// Database is the name of the database holding the watch-lists.
	Database string `json:"database" yaml:"database" env:"MONGODB_DATABASE"`

	// Collection is the name of the collection holding one document per user.
	Collection string `json:"collection" yaml:"collection" env:"MONGODB_COLLECTION"`

	// ConnectTimeout bounds connecting, pinging and index creation on startup.
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout" env:"MONGODB_CONNECT_TIMEOUT"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		URL:            "mongodb://localhost:27017",
		Database:       "SofiWisher",
		Collection:     "series",
		ConnectTimeout: 10 * time.Second,
	}
}

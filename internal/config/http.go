package config

import "time"

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	// WriteTimeout must leave room for a completion round trip.
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"45s"`

	CORSOrigins []string `env:"HTTP_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// ChatRateLimit is the number of chat searches allowed per client IP per minute.
	ChatRateLimit int `env:"HTTP_CHAT_RATE_LIMIT" envDefault:"30"`
}

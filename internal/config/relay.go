package config

import "time"

// Relay configures the buffered hand-off of search events to Kafka.
type Relay struct {
	Interval  time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`
	BatchSize int           `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	QueueSize int           `env:"RELAY_QUEUE_SIZE" envDefault:"1024"`
}

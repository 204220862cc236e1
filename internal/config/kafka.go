package config

type Kafka struct {
	// Addresses is empty when the search analytics stream is disabled.
	Addresses []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	Group     string   `env:"KAFKA_GROUP" envDefault:"catalog-search"`
	Topic     string   `env:"KAFKA_SEARCH_TOPIC" envDefault:"catalog.search.performed"`
}

// Enabled reports whether any broker is configured.
func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0
}

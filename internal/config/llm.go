package config

import "time"

type LLM struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	Temperature     float32 `env:"GEMINI_TEMPERATURE" envDefault:"1"`
	TopP            float32 `env:"GEMINI_TOP_P" envDefault:"0.95"`
	TopK            float32 `env:"GEMINI_TOP_K" envDefault:"64"`
	MaxOutputTokens int32   `env:"GEMINI_MAX_OUTPUT_TOKENS" envDefault:"8192"`

	Timeout time.Duration `env:"GEMINI_TIMEOUT" envDefault:"30s"`

	// MaxRetries is the number of extra attempts after a failed call.
	MaxRetries   uint64        `env:"GEMINI_MAX_RETRIES" envDefault:"0"`
	RetryBackoff time.Duration `env:"GEMINI_RETRY_BACKOFF" envDefault:"200ms"`
}

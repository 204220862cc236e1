package config

type Search struct {
	BrowseLimit int `env:"SEARCH_BROWSE_LIMIT" envDefault:"12"`
	ChatLimit   int `env:"SEARCH_CHAT_LIMIT" envDefault:"32"`
	// MaxLimit caps the page size a caller may request. 0 turns the cap off.
	MaxLimit int `env:"SEARCH_MAX_LIMIT" envDefault:"100"`
}

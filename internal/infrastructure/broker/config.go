package broker

type Config struct {
	Enabled    bool `yaml:"enabled"`
	URI        string
	StreamName string `yaml:"stream_name"`
	GroupName  string `yaml:"group_name"`
}

type PublisherConfig struct {
	Timeout int `yaml:"timeout_in_ms"`
	// MaxLen trims the stream to roughly this many entries. Zero keeps all.
	MaxLen int64 `yaml:"max_len"`
}

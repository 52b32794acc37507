package minio

type ClientConfig struct {
	Enabled   bool `yaml:"enabled"`
	AccessKey string
	SecretKey string
	Endpoint  string `yaml:"endpoint"`
	Secure    bool   `yaml:"secure"`
}

type UploaderConfig struct {
	Timeout int64  `yaml:"timeout_in_ms"`
	Bucket  string `yaml:"bucket"`
	// Address is the public base URL objects are served from. When empty the
	// MinIO endpoint is used.
	Address string `yaml:"address"`
}

type RemoverConfig struct {
	Timeout int64 `yaml:"timeout_in_ms"`
}

package config

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"uploadgate/internal/application/usecase"
	"uploadgate/internal/infrastructure/broker"
	"uploadgate/internal/infrastructure/database"
	"uploadgate/internal/infrastructure/disk"
	"uploadgate/internal/infrastructure/minio"
	"uploadgate/pkg/logger"
)

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                 `yaml:"environment"`
	Server          ServerConfig           `yaml:"server"`
	Auth            AuthConfig             `yaml:"auth"`
	Upload          usecase.UploaderConfig `yaml:"upload"`
	Storage         disk.Config            `yaml:"storage"`
	MinIOClient     minio.ClientConfig     `yaml:"minio_client"`
	MinIOUploader   minio.UploaderConfig   `yaml:"minio_uploader"`
	MinIORemover    minio.RemoverConfig    `yaml:"minio_remover"`
	DBConfig        database.Config        `yaml:"db_config"`
	BrokerConfig    broker.Config          `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig `yaml:"publisher_config"`
	Logger          logger.Config          `yaml:"logger"`
}

type ServerConfig struct {
	Address     string `yaml:"address"`
	UploadPath  string `yaml:"upload_path"`
	WriteMethod string `yaml:"write_method"`
	// BodyLimit is passed to echo's BodyLimit middleware, e.g. "50M".
	BodyLimit string `yaml:"body_limit"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	setFromEnv(&config.MinIOClient.AccessKey, "MINIO_ROOT_USER")
	setFromEnv(&config.MinIOClient.SecretKey, "MINIO_ROOT_PASSWORD")
	setFromEnv(&config.DBConfig.URI, "DATABASE_URI")
	setFromEnv(&config.BrokerConfig.URI, "BROKER_URI")
	setFromEnv(&config.Storage.Dir, "UPLOAD_DIR")

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	if c.Storage.Dir == "" {
		return errors.New("storage.dir is required")
	}

	if c.Upload.MaxBodySize < 0 {
		return errors.New("upload.max_body_size must not be negative")
	}

	switch c.Server.WriteMethod {
	case "":
		c.Server.WriteMethod = http.MethodPost
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return errors.New("server.write_method must be POST, PUT or PATCH")
	}

	if c.MinIOClient.Enabled && (c.MinIOClient.Endpoint == "" || c.MinIOUploader.Bucket == "") {
		return errors.New("minio_client.endpoint and minio_uploader.bucket are required when mirroring is enabled")
	}

	if c.DBConfig.Enabled && (c.DBConfig.URI == "" || c.DBConfig.DBName == "") {
		return errors.New("DATABASE_URI and db_config.db_name are required when the database is enabled")
	}

	if c.BrokerConfig.Enabled &&
		(c.BrokerConfig.URI == "" || c.BrokerConfig.StreamName == "" || c.BrokerConfig.GroupName == "") {
		return errors.New("BROKER_URI, stream_name and group_name are required when the broker is enabled")
	}

	return nil
}

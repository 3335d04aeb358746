package settings

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type Config struct {
	Elasticsearch Elasticsearch `mapstructure:"elasticsearch"`
	Logger        Logger        `mapstructure:"logger"`
}

// Elasticsearch is the configuration for the Elasticsearch connection.
// Options are passed through to the underlying client, not reinterpreted.
type Elasticsearch struct {
	Addresses          []string `mapstructure:"addresses" validate:"required,min=1,dive,url"`
	Username           string   `mapstructure:"username"`
	Password           string   `mapstructure:"password"`
	APIKey             string   `mapstructure:"api_key"`
	CloudID            string   `mapstructure:"cloud_id"`
	CACertPath         string   `mapstructure:"ca_cert_path"`
	InsecureSkipVerify bool     `mapstructure:"insecure_skip_verify"`
	CompressBody       bool     `mapstructure:"compress_body"`
	RequestTimeout     int      `mapstructure:"request_timeout"` // Seconds
	MaxRetries         int      `mapstructure:"max_retries"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	MaxSize     int    `mapstructure:"max_size"`
	Compress    bool   `mapstructure:"compress"`
}

var validate = validator.New()

// Validate checks the connection options before a client is built from them.
func (e *Elasticsearch) Validate() error {
	if err := validate.Struct(e); err != nil {
		return errors.Wrap(err, "invalid elasticsearch configuration")
	}
	return nil
}

// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mode = pflag.String("mode", "", "Process mode: api, worker or all")

	validLogLevels       = []string{"debug", "info", "warn", "error", "fatal"}
	validModes           = []string{"api", "worker", "all"}
	validStorageTypes    = []string{"s3", "local"}
	validMetadataDrivers = []string{"sqlite", "postgres", "mongo"}
	validSessionDrivers  = []string{"redis", "memory"}
	validQueueDrivers    = []string{"redis", "local"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	Defaults()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		zap.L().Debug("No config.toml found, using defaults and environment")
	}

	if *mode != "" {
		v.Set("app.mode", *mode)
	}

	return Validate()
}

// Defaults binds environment variables and sets every default value.
// It's split out of Setup so tests can get a usable config without flags
// or files.
func Defaults() {
	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")
	v.BindEnv("app.mode", "APP_MODE")

	v.BindEnv("host.port", "PORT")
	v.BindEnv("host.cors", "HOST_CORS")

	v.BindEnv("session.driver", "SESSION_DRIVER")
	v.BindEnv("session.ttl", "SESSION_TTL")

	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	v.BindEnv("metadata.driver", "DB_DRIVER")
	v.BindEnv("metadata.dsn", "DB_DSN")
	v.BindEnv("mongo.host", "DB_HOST")
	v.BindEnv("mongo.port", "DB_PORT")
	v.BindEnv("mongo.database", "DB_DATABASE")

	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.folder_path", "FOLDER_PATH")

	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secret_access_key", "S3_SECRET_ACCESS_KEY")

	v.BindEnv("queue.driver", "QUEUE_DRIVER")
	v.BindEnv("queue.workers", "QUEUE_WORKERS")
	v.BindEnv("queue.max_jobs", "QUEUE_MAX_JOBS")
	v.BindEnv("queue.max_retry", "QUEUE_MAX_RETRY")

	v.BindEnv("upload.max_size", "UPLOAD_MAX_SIZE")
	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.mode", "all")

	v.SetDefault("host.port", 5000)
	v.SetDefault("host.cors", "http://localhost:5173")

	v.SetDefault("session.driver", "redis")
	v.SetDefault("session.ttl", 86400)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("metadata.driver", "sqlite")
	v.SetDefault("metadata.dsn", "files.db")
	v.SetDefault("mongo.host", "localhost")
	v.SetDefault("mongo.port", 27017)
	v.SetDefault("mongo.database", "files_manager")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.folder_path", "/tmp/files_manager")
	v.SetDefault("s3.region", "auto")

	v.SetDefault("queue.driver", "redis")
	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.max_jobs", 256)
	v.SetDefault("queue.max_retry", 3)

	v.SetDefault("upload.max_size", 50)
	v.SetDefault("security.rate_limit", 0)
}

// Validate checks the loaded values. upload.max_size is converted from
// MiB to bytes on success.
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if !slices.Contains(validModes, v.GetString("app.mode")) {
		return errors.New("invalid mode provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetInt("session.ttl") <= 0 {
		return errors.New("session.ttl must be bigger than 0")
	}

	if !slices.Contains(validSessionDrivers, v.GetString("session.driver")) {
		return errors.New("invalid session driver provided")
	}

	if !slices.Contains(validMetadataDrivers, v.GetString("metadata.driver")) {
		return errors.New("invalid metadata driver provided")
	}

	if v.GetString("metadata.driver") != "mongo" && v.GetString("metadata.dsn") == "" {
		return errors.New("metadata.dsn can't be empty")
	}

	if !slices.Contains(validQueueDrivers, v.GetString("queue.driver")) {
		return errors.New("invalid queue driver provided")
	}

	if v.GetInt("queue.workers") <= 0 {
		return errors.New("queue.workers must be bigger than 0")
	}

	if v.GetInt("queue.max_jobs") <= 0 {
		return errors.New("queue.max_jobs must be bigger than 0")
	}

	switch v.GetString("storage.type") {
	case "s3":
		{
			if v.GetString("s3.bucket") == "" {
				return errors.New("bucket can't be empty")
			}
			if v.GetString("s3.access_key_id") == "" {
				return errors.New("access key id can't be empty")
			}
			if v.GetString("s3.secret_access_key") == "" {
				return errors.New("secret access key can't be empty")
			}
		}
	case "local":
		{
			if v.GetString("storage.folder_path") == "" {
				return errors.New("storage.folder_path can't be empty")
			}
		}
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetString("queue.driver") == "local" && v.GetString("app.mode") != "all" {
		return errors.New("the local queue requires app.mode 'all'")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}

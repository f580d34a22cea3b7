package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "expirytracker"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EXPIRYTRACKER_APP_ENV" default:"dev"`
	Port         string `envconfig:"EXPIRYTRACKER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"EXPIRYTRACKER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EXPIRYTRACKER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"EXPIRYTRACKER_CORS_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"EXPIRYTRACKER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	// FilePath is the flat JSON file holding the persisted inventory. The
	// default matches the file name the legacy clients read and write.
	FilePath string `envconfig:"EXPIRYTRACKER_DATA_FILE" default:"itemList.json"`
}

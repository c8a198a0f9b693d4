package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Site    Site    `yaml:"site"`
	Server  Server  `yaml:"server"`
	Content Content `yaml:"content"`
	Log     Log     `yaml:"log"`
}

type Site struct {
	BaseURL       string `yaml:"baseURL"       env:"TP_SITE_BASE_URL"       env-default:"http://localhost:8000"`
	FormAction    string `yaml:"formAction"    env:"TP_SITE_FORM_ACTION"    env-default:"/"`
	MessagingBase string `yaml:"messagingBase" env:"TP_SITE_MESSAGING_BASE" env-default:"https://zalo.me"`
}

type Server struct {
	Addr            string        `yaml:"addr"            env:"TP_SERVER_ADDR"             env-default:":8000"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"TP_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	PostgresDsn     string        `yaml:"postgresDsn"     env:"TP_POSTGRES_DSN"`
	RedisAddr       string        `yaml:"redisAddr"       env:"TP_REDIS_ADDR"`
	RedisDB         int           `yaml:"redisDB"         env:"TP_REDIS_DB"`
	MemcachedAddr   string        `yaml:"memcachedAddr"   env:"TP_MEMCACHED_ADDR"`
	EnableTrace     bool          `yaml:"enableTrace"     env:"TP_ENABLE_TRACE"`
	TraceEndpoint   string        `yaml:"traceEndpoint"   env:"TP_TRACE_ENDPOINT"          env-default:"localhost:4318"`
}

const (
	SourceEmbedded = "embedded"
	SourceDir      = "dir"
	SourcePostgres = "postgres"
	SourceOrigin   = "origin"
)

type Content struct {
	Source    string        `yaml:"source"    env:"TP_CONTENT_SOURCE"     env-default:"embedded"` // embedded, dir, postgres, origin
	Dir       string        `yaml:"dir"       env:"TP_CONTENT_DIR"        env-default:"./content"`
	OriginURL string        `yaml:"originURL" env:"TP_CONTENT_ORIGIN_URL"`
	CacheTTL  time.Duration `yaml:"cacheTTL"  env:"TP_CONTENT_CACHE_TTL"  env-default:"10m"`
}

type Log struct {
	Level  string `yaml:"level"  env:"TP_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"TP_LOG_FORMAT" env-default:"text"`
}

// Load reads the YAML file at path and overlays environment variables.
// An empty path loads from the environment and defaults only.
func Load(path string) (Config, error) {
	var config Config

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer file.Close()

		err = yaml.NewDecoder(file).Decode(&config)
		if err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	err := cleanenv.ReadEnv(&config)
	if err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("config: validate: %w", err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Content.Source {
	case SourceEmbedded, SourceDir:
	case SourcePostgres:
		if c.Server.PostgresDsn == "" {
			return fmt.Errorf("content.source postgres requires server.postgresDsn")
		}
	case SourceOrigin:
		if c.Content.OriginURL == "" {
			return fmt.Errorf("content.source origin requires content.originURL")
		}
	default:
		return fmt.Errorf("unknown content.source %q", c.Content.Source)
	}
	if c.Content.CacheTTL < 0 {
		return fmt.Errorf("content.cacheTTL must be >= 0 (got %s)", c.Content.CacheTTL)
	}
	return nil
}

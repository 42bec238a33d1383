package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"PG_MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"PG_MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"PG_CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"PG_CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL    time.Duration `yaml:"CACHE_DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	SimilarTTL    time.Duration `yaml:"CACHE_SIMILAR_TTL" env:"CACHE_SIMILAR_TTL" env-default:"10m"`
	CategoriesTTL time.Duration `yaml:"CACHE_CATEGORIES_TTL" env:"CACHE_CATEGORIES_TTL" env-default:"15m"`
}

// DiscoveryConfig tunes the similarity fallback pipeline and listing bounds.
type DiscoveryConfig struct {
	SimilarLimit   int     `yaml:"SIMILAR_LIMIT" env:"SIMILAR_LIMIT" env-default:"4"`
	TrendingLimit  int     `yaml:"TRENDING_LIMIT" env:"TRENDING_LIMIT" env-default:"4"`
	ListLimit      int     `yaml:"LIST_LIMIT" env:"LIST_LIMIT" env-default:"8"`
	MinTokenLength int     `yaml:"MIN_TOKEN_LENGTH" env:"MIN_TOKEN_LENGTH" env-default:"3"`
	PriceBandLow   float64 `yaml:"PRICE_BAND_LOW" env:"PRICE_BAND_LOW" env-default:"0.7"`
	PriceBandHigh  float64 `yaml:"PRICE_BAND_HIGH" env:"PRICE_BAND_HIGH" env-default:"1.3"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"OTEL_ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"OTEL_EXPORTER_OTLP_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	ServiceName  string `yaml:"OTEL_SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"catalog-discovery"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer   `yaml:"http_server"`
	Database     Database        `yaml:"database"`
	RedisConnect RedisConnect    `yaml:"redis"`
	Cache        CacheConfig     `yaml:"cache"`
	Discovery    DiscoveryConfig `yaml:"discovery"`
	Telemetry    Telemetry       `yaml:"telemetry"`
}

func MustLoad() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")
		flag.Parse()
		configPath = *flags
	}

	if configPath != "" {
		cfg, err := LoadConfigFromPath(configPath)
		if err != nil {
			log.Fatalf("can not read config file: %s", err.Error())
		}

		return cfg
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("can not read config from environment: %s", err.Error())
	}

	return &cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel     string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	JWTSecretKey string `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`

	HTTP        HTTP        `yaml:"http"`
	Storage     Storage     `yaml:"storage"`
	Redis       Redis       `yaml:"redis"`
	Auth        Auth        `yaml:"auth"`
	Matchmaking Matchmaking `yaml:"matchmaking"`
	Leaderboard Leaderboard `yaml:"leaderboard"`
	Game        Game        `yaml:"game"`
}

type HTTP struct {
	ReadTimeout  time.Duration `yaml:"read-timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write-timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle-timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"30s"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"redis"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Auth struct {
	DevTokens bool          `yaml:"dev-tokens" env:"AUTH_DEV_TOKENS" env-default:"false"`
	TokenTTL  time.Duration `yaml:"token-ttl" env:"AUTH_TOKEN_TTL" env-default:"24h"`
}

type Matchmaking struct {
	ReservationTTL time.Duration `yaml:"reservation-ttl" env:"MATCHMAKING_RESERVATION_TTL" env-default:"300s"`
}

type Leaderboard struct {
	Limit int `yaml:"limit" env:"LEADERBOARD_LIMIT" env-default:"10"`
}

type Game struct {
	DefaultPool string `yaml:"default-pool" env:"GAME_DEFAULT_POOL" env-default:"global"`
}

// MustLoad - load all configurations in config.yml file. Variables from an optional .env file next
// to the binary are exported first so they can override the file.
func MustLoad(path string) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("unable to load .env file: %w", err))
	}

	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

var ErrUnknownStorageDriver = errors.New("unknown storage driver")

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, that.Storage.Driver)
	}

	if that.Auth.DevTokens && that.JWTSecretKey == "" {
		return errors.New("auth.dev-tokens requires jwt-secret-key")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

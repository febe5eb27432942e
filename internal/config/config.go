// Package config предоставляет структуры и функции для загрузки конфигурации
// клиента TeamSync и dev API из YAML-файла и переменных окружения.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env       string `yaml:"env" env:"TEAMSYNC_ENV" env-default:"local"`
	PageSize  int    `yaml:"page_size" env:"TEAMSYNC_PAGE_SIZE" env-default:"20"`
	Gateway   `yaml:"gateway"`
	TokenSlot `yaml:"token_slot"`
	DevAPI    `yaml:"dev_api"`
}

// Gateway настройки HTTP-клиента API.
type Gateway struct {
	BaseURL string        `yaml:"base_url" env:"TEAMSYNC_BASE_URL" env-default:"http://localhost:8080/api/v1"`
	Timeout time.Duration `yaml:"timeout" env:"TEAMSYNC_TIMEOUT" env-default:"10s"`
}

// TokenSlot настройки постоянного хранилища токена.
// Kind: file, redis или memory.
type TokenSlot struct {
	Kind  string `yaml:"kind" env:"TEAMSYNC_TOKEN_SLOT" env-default:"file"`
	Path  string `yaml:"path" env:"TEAMSYNC_TOKEN_PATH" env-default:".teamsync/token.json"`
	Redis Redis  `yaml:"redis"`
}

// Redis структура для настройки подключения к redis.
type Redis struct {
	Address     string        `yaml:"address" env:"TEAMSYNC_REDIS_ADDR" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"TEAMSYNC_REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Timeout     time.Duration `yaml:"timeout"`
	KeyPrefix   string        `yaml:"key_prefix" env-default:"teamsync:"`
}

// DevAPI структура для настройки локального сервера API.
type DevAPI struct {
	Address      string        `yaml:"address" env:"TEAMSYNC_DEVAPI_ADDR" env-default:":8080"`
	Timeout      time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"TEAMSYNC_JWT_SECRET" env-default:"dev-secret"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
	AuthRPS      float64       `yaml:"auth_rps" env-default:"5"`
	AuthBurst    int           `yaml:"auth_burst" env-default:"10"`
}

// Load читает конфиг из файла path. Пустой path означает
// только переменные окружения и значения по умолчанию.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
// Если CONFIG_PATH не задан, используются окружение и значения по умолчанию.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String возвращает конфиг в читаемом виде для логов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"PageSize: %d\n"+
			"Gateway:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"TokenSlot:\n"+
			"  Kind: %s\n"+
			"  Path: %s\n"+
			"  Redis: %s (db %d)\n"+
			"DevAPI:\n"+
			"  Address: %s\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.PageSize,
		c.BaseURL,
		c.Gateway.Timeout,
		c.Kind,
		c.Path,
		c.Redis.Address,
		c.Redis.DB,
		c.DevAPI.Address,
		c.TokenTTL,
	)
}

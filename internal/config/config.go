// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Auth     AuthConfig    `yaml:"auth"`
	OAuth    OAuthConfig   `yaml:"oauth"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// AuthConfig содержит параметры выпуска и валидации токенов и политики сессий.
type AuthConfig struct {
	// PrivateKeyFile — путь к PEM-файлу с приватным RSA-ключом подписи.
	PrivateKeyFile string `yaml:"private_key_file" env:"JWT_PRIVATE_KEY_FILE" env-required:"true"`
	// KeyID — идентификатор ключа (kid) в заголовке подписанных токенов.
	KeyID           string        `yaml:"key_id" env:"JWT_KEY_ID" env-default:"auth-service-rsa-1"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"720h"`
	Issuer          string        `yaml:"issuer"   env:"ISSUER" env-default:"auth-service"`
	Audience        []string      `yaml:"audience" env:"AUDIENCE" env-default:"api-gateway"`
	// MaxRefreshTokensPerUser — потолок активных refresh-токенов на пользователя;
	// при превышении отзываются самые старые по issued_at.
	MaxRefreshTokensPerUser int `yaml:"max_refresh_tokens_per_user" env:"MAX_REFRESH_TOKENS_PER_USER" env-default:"5"`
	// MaxSessionsPerUser — потолок активных сессий; при превышении отзываются
	// наименее активные по last_active.
	MaxSessionsPerUser int `yaml:"max_sessions_per_user" env:"MAX_SESSIONS_PER_USER" env-default:"5"`
	// SessionInactivity — скользящее окно неактивности, после которого
	// сессия считается недействительной.
	SessionInactivity time.Duration `yaml:"session_inactivity" env:"SESSION_INACTIVITY" env-default:"24h"`
}

// OAuthConfig — настройки внешнего identity-провайдера (Google).
type OAuthConfig struct {
	GoogleClientID     string        `yaml:"google_client_id" env:"GOOGLE_CLIENT_ID" env-default:""`
	GoogleClientSecret string        `yaml:"google_client_secret" env:"GOOGLE_CLIENT_SECRET" env-default:""`
	GoogleRedirectURI  string        `yaml:"google_redirect_uri" env:"GOOGLE_REDIRECT_URI" env-default:""`
	// RequestTimeout — таймаут исходящих запросов к провайдеру.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"OAUTH_REQUEST_TIMEOUT" env-default:"10s"`
	// StateTTL — срок жизни state/PKCE-записей в expiring-store.
	StateTTL time.Duration `yaml:"state_ttl" env:"OAUTH_STATE_TTL" env-default:"10m"`
	// TokenCipherKey — base64-кодированный ключ AES (16/24/32 байта) для
	// шифрования токенов провайдера на привязке внешнего аккаунта.
	// Пустое значение выключает сохранение токенов провайдера.
	TokenCipherKey string `yaml:"token_cipher_key" env:"OAUTH_TOKEN_CIPHER_KEY" env-default:""`
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — настройки подключения к Redis (expiring key-value store).
type RedisConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL" env-required:"true"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}

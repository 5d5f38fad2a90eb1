package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MinSecretLength минимальная длина ключа подписи токенов (HS256)
const MinSecretLength = 32

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Database DatabaseConfig // Настройки подключения к БД
	JWT      JWTConfig      // Настройки подписи токенов
	Auth     AuthConfig     // Настройки аутентификации
	Log      LogConfig      // Настройки логирования
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"workhub"`
	Password string `envconfig:"DB_PASSWORD" default:"workhub_pass"`
	Name     string `envconfig:"DB_NAME" default:"workhub"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`
	Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
}

// JWTConfig содержит ключ подписи токенов. Срок жизни токена фиксирован (24 часа)
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// AuthConfig содержит настройки аутентификации
type AuthConfig struct {
	// PublicPaths префиксы путей, для которых токен не проверяется
	PublicPaths []string `envconfig:"AUTH_PUBLIC_PATHS" default:"/api/v1/auth/"`
	BcryptCost  int      `envconfig:"AUTH_BCRYPT_COST" default:"12"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load читает конфигурацию из переменных окружения. Перед этим подгружается
// .env файл (путь из ENV_FILE), уже заданные переменные не перезаписываются
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет значения, которые envconfig не может проверить сам
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretLength)
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.Log.Level, err)
	}

	if c.Server.ShutdownTimeout <= 0 || c.Server.RequestTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}

	return nil
}

func loadEnvFile() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}

	// Отсутствие файла не ошибка: в контейнере переменные задаются окружением
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}

// Пакет config — загрузка и валидация конфигурации Files Manager
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// PageSize — размер страницы листинга файлов.
// Фиксирован контрактом API, в конфигурацию не выносится.
const PageSize = 20

// Config содержит все параметры конфигурации Files Manager.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Пользователь БД
	DBUser string
	// Пароль БД (обязательный)
	DBPassword string
	// Режим SSL (disable, require, verify-full)
	DBSSLMode string

	// --- Redis (хранилище токенов) ---

	// Адрес Redis (host:port)
	RedisAddr string
	// Пароль Redis (пустой = без аутентификации)
	RedisPassword string
	// Номер базы Redis
	RedisDB int
	// Время жизни токена аутентификации (по умолчанию 24h)
	TokenTTL time.Duration

	// --- Хранилище содержимого ---

	// Директория хранения содержимого файлов
	FolderPath string

	// --- Кэш папок ---

	// Максимальный размер LRU-кэша папок
	FolderCacheSize int
	// TTL записи в кэше папок
	FolderCacheTTL time.Duration

	// --- Dephealth (topologymetrics) ---

	// Имя группы в метриках зависимостей
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration
	// Является ли сервис точкой входа (лейбл isentry)
	DephealthIsEntry bool
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// FM_PORT — порт HTTP-сервера (по умолчанию 5000)
	cfg.Port, err = getEnvInt("FM_PORT", 5000)
	if err != nil {
		return nil, fmt.Errorf("FM_PORT: %w", err)
	}

	// FM_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("FM_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("FM_LOG_LEVEL: %w", err)
	}

	// FM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("FM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("FM_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("FM_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_HTTP_READ_TIMEOUT: %w", err)
	}

	cfg.HTTPWriteTimeout, err = getEnvDuration("FM_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg.HTTPIdleTimeout, err = getEnvDuration("FM_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("FM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- PostgreSQL ---

	cfg.DBHost = getEnvDefault("FM_DB_HOST", "localhost")

	cfg.DBPort, err = getEnvInt("FM_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("FM_DB_PORT: %w", err)
	}

	cfg.DBName = getEnvDefault("FM_DB_NAME", "files_manager")
	cfg.DBUser = getEnvDefault("FM_DB_USER", "files_manager")

	// FM_DB_PASSWORD — обязательная переменная
	cfg.DBPassword, err = getEnvRequired("FM_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	cfg.DBSSLMode = getEnvDefault("FM_DB_SSL_MODE", "disable")

	// --- Redis ---

	cfg.RedisAddr = getEnvDefault("FM_REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnvDefault("FM_REDIS_PASSWORD", "")

	cfg.RedisDB, err = getEnvInt("FM_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("FM_REDIS_DB: %w", err)
	}

	// FM_TOKEN_TTL — время жизни токена (по умолчанию 24h)
	cfg.TokenTTL, err = getEnvDuration("FM_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("FM_TOKEN_TTL: %w", err)
	}

	// --- Хранилище содержимого ---

	// FM_FOLDER_PATH — директория содержимого (по умолчанию /tmp/files_manager)
	cfg.FolderPath = getEnvDefault("FM_FOLDER_PATH", "/tmp/files_manager")

	// --- Кэш папок ---

	cfg.FolderCacheSize, err = getEnvInt("FM_FOLDER_CACHE_SIZE", 1024)
	if err != nil {
		return nil, fmt.Errorf("FM_FOLDER_CACHE_SIZE: %w", err)
	}
	if cfg.FolderCacheSize < 1 {
		return nil, fmt.Errorf("FM_FOLDER_CACHE_SIZE: значение должно быть >= 1")
	}

	cfg.FolderCacheTTL, err = getEnvDuration("FM_FOLDER_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("FM_FOLDER_CACHE_TTL: %w", err)
	}

	// --- Dephealth ---

	cfg.DephealthGroup = getEnvDefault("FM_DEPHEALTH_GROUP", "files-manager")

	cfg.DephealthCheckInterval, err = getEnvDuration("FM_DEPHEALTH_CHECK_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	cfg.DephealthIsEntry, err = getEnvBool("FM_DEPHEALTH_ISENTRY", false)
	if err != nil {
		return nil, fmt.Errorf("FM_DEPHEALTH_ISENTRY: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL для pgxpool.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// MigrateURL возвращает URL подключения для golang-migrate (драйвер pgx5).
func (c *Config) MigrateURL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

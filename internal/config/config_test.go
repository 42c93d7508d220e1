package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// clearEnv сбрасывает все переменные FM_* и задаёт обязательный пароль БД.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"FM_PORT", "FM_LOG_LEVEL", "FM_LOG_FORMAT",
		"FM_HTTP_READ_TIMEOUT", "FM_HTTP_WRITE_TIMEOUT", "FM_HTTP_IDLE_TIMEOUT",
		"FM_SHUTDOWN_TIMEOUT",
		"FM_DB_HOST", "FM_DB_PORT", "FM_DB_NAME", "FM_DB_USER", "FM_DB_SSL_MODE",
		"FM_REDIS_ADDR", "FM_REDIS_PASSWORD", "FM_REDIS_DB", "FM_TOKEN_TTL",
		"FM_FOLDER_PATH", "FM_FOLDER_CACHE_SIZE", "FM_FOLDER_CACHE_TTL",
		"FM_DEPHEALTH_GROUP", "FM_DEPHEALTH_CHECK_INTERVAL", "FM_DEPHEALTH_ISENTRY",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
	t.Setenv("FM_DB_PASSWORD", "secret")
}

// TestLoad_Defaults проверяет значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() ошибка: %v", err)
	}

	if cfg.Port != 5000 {
		t.Errorf("Port = %d, ожидалось 5000", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидался info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидался json", cfg.LogFormat)
	}
	if cfg.DBHost != "localhost" || cfg.DBPort != 5432 {
		t.Errorf("БД = %s:%d, ожидалось localhost:5432", cfg.DBHost, cfg.DBPort)
	}
	if cfg.DBName != "files_manager" {
		t.Errorf("DBName = %q, ожидалось files_manager", cfg.DBName)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, ожидался localhost:6379", cfg.RedisAddr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, ожидалось 24h", cfg.TokenTTL)
	}
	if cfg.FolderPath != "/tmp/files_manager" {
		t.Errorf("FolderPath = %q, ожидался /tmp/files_manager", cfg.FolderPath)
	}
	if cfg.FolderCacheSize != 1024 {
		t.Errorf("FolderCacheSize = %d, ожидалось 1024", cfg.FolderCacheSize)
	}
	if cfg.FolderCacheTTL != 5*time.Minute {
		t.Errorf("FolderCacheTTL = %v, ожидалось 5m", cfg.FolderCacheTTL)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидалось 5s", cfg.ShutdownTimeout)
	}
}

// TestLoad_Overrides проверяет чтение значений из окружения.
func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FM_PORT", "8080")
	t.Setenv("FM_LOG_LEVEL", "debug")
	t.Setenv("FM_LOG_FORMAT", "text")
	t.Setenv("FM_DB_HOST", "pg.example.com")
	t.Setenv("FM_TOKEN_TTL", "1h")
	t.Setenv("FM_REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() ошибка: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидалось 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидался debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидался text", cfg.LogFormat)
	}
	if cfg.DBHost != "pg.example.com" {
		t.Errorf("DBHost = %q, ожидался pg.example.com", cfg.DBHost)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, ожидался 1h", cfg.TokenTTL)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, ожидалось 3", cfg.RedisDB)
	}
}

// TestLoad_Errors проверяет отказ при некорректных значениях.
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "нечисловой порт", key: "FM_PORT", value: "abc"},
		{name: "недопустимый уровень логирования", key: "FM_LOG_LEVEL", value: "trace"},
		{name: "недопустимый формат логов", key: "FM_LOG_FORMAT", value: "xml"},
		{name: "некорректная длительность", key: "FM_TOKEN_TTL", value: "24 часа"},
		{name: "нулевой размер кэша", key: "FM_FOLDER_CACHE_SIZE", value: "0"},
		{name: "некорректное булево", key: "FM_DEPHEALTH_ISENTRY", value: "да"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() с %s=%q должен вернуть ошибку", tt.key, tt.value)
			}
		})
	}
}

// TestLoad_RequiredPassword проверяет обязательность пароля БД.
func TestLoad_RequiredPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("FM_DB_PASSWORD", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() без FM_DB_PASSWORD должен вернуть ошибку")
	}
	if !strings.Contains(err.Error(), "FM_DB_PASSWORD") {
		t.Errorf("ошибка должна упоминать переменную: %v", err)
	}
}

// TestDatabaseDSN проверяет сборку строк подключения.
func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: 5432, DBName: "files_manager",
		DBUser: "fm", DBPassword: "pass", DBSSLMode: "disable",
	}

	wantDSN := "postgres://fm:pass@db:5432/files_manager?sslmode=disable"
	if got := cfg.DatabaseDSN(); got != wantDSN {
		t.Errorf("DatabaseDSN() = %q, ожидалось %q", got, wantDSN)
	}

	wantMigrate := "pgx5://fm:pass@db:5432/files_manager?sslmode=disable"
	if got := cfg.MigrateURL(); got != wantMigrate {
		t.Errorf("MigrateURL() = %q, ожидалось %q", got, wantMigrate)
	}
}

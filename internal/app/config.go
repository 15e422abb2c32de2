package app

import "time"

const (
	// StorageDriverMemory хранит данные в памяти процесса (разработка, тесты).
	StorageDriverMemory = "memory"
	// StorageDriverPostgres хранит данные в PostgreSQL.
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// PostgresConnectAttempts - сколько раз пробовать подключиться к базе при старте.
	PostgresConnectAttempts int

	ShutdownTimeout time.Duration
	// CORSOrigins - разрешённые источники; пустой список разрешает любой.
	CORSOrigins []string
}

// DefaultConfig возвращает конфигурацию для локального запуска на in-memory хранилище.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:                ":8080",
		MetricsAddr:             ":9090",
		StorageDriver:           StorageDriverMemory,
		PostgresAutoMigrate:     true,
		PostgresConnectAttempts: 5,
		ShutdownTimeout:         5 * time.Second,
	}
}

// Package config собирает конфигурацию сервиса из значений по умолчанию,
// JSON файла, флагов командной строки и переменных окружения.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	// SourceFile сокращения читаются из JSON файла
	SourceFile = "file"
	// SourcePostgres сокращения читаются из таблицы PostgreSQL
	SourcePostgres = "postgres"
)

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress   string `env:"SERVER_ADDRESS"`   // Адрес для запуска HTTP-сервера
	ShorthandsPath  string `env:"SHORTHANDS_PATH"`  // Путь к JSON файлу с сокращениями
	DatabaseDSN     string `env:"DATABASE_DSN"`     // Строка подключения к PostgreSQL, заменяет файл
	WatchShorthands bool   `env:"WATCH_SHORTHANDS"` // Кэшировать файл и сбрасывать кэш по событиям fsnotify
	ConfigFile      string `env:"CONFIG"`           // Путь к JSON файлу конфигурации
}

// JSONConfig конфигурация из JSON файла. Поля-указатели позволяют отличить
// отсутствующее значение от пустого.
type JSONConfig struct {
	ServerAddress   *string `json:"server_address"`
	ShorthandsPath  *string `json:"shorthands_path"`
	DatabaseDSN     *string `json:"database_dsn"`
	WatchShorthands *bool   `json:"watch_shorthands"`
}

// defaultConfig возвращает значения по умолчанию
func defaultConfig() *Config {
	return &Config{
		ServerAddress:  "127.0.0.1:8080",
		ShorthandsPath: "./shorthands.json",
	}
}

// NewConfig инициализирует конфигурацию.
// Приоритет по возрастанию: значения по умолчанию, JSON файл, флаги, переменные окружения.
func NewConfig() (*Config, error) {
	cfg := defaultConfig()

	// 1. Флаги разбираются в отдельную структуру, чтобы применить их после JSON файла
	flags := *cfg
	flag.StringVar(&flags.ServerAddress, "a", flags.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	flag.StringVar(&flags.ShorthandsPath, "f", flags.ShorthandsPath, "Путь к файлу сокращений (env: SHORTHANDS_PATH)")
	flag.StringVar(&flags.DatabaseDSN, "d", flags.DatabaseDSN, "Строка подключения к PostgreSQL (env: DATABASE_DSN)")
	flag.BoolVar(&flags.WatchShorthands, "w", flags.WatchShorthands, "Кэшировать файл сокращений до его изменения (env: WATCH_SHORTHANDS)")
	flag.StringVar(&flags.ConfigFile, "c", flags.ConfigFile, "Путь к JSON файлу конфигурации (env: CONFIG)")
	flag.Parse()

	// 2. JSON файл конфигурации
	configFile := flags.ConfigFile
	if value, ok := os.LookupEnv("CONFIG"); ok {
		configFile = value
	}
	jsonConfig, err := loadJSONConfig(configFile)
	if err != nil {
		return nil, err
	}
	cfg.applyJSONConfig(jsonConfig)
	cfg.ConfigFile = configFile

	// 3. Явно заданные флаги
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerAddress = flags.ServerAddress
		case "f":
			cfg.ShorthandsPath = flags.ShorthandsPath
		case "d":
			cfg.DatabaseDSN = flags.DatabaseDSN
		case "w":
			cfg.WatchShorthands = flags.WatchShorthands
		}
	})

	// 4. Переменные окружения (имеют наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadJSONConfig читает JSON файл конфигурации. Пустое имя файла не является ошибкой.
func loadJSONConfig(filename string) (*JSONConfig, error) {
	if filename == "" {
		return &JSONConfig{}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var jsonConfig JSONConfig
	if err := json.Unmarshal(data, &jsonConfig); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return &jsonConfig, nil
}

// applyJSONConfig переносит заданные в JSON значения в конфигурацию
func (c *Config) applyJSONConfig(jsonConfig *JSONConfig) {
	if jsonConfig.ServerAddress != nil {
		c.ServerAddress = *jsonConfig.ServerAddress
	}
	if jsonConfig.ShorthandsPath != nil {
		c.ShorthandsPath = *jsonConfig.ShorthandsPath
	}
	if jsonConfig.DatabaseDSN != nil {
		c.DatabaseDSN = *jsonConfig.DatabaseDSN
	}
	if jsonConfig.WatchShorthands != nil {
		c.WatchShorthands = *jsonConfig.WatchShorthands
	}
}

// SourceKind возвращает вид источника сокращений
func (c *Config) SourceKind() string {
	if c.DatabaseDSN != "" {
		return SourcePostgres
	}
	return SourceFile
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerAddress,
			validation.Required,
			validation.By(validateListenAddress),
		),
		validation.Field(&c.ShorthandsPath,
			validation.When(c.DatabaseDSN == "", validation.Required),
		),
		validation.Field(&c.WatchShorthands,
			validation.When(c.DatabaseDSN != "",
				validation.Empty.Error("watch mode is supported only for the file source")),
		),
	)
}

// validateListenAddress проверяет адрес прослушивания вида host:port.
// Пустой host означает все интерфейсы, порт 0 выбирается системой.
func validateListenAddress(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_listen_address_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_listen_address_format", "must be in host:port format")
	}

	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return validation.NewError("validation_listen_address_port", "port must be a number from 0 to 65535")
	}

	if host != "" && is.Host.Validate(host) != nil {
		return validation.NewError("validation_listen_address_host", "must be an IP address or a host name")
	}

	return nil
}

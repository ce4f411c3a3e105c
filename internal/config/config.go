package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Totarae/linkshortener/internal/util"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Режимы хранилища.
const (
	ModeDatabase = "database"
	ModeInMemory = "in-memory"
)

// Режимы кэша списков.
const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerAddress string        `json:"server_address"`
	BaseURL       string        `json:"base_url"`
	DatabaseDSN   string        `json:"database_dsn"`
	RedisAddr     string        `json:"redis_addr"`
	RedisPassword string        `json:"-"`
	RedisDB       int           `json:"redis_db"`
	CacheMode     string        `json:"cache_mode"`
	JWTSecret     string        `json:"-"`
	JWTTTL        time.Duration `json:"jwt_ttl"`
	LinkLookup    string        `json:"link_lookup"`
	LogLevel      string        `json:"log_level"`
	EnableHTTPS   bool          `json:"enable_https"`
	TLSCertPath   string        `json:"tls_cert_path"`
	TLSKeyPath    string        `json:"tls_key_path"`
	Mode          string        `json:"-"`
}

// NewConfig читает конфигурацию из окружения, .env и аргументов командной строки.
func NewConfig() (*Config, error) {
	return Load(os.Args[1:], ".env")
}

// Load собирает конфигурацию. Приоритет: флаги, затем переменные окружения,
// затем значения по умолчанию. Файлы envFiles не переопределяют уже заданное окружение.
func Load(args []string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault("SERVER_ADDRESS", "localhost:8080") // Значения по умолчанию
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_MODE", "")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("LINK_LOOKUP", "short_url")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENABLE_HTTPS", false)
	v.SetDefault("TLS_CERT_PATH", "cert.pem")
	v.SetDefault("TLS_KEY_PATH", "key.pem")
	v.AutomaticEnv()

	// Определяем флаги, но НЕ задаем в них значения по умолчанию
	fs := flag.NewFlagSet("linkshortener", flag.ContinueOnError)
	serverAddress := fs.String("a", "", "server address")
	baseURL := fs.String("b", "", "base URL")
	databaseDSN := fs.String("d", "", "PostgreSQL DSN")
	redisAddr := fs.String("r", "", "Redis address")
	jwtSecret := fs.String("j", "", "JWT signing secret")
	linkLookup := fs.String("l", "", "link lookup strategy: short_url or id")
	enableHTTPS := fs.Bool("s", false, "enable HTTPS")
	tlsCertPath := fs.String("cert", "", "path to TLS certificate")
	tlsKeyPath := fs.String("key", "", "path to TLS key")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerAddress: v.GetString("SERVER_ADDRESS"),
		BaseURL:       v.GetString("BASE_URL"),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		CacheMode:     strings.ToLower(v.GetString("CACHE_MODE")),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTTTL:        v.GetDuration("JWT_TTL"),
		LinkLookup:    strings.ToLower(v.GetString("LINK_LOOKUP")),
		LogLevel:      v.GetString("LOG_LEVEL"),
		EnableHTTPS:   v.GetBool("ENABLE_HTTPS"),
		TLSCertPath:   v.GetString("TLS_CERT_PATH"),
		TLSKeyPath:    v.GetString("TLS_KEY_PATH"),
	}

	// Флаги имеют высший приоритет
	override := func(flagValue string, target *string) {
		if flagValue != "" {
			*target = flagValue
		}
	}
	override(*serverAddress, &cfg.ServerAddress)
	override(*baseURL, &cfg.BaseURL)
	override(*databaseDSN, &cfg.DatabaseDSN)
	override(*redisAddr, &cfg.RedisAddr)
	override(*jwtSecret, &cfg.JWTSecret)
	override(strings.ToLower(*linkLookup), &cfg.LinkLookup)
	override(*tlsCertPath, &cfg.TLSCertPath)
	override(*tlsKeyPath, &cfg.TLSKeyPath)
	if *enableHTTPS {
		cfg.EnableHTTPS = true
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// Определяем режим работы
	if cfg.DatabaseDSN != "" {
		cfg.Mode = ModeDatabase
	} else {
		cfg.Mode = ModeInMemory
	}
	if cfg.CacheMode == "" {
		if cfg.RedisAddr != "" {
			cfg.CacheMode = CacheRedis
		} else {
			cfg.CacheMode = CacheNone
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}
	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.ServerAddress == "" {
		errs = append(errs, errors.New("адрес сервера не может быть пустым"))
	}
	if !util.IsAbsoluteURL(cfg.BaseURL) {
		errs = append(errs, fmt.Errorf("базовый URL должен быть абсолютным: %q", cfg.BaseURL))
	}
	switch cfg.LinkLookup {
	case "short_url", "id":
	default:
		errs = append(errs, fmt.Errorf("неизвестная стратегия поиска ссылок: %q", cfg.LinkLookup))
	}
	switch cfg.CacheMode {
	case CacheRedis:
		if cfg.RedisAddr == "" {
			errs = append(errs, errors.New("CACHE_MODE=redis требует REDIS_ADDR"))
		}
	case CacheMemory, CacheNone:
	default:
		errs = append(errs, fmt.Errorf("неизвестный режим кэша: %q", cfg.CacheMode))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET не может быть пустым"))
	}
	if cfg.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL должен быть положительным: %s", cfg.JWTTTL))
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if cfg.EnableHTTPS && (cfg.TLSCertPath == "" || cfg.TLSKeyPath == "") {
		errs = append(errs, errors.New("для HTTPS нужны TLS_CERT_PATH и TLS_KEY_PATH"))
	}
	return errors.Join(errs...)
}

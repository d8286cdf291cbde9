package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ContractsConfig struct {
	NearExpiryDays  int
	MaxInstallments int
	SumTolerance    decimal.Decimal
}

type CleanupConfig struct {
	Interval time.Duration
}

type CustomersConfig struct {
	SimilarityThreshold float64
}

type DocumentsConfig struct {
	CompanyName string
	Currency    string
	// PDFFont is an optional TTF path; core fonts are used when empty.
	PDFFont string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Contracts   ContractsConfig
	Cleanup     CleanupConfig
	Customers   CustomersConfig
	Documents   DocumentsConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("CLEANUP_INTERVAL", "6h")
	v.SetDefault("CONTRACTS_SUM_TOLERANCE", "1")

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	tolerance, err := decimal.NewFromString(strings.TrimSpace(v.GetString("CONTRACTS_SUM_TOLERANCE")))
	if err != nil {
		return nil, fmt.Errorf("CONTRACTS_SUM_TOLERANCE: %w", err)
	}

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Contracts: ContractsConfig{
			NearExpiryDays:  v.GetInt("CONTRACTS_NEAR_EXPIRY_DAYS"),
			MaxInstallments: v.GetInt("CONTRACTS_MAX_INSTALLMENTS"),
			SumTolerance:    tolerance,
		},
		Cleanup: CleanupConfig{
			Interval: v.GetDuration("CLEANUP_INTERVAL"),
		},
		Customers: CustomersConfig{
			SimilarityThreshold: v.GetFloat64("CUSTOMERS_SIMILARITY_THRESHOLD"),
		},
		Documents: DocumentsConfig{
			CompanyName: v.GetString("DOCUMENTS_COMPANY_NAME"),
			Currency:    v.GetString("DOCUMENTS_CURRENCY"),
			PDFFont:     v.GetString("DOCUMENTS_PDF_FONT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.Contracts.NearExpiryDays == 0 {
		cfg.Contracts.NearExpiryDays = 20
	}
	if cfg.Contracts.MaxInstallments == 0 {
		cfg.Contracts.MaxInstallments = 6
	}
	if cfg.Customers.SimilarityThreshold == 0 {
		cfg.Customers.SimilarityThreshold = 0.8
	}
	if cfg.Documents.CompanyName == "" {
		cfg.Documents.CompanyName = "Billboards"
	}
	if cfg.Documents.Currency == "" {
		cfg.Documents.Currency = "LYD"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Contracts.MaxInstallments < 1 {
		return fmt.Errorf("CONTRACTS_MAX_INSTALLMENTS must be positive")
	}
	if cfg.Contracts.SumTolerance.IsNegative() {
		return fmt.Errorf("CONTRACTS_SUM_TOLERANCE must not be negative")
	}
	if cfg.Customers.SimilarityThreshold < 0 || cfg.Customers.SimilarityThreshold > 1 {
		return fmt.Errorf("CUSTOMERS_SIMILARITY_THRESHOLD must be between 0 and 1")
	}
	if cfg.Cleanup.Interval < 0 {
		return fmt.Errorf("CLEANUP_INTERVAL must not be negative")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

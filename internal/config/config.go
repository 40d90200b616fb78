package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	AdminLogin        string `env:"ADMIN_LOGIN"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	JWTAdminSecret    string `env:"JWT_ADMIN_SECRET"`

	// Доступ к API вендора eSIM. UseStubVendor подменяет вендора детерминированной
	// заглушкой - только для разработки.
	EsimBaseURL    string `env:"ESIM_BASE_URL"`
	EsimAccessCode string `env:"ESIM_ACCESS_CODE"`
	EsimSecret     string `env:"ESIM_SECRET"`
	UseStubVendor  bool   `env:"USE_STUB_VENDOR"`

	RobokassaLogin     string `env:"ROBOKASSA_LOGIN"`
	RobokassaPassword1 string `env:"ROBOKASSA_PASSWORD1"`
	RobokassaPassword2 string `env:"ROBOKASSA_PASSWORD2"`
	RobokassaTestMode  bool   `env:"ROBOKASSA_TEST_MODE"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	WebAppBaseURL    string `env:"WEBAPP_BASE_URL"`

	RatesURL      string `env:"RATES_URL"`
	RatesCurrency string `env:"RATES_CURRENCY"`
}

func LoadConfig() (*Config, error) {
	// .env опционален, его отсутствие не ошибка.
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTAdminSecret == "" {
		return nil, errors.New("admin JWT secret is not set")
	}
	if !conf.UseStubVendor && (conf.EsimAccessCode == "" || conf.EsimSecret == "") {
		return nil, errors.New("esim vendor credentials are not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.RatesURL, "r", "", "Exchange rate source URL")
	flag.BoolVar(&flagConfig.UseStubVendor, "stub", false, "Use stub eSIM vendor")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	merged.RatesURL = defaultIfBlank(envConfig.RatesURL, flagsConfig.RatesURL)
	merged.UseStubVendor = envConfig.UseStubVendor || flagsConfig.UseStubVendor
	merged.RatesCurrency = defaultIfBlank(envConfig.RatesCurrency, "USD")
	return &merged
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

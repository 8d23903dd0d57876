package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contiene tutte le configurazioni dell'applicazione
type Config struct {
	Database      DatabaseConfig
	CryptoCompare CryptoCompareConfig
	Scheduler     SchedulerConfig
	Timezone      string
	LogLevel      string
}

// DatabaseConfig contiene le configurazioni per PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN restituisce la stringa di connessione PostgreSQL
func (dc DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dc.Host, dc.Port, dc.User, dc.Password, dc.Name, dc.SSLMode)
}

// CryptoCompareConfig contiene le configurazioni per l'API CryptoCompare
type CryptoCompareConfig struct {
	APIKey          string
	HistoricDayURL  string
	HistoricHourURL string
	CoinInfoURL     string
	QuoteCurrency   string
	PageLimit       int
	RequestDelay    time.Duration
}

// SchedulerConfig contiene le configurazioni per lo scheduler cron
type SchedulerConfig struct {
	CronSchedule string
}

// Load carica le configurazioni dalle variabili d'ambiente
func Load() (*Config, error) {
	// Carica il file .env se esiste
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASS", ""),
			Name:     getEnvOrDefault("DB_NAME", "crypto_tracker_db"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		CryptoCompare: CryptoCompareConfig{
			APIKey:          os.Getenv("API_KEY"),
			HistoricDayURL:  getEnvOrDefault("API_HISTORIC_BASE_URL", "https://min-api.cryptocompare.com/data/v2/histoday"),
			HistoricHourURL: getEnvOrDefault("API_HISTORIC_BASE_URL_HOURLY", "https://min-api.cryptocompare.com/data/v2/histohour"),
			CoinInfoURL:     getEnvOrDefault("API_COIN_INFO_BASE_URL", "https://min-api.cryptocompare.com/data/all/coinlist?fsym="),
			QuoteCurrency:   getEnvOrDefault("QUOTE_CURRENCY", "USD"),
			PageLimit:       getEnvIntOrDefault("API_PAGE_LIMIT", 1500),
			RequestDelay:    getEnvDurationOrDefault("API_REQUEST_DELAY", time.Second),
		},
		Scheduler: SchedulerConfig{
			// Sei campi (secondi inclusi): ogni ora al minuto 1
			CronSchedule: getEnvOrDefault("CRON_SCHEDULE", "0 1 * * * *"),
		},
		Timezone: getEnvOrDefault("LOCAL_TIMEZONE", "Europe/London"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

// Location risolve il fuso orario locale configurato
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("fuso orario non valido %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// getEnvOrDefault restituisce il valore della variabile d'ambiente o un valore di default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault restituisce il valore intero della variabile d'ambiente o un valore di default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault restituisce la durata della variabile d'ambiente o un valore di default
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

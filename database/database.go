package database

import (
	"fmt"
	"log"
	"time"

	"github.com/miguelptq/crypto-project/config"
	"github.com/miguelptq/crypto-project/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect stabilisce una connessione al database PostgreSQL
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// Configurazione logger GORM
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configurazione connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Un solo processo scheduler alla volta: pool piccolo
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate esegue le migrazioni per creare le tabelle
func Migrate(db *gorm.DB) error {
	// Auto-migrazione per creare le tabelle (ordine importante per foreign key)
	err := db.AutoMigrate(
		&models.Coin{},
		&models.CoinHistoric{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Creazione indici aggiuntivi per performance
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes crea indici aggiuntivi per performance
func createIndexes(db *gorm.DB) error {
	// Indici per le query più frequenti del motore di sincronizzazione
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_historic_coin_ts_desc ON coin_historic (coin_id, timestamp DESC);",
		"CREATE INDEX IF NOT EXISTS idx_coins_history_check ON coins (history_check);",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	return nil
}

// Initialize apre la connessione ed esegue le migrazioni
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Close chiude la connessione al database
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// repositoryManager implementa RepositoryManager
type repositoryManager struct {
	db               *gorm.DB
	coinRepo         CoinRepository
	coinHistoricRepo CoinHistoricRepository
}

// NewRepositoryManager crea una nuova istanza di RepositoryManager
func NewRepositoryManager(db *gorm.DB) RepositoryManager {
	return &repositoryManager{
		db:               db,
		coinRepo:         NewCoinRepository(db),
		coinHistoricRepo: NewCoinHistoricRepository(db),
	}
}

// Coin restituisce il repository per le coin
func (rm *repositoryManager) Coin() CoinRepository {
	return rm.coinRepo
}

// CoinHistoric restituisce il repository per le candele giornaliere
func (rm *repositoryManager) CoinHistoric() CoinHistoricRepository {
	return rm.coinHistoricRepo
}

// Transaction esegue fn all'interno di una transazione: i repository passati
// a fn operano sulla transazione e un errore di fn causa il rollback
func (rm *repositoryManager) Transaction(ctx context.Context, fn func(RepositoryManager) error) error {
	if rm.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return rm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositoryManager(tx))
	})
}

package repositories

import (
	"context"

	"github.com/miguelptq/crypto-project/models"
)

// CoinRepository definisce l'interfaccia per le operazioni CRUD sulle coin
type CoinRepository interface {
	// Create crea una nuova coin
	Create(ctx context.Context, coin *models.Coin) error

	// GetByID recupera una coin per ID
	GetByID(ctx context.Context, id uint) (*models.Coin, error)

	// GetBySymbol recupera una coin per simbolo
	GetBySymbol(ctx context.Context, symbol string) (*models.Coin, error)

	// GetAll recupera tutte le coin tracciate
	GetAll(ctx context.Context) ([]*models.Coin, error)

	// Update aggiorna una coin esistente
	Update(ctx context.Context, coin *models.Coin) error

	// Exists verifica se una coin esiste
	Exists(ctx context.Context, symbol string) (bool, error)
}

// CoinHistoricRepository definisce l'interfaccia per le operazioni sulle candele giornaliere
type CoinHistoricRepository interface {
	// Create crea una nuova candela giornaliera
	Create(ctx context.Context, historic *models.CoinHistoric) error

	// CreateBatch inserisce un batch di candele ignorando i duplicati
	// sulla chiave naturale (coin_id, timestamp)
	CreateBatch(ctx context.Context, historics []*models.CoinHistoric) error

	// GetByCoinAndTimestamp recupera la candela di una coin per un giorno specifico
	GetByCoinAndTimestamp(ctx context.Context, coinID uint, timestamp int64) (*models.CoinHistoric, error)

	// GetLatestByCoinID recupera la candela più recente di una coin
	GetLatestByCoinID(ctx context.Context, coinID uint) (*models.CoinHistoric, error)

	// GetByCoinIDAndRange recupera le candele di una coin in un intervallo
	// temporale, ordinate per timestamp crescente
	GetByCoinIDAndRange(ctx context.Context, coinID uint, from, to int64) ([]*models.CoinHistoric, error)

	// Update aggiorna una candela esistente
	Update(ctx context.Context, historic *models.CoinHistoric) error

	// CountByCoinID conta le candele salvate per una coin
	CountByCoinID(ctx context.Context, coinID uint) (int64, error)
}

// RepositoryManager gestisce tutti i repository
type RepositoryManager interface {
	// Coin restituisce il repository per le coin
	Coin() CoinRepository

	// CoinHistoric restituisce il repository per le candele giornaliere
	CoinHistoric() CoinHistoricRepository

	// Transaction esegue fn all'interno di una transazione: i repository
	// passati a fn operano sulla transazione e un errore causa il rollback
	Transaction(ctx context.Context, fn func(RepositoryManager) error) error
}

package repositories

import (
	"context"
	"errors"

	"github.com/miguelptq/crypto-project/models"

	"gorm.io/gorm"
)

// coinRepository implementa CoinRepository
type coinRepository struct {
	db *gorm.DB
}

// NewCoinRepository crea una nuova istanza di CoinRepository
func NewCoinRepository(db *gorm.DB) CoinRepository {
	return &coinRepository{db: db}
}

// Create crea una nuova coin
func (r *coinRepository) Create(ctx context.Context, coin *models.Coin) error {
	return r.db.WithContext(ctx).Create(coin).Error
}

// GetByID recupera una coin per ID
func (r *coinRepository) GetByID(ctx context.Context, id uint) (*models.Coin, error) {
	var coin models.Coin
	err := r.db.WithContext(ctx).First(&coin, id).Error
	if err != nil {
		return nil, err
	}
	return &coin, nil
}

// GetBySymbol recupera una coin per simbolo
func (r *coinRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Coin, error) {
	var coin models.Coin
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&coin).Error
	if err != nil {
		return nil, err
	}
	return &coin, nil
}

// GetAll recupera tutte le coin tracciate
func (r *coinRepository) GetAll(ctx context.Context) ([]*models.Coin, error) {
	var coins []*models.Coin
	err := r.db.WithContext(ctx).Order("id ASC").Find(&coins).Error
	if err != nil {
		return nil, err
	}
	return coins, nil
}

// Update aggiorna una coin esistente
func (r *coinRepository) Update(ctx context.Context, coin *models.Coin) error {
	return r.db.WithContext(ctx).Save(coin).Error
}

// Exists verifica se una coin esiste
func (r *coinRepository) Exists(ctx context.Context, symbol string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Coin{}).Where("symbol = ?", symbol).Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

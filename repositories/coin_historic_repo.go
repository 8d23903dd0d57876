package repositories

import (
	"context"

	"github.com/miguelptq/crypto-project/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// coinHistoricRepository implementa CoinHistoricRepository
type coinHistoricRepository struct {
	db *gorm.DB
}

// NewCoinHistoricRepository crea una nuova istanza di CoinHistoricRepository
func NewCoinHistoricRepository(db *gorm.DB) CoinHistoricRepository {
	return &coinHistoricRepository{db: db}
}

// Create crea una nuova candela giornaliera
func (r *coinHistoricRepository) Create(ctx context.Context, historic *models.CoinHistoric) error {
	return r.db.WithContext(ctx).Create(historic).Error
}

// CreateBatch inserisce un batch di candele ignorando i duplicati sulla
// chiave naturale (coin_id, timestamp): un re-run parziale non deve mai
// violare l'unicità della coppia
func (r *coinHistoricRepository) CreateBatch(ctx context.Context, historics []*models.CoinHistoric) error {
	if len(historics) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "coin_id"}, {Name: "timestamp"}},
			DoNothing: true,
		}).
		Create(&historics).Error
}

// GetByCoinAndTimestamp recupera la candela di una coin per un giorno specifico
func (r *coinHistoricRepository) GetByCoinAndTimestamp(ctx context.Context, coinID uint, timestamp int64) (*models.CoinHistoric, error) {
	var historic models.CoinHistoric
	err := r.db.WithContext(ctx).
		Where("coin_id = ? AND timestamp = ?", coinID, timestamp).
		First(&historic).Error
	if err != nil {
		return nil, err
	}
	return &historic, nil
}

// GetLatestByCoinID recupera la candela più recente di una coin
func (r *coinHistoricRepository) GetLatestByCoinID(ctx context.Context, coinID uint) (*models.CoinHistoric, error) {
	var historic models.CoinHistoric
	err := r.db.WithContext(ctx).
		Where("coin_id = ?", coinID).
		Order("timestamp DESC").
		First(&historic).Error
	if err != nil {
		return nil, err
	}
	return &historic, nil
}

// GetByCoinIDAndRange recupera le candele di una coin in un intervallo
// temporale, ordinate per timestamp crescente
func (r *coinHistoricRepository) GetByCoinIDAndRange(ctx context.Context, coinID uint, from, to int64) ([]*models.CoinHistoric, error) {
	var historics []*models.CoinHistoric
	err := r.db.WithContext(ctx).
		Where("coin_id = ? AND timestamp >= ? AND timestamp <= ?", coinID, from, to).
		Order("timestamp ASC").
		Find(&historics).Error
	if err != nil {
		return nil, err
	}
	return historics, nil
}

// Update aggiorna una candela esistente
func (r *coinHistoricRepository) Update(ctx context.Context, historic *models.CoinHistoric) error {
	return r.db.WithContext(ctx).Save(historic).Error
}

// CountByCoinID conta le candele salvate per una coin
func (r *coinHistoricRepository) CountByCoinID(ctx context.Context, coinID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CoinHistoric{}).
		Where("coin_id = ?", coinID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Coin rappresenta una criptovaluta tracciata dal sistema
type Coin struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol          string `gorm:"type:varchar(20);not null;uniqueIndex:idx_coin_symbol" json:"symbol"`
	Name            string `gorm:"type:varchar(100);not null" json:"name"`
	ContentCreated  int64  `gorm:"not null" json:"content_created"`
	LastTimeTracked int64  `gorm:"not null" json:"last_time_tracked"`
	HistoryCheck    bool   `gorm:"type:boolean;default:false" json:"history_check"`
	WebhookURL      string `gorm:"type:text;not null" json:"webhook_url"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relazione con CoinHistoric
	Historics []CoinHistoric `gorm:"foreignKey:CoinID" json:"historics,omitempty"`
}

// TableName specifica il nome della tabella per GORM
func (Coin) TableName() string {
	return "coins"
}

// BeforeCreate hook per validazioni prima della creazione
func (c *Coin) BeforeCreate(tx *gorm.DB) error {
	if c.Symbol == "" || c.WebhookURL == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

// String restituisce una rappresentazione stringa della coin
func (c *Coin) String() string {
	return c.Symbol
}

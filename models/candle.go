package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Errori di validazione del ledger orario
var (
	ErrLedgerFull       = errors.New("hourly ledger already contains 24 entries")
	ErrDuplicateHour    = errors.New("hour already present in ledger")
	ErrInvalidHour      = errors.New("hour must be between 0 and 23")
	ErrUnsupportedValue = errors.New("unsupported value type for hourly ledger")
)

// HourlyEntry rappresenta la candela OHLC di una singola ora del giorno.
// Una volta aggiunta al ledger non viene mai modificata.
type HourlyEntry struct {
	Hour  int             `json:"hour"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}

// HourlyLedger rappresenta la sequenza ordinata (append-only) delle candele
// orarie di un giorno, serializzata come blob JSON nella riga giornaliera
type HourlyLedger []HourlyEntry

// Value implementa driver.Valuer per la serializzazione su database
func (l HourlyLedger) Value() (driver.Value, error) {
	if l == nil {
		l = HourlyLedger{}
	}
	return json.Marshal(l)
}

// Scan implementa sql.Scanner per la deserializzazione dal database
func (l *HourlyLedger) Scan(value interface{}) error {
	if value == nil {
		*l = HourlyLedger{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

// LastSavedHour restituisce l'ora più alta presente nel ledger.
// Il secondo valore è false se il ledger è vuoto.
func (l HourlyLedger) LastSavedHour() (int, bool) {
	if len(l) == 0 {
		return 0, false
	}
	last := l[0].Hour
	for _, entry := range l[1:] {
		if entry.Hour > last {
			last = entry.Hour
		}
	}
	return last, true
}

// HasHour verifica se un'ora è già presente nel ledger
func (l HourlyLedger) HasHour(hour int) bool {
	for _, entry := range l {
		if entry.Hour == hour {
			return true
		}
	}
	return false
}

// Append aggiunge nuove entry al ledger rispettando gli invarianti:
// massimo 24 entry per giorno, nessuna ora duplicata, ore valide 0-23.
// Restituisce il ledger aggiornato senza modificare quello originale.
func (l HourlyLedger) Append(entries ...HourlyEntry) (HourlyLedger, error) {
	updated := make(HourlyLedger, len(l), len(l)+len(entries))
	copy(updated, l)
	for _, entry := range entries {
		if entry.Hour < 0 || entry.Hour > 23 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidHour, entry.Hour)
		}
		if updated.HasHour(entry.Hour) {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateHour, entry.Hour)
		}
		if len(updated) >= 24 {
			return nil, ErrLedgerFull
		}
		updated = append(updated, entry)
	}
	return updated, nil
}

// CoinHistoric rappresenta la candela OHLC giornaliera di una coin.
// Il timestamp è sempre allineato alla mezzanotte del fuso orario locale
// configurato; la coppia (coin_id, timestamp) è la chiave naturale.
type CoinHistoric struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CoinID         uint            `gorm:"not null;uniqueIndex:idx_coin_timestamp" json:"coin_id"`
	Open           decimal.Decimal `gorm:"type:numeric;not null" json:"open"`
	High           decimal.Decimal `gorm:"type:numeric;not null" json:"high"`
	Low            decimal.Decimal `gorm:"type:numeric;not null" json:"low"`
	Close          decimal.Decimal `gorm:"type:numeric;not null" json:"close"`
	Timestamp      int64           `gorm:"not null;uniqueIndex:idx_coin_timestamp" json:"timestamp"`
	HourlyHistoric HourlyLedger    `gorm:"type:jsonb" json:"hourly_historic"`

	// Relazione con Coin
	Coin *Coin `gorm:"foreignKey:CoinID" json:"coin,omitempty"`
}

// TableName specifica il nome della tabella per GORM
func (CoinHistoric) TableName() string {
	return "coin_historic"
}

// BeforeCreate hook per validazioni prima della creazione
func (ch *CoinHistoric) BeforeCreate(tx *gorm.DB) error {
	if ch.CoinID == 0 || ch.Timestamp == 0 {
		return gorm.ErrInvalidData
	}
	return nil
}

// IsPlaceholder verifica se la riga è un contenitore creato solo per il
// ledger orario, in attesa dei valori OHLC reali di fine giornata
func (ch *CoinHistoric) IsPlaceholder() bool {
	return ch.Open.IsZero() && ch.High.IsZero() && ch.Low.IsZero() && ch.Close.IsZero()
}

// Day restituisce il timestamp della candela come time.Time nel fuso indicato
func (ch *CoinHistoric) Day(loc *time.Location) time.Time {
	return time.Unix(ch.Timestamp, 0).In(loc)
}

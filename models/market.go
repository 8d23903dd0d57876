package models

import (
	"github.com/shopspring/decimal"
)

// PricePoint rappresenta una singola candela restituita dall'API upstream
type PricePoint struct {
	Time  int64           `json:"time"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}

// IsZero verifica se tutti i valori OHLC sono zero: è la sentinella con cui
// l'upstream segnala l'assenza di dati per quel periodo
func (p PricePoint) IsZero() bool {
	return p.Open.IsZero() && p.High.IsZero() && p.Low.IsZero() && p.Close.IsZero()
}

// HistoricalData rappresenta una pagina di candele storiche con i limiti
// temporali riportati dall'upstream
type HistoricalData struct {
	TimeFrom int64        `json:"time_from"`
	TimeTo   int64        `json:"time_to"`
	Points   []PricePoint `json:"points"`
}

// CoinInfo rappresenta i metadati di una coin restituiti dall'API
type CoinInfo struct {
	FullName        string `json:"full_name"`
	AssetLaunchDate string `json:"asset_launch_date"`
}

// PercentageChange calcola la variazione percentuale tra apertura e chiusura.
// Restituisce zero quando l'apertura è zero per evitare divisioni per zero.
func PercentageChange(open, close decimal.Decimal) decimal.Decimal {
	if open.IsZero() {
		return decimal.Zero
	}
	return close.Sub(open).Div(open).Mul(decimal.NewFromInt(100))
}

package exchange

import (
	"context"
	"fmt"

	"github.com/miguelptq/crypto-project/models"
)

// Exchange definisce l'interfaccia per il provider di dati storici di mercato
type Exchange interface {
	// FetchDailyHistory recupera una pagina di candele giornaliere per una
	// coppia di trading, fino a limit+1 punti che terminano a toTs.
	// Con toTs <= 0 la pagina termina al momento corrente.
	FetchDailyHistory(ctx context.Context, fsym, tsym string, limit int, toTs int64) (*models.HistoricalData, error)

	// FetchHourlyHistory recupera una pagina di candele orarie per una
	// coppia di trading, fino a limit+1 punti che terminano a toTs
	FetchHourlyHistory(ctx context.Context, fsym, tsym string, limit int, toTs int64) (*models.HistoricalData, error)

	// FetchCoinInfo recupera i metadati di una coin (nome completo e data di lancio)
	FetchCoinInfo(ctx context.Context, symbol string) (*models.CoinInfo, error)
}

// APIError rappresenta una risposta di errore dell'API upstream
type APIError struct {
	Message string
}

// Error implementa l'interfaccia error
func (e *APIError) Error() string {
	return fmt.Sprintf("errore API CryptoCompare: %s", e.Message)
}

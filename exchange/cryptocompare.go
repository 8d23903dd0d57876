package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/miguelptq/crypto-project/config"
	"github.com/miguelptq/crypto-project/models"
)

const responseSuccess = "Success"

// CryptoCompareExchange implementa l'interfaccia Exchange per CryptoCompare
type CryptoCompareExchange struct {
	httpClient  *http.Client
	apiKey      string
	dayURL      string
	hourURL     string
	coinInfoURL string
}

// cryptoCompareHistoricResponse rappresenta la risposta delle API histoday/histohour
type cryptoCompareHistoricResponse struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
	Data     struct {
		TimeFrom int64               `json:"TimeFrom"`
		TimeTo   int64               `json:"TimeTo"`
		Data     []models.PricePoint `json:"Data"`
	} `json:"Data"`
}

// cryptoCompareCoinInfoResponse rappresenta la risposta dell'API coinlist
type cryptoCompareCoinInfoResponse struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
	Data     map[string]struct {
		FullName        string `json:"FullName"`
		AssetLaunchDate string `json:"AssetLaunchDate"`
	} `json:"Data"`
}

// NewCryptoCompareExchange crea una nuova istanza di CryptoCompareExchange
func NewCryptoCompareExchange(cfg config.CryptoCompareConfig) *CryptoCompareExchange {
	return &CryptoCompareExchange{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      cfg.APIKey,
		dayURL:      cfg.HistoricDayURL,
		hourURL:     cfg.HistoricHourURL,
		coinInfoURL: cfg.CoinInfoURL,
	}
}

// FetchDailyHistory recupera una pagina di candele giornaliere
func (c *CryptoCompareExchange) FetchDailyHistory(ctx context.Context, fsym, tsym string, limit int, toTs int64) (*models.HistoricalData, error) {
	return c.fetchHistory(ctx, c.dayURL, fsym, tsym, limit, toTs)
}

// FetchHourlyHistory recupera una pagina di candele orarie
func (c *CryptoCompareExchange) FetchHourlyHistory(ctx context.Context, fsym, tsym string, limit int, toTs int64) (*models.HistoricalData, error) {
	return c.fetchHistory(ctx, c.hourURL, fsym, tsym, limit, toTs)
}

// fetchHistory esegue una richiesta paginata alle API storiche di CryptoCompare
func (c *CryptoCompareExchange) fetchHistory(ctx context.Context, baseURL, fsym, tsym string, limit int, toTs int64) (*models.HistoricalData, error) {
	// Crea i parametri della query
	params := url.Values{}
	params.Set("fsym", fsym)
	params.Set("tsym", tsym)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("api_key", c.apiKey)
	if toTs > 0 {
		params.Set("toTs", strconv.FormatInt(toTs, 10))
	}

	// URL completo con parametri
	fullURL := baseURL + "?" + params.Encode()

	// Crea la richiesta HTTP GET
	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("errore nella creazione della richiesta HTTP: %w", err)
	}

	// Esegui la richiesta
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("errore nell'esecuzione della richiesta: %w", err)
	}
	defer resp.Body.Close()

	// Leggi la risposta
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("errore nella lettura della risposta: %w", err)
	}

	// Decodifica la risposta
	var historicResp cryptoCompareHistoricResponse
	if err := json.Unmarshal(body, &historicResp); err != nil {
		return nil, fmt.Errorf("errore nella decodifica della risposta: %w", err)
	}

	// Verifica che la richiesta sia andata a buon fine
	if historicResp.Response != responseSuccess {
		return nil, &APIError{Message: historicResp.Message}
	}

	return &models.HistoricalData{
		TimeFrom: historicResp.Data.TimeFrom,
		TimeTo:   historicResp.Data.TimeTo,
		Points:   historicResp.Data.Data,
	}, nil
}

// FetchCoinInfo recupera i metadati di una coin dall'API coinlist
func (c *CryptoCompareExchange) FetchCoinInfo(ctx context.Context, symbol string) (*models.CoinInfo, error) {
	fullURL := c.coinInfoURL + url.QueryEscape(symbol) + "&api_key=" + url.QueryEscape(c.apiKey)

	// Crea la richiesta HTTP GET
	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("errore nella creazione della richiesta HTTP: %w", err)
	}

	// Esegui la richiesta
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("errore nell'esecuzione della richiesta: %w", err)
	}
	defer resp.Body.Close()

	// Leggi la risposta
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("errore nella lettura della risposta: %w", err)
	}

	// Decodifica la risposta
	var infoResp cryptoCompareCoinInfoResponse
	if err := json.Unmarshal(body, &infoResp); err != nil {
		return nil, fmt.Errorf("errore nella decodifica della risposta: %w", err)
	}

	// Verifica che la richiesta sia andata a buon fine
	if infoResp.Response != responseSuccess {
		return nil, &APIError{Message: infoResp.Message}
	}

	info, ok := infoResp.Data[symbol]
	if !ok {
		return nil, &APIError{Message: fmt.Sprintf("coin non trovata: %s", symbol)}
	}

	return &models.CoinInfo{
		FullName:        info.FullName,
		AssetLaunchDate: info.AssetLaunchDate,
	}, nil
}

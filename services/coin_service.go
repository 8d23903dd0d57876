package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/miguelptq/crypto-project/exchange"
	"github.com/miguelptq/crypto-project/models"
	"github.com/miguelptq/crypto-project/repositories"
)

// CoinService gestisce la logica business per l'onboarding delle coin
type CoinService struct {
	repoManager repositories.RepositoryManager
	market      exchange.Exchange
	historic    *HistoricService
}

// NewCoinService crea una nuova istanza di CoinService
func NewCoinService(repoManager repositories.RepositoryManager, market exchange.Exchange, historic *HistoricService) *CoinService {
	return &CoinService{
		repoManager: repoManager,
		market:      market,
		historic:    historic,
	}
}

// AddCoin registra una nuova coin: risolve nome e data di lancio dall'API di
// metadati, crea il record e avvia il backfill iniziale dello storico
func (s *CoinService) AddCoin(ctx context.Context, symbol, webhookURL string) (*models.Coin, error) {
	if symbol == "" || webhookURL == "" {
		return nil, fmt.Errorf("symbol and webhook URL are required")
	}

	// Verifica che la coin non esista già
	exists, err := s.repoManager.Coin().Exists(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to check coin existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("coin %s already exists", symbol)
	}

	// Risolvi i metadati della coin
	info, err := s.market.FetchCoinInfo(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coin info: %w", err)
	}

	launchDate, err := time.ParseInLocation("2006-01-02", info.AssetLaunchDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid asset launch date %q: %w", info.AssetLaunchDate, err)
	}

	coin := &models.Coin{
		Symbol:          symbol,
		Name:            info.FullName,
		ContentCreated:  launchDate.Unix(),
		LastTimeTracked: launchDate.Unix(),
		WebhookURL:      webhookURL,
	}

	if err := s.repoManager.Coin().Create(ctx, coin); err != nil {
		return nil, fmt.Errorf("failed to create coin: %w", err)
	}

	log.Printf("coin %s registrata, avvio backfill iniziale", coin.Symbol)

	// Backfill iniziale: eventuali errori sono già gestiti e loggati dal
	// motore di sincronizzazione, il ciclo schedulato riproverà
	if err := s.historic.SyncDailyHistory(ctx, coin); err != nil {
		log.Printf("backfill iniziale interrotto per %s: %v", coin.Symbol, err)
	}

	return coin, nil
}

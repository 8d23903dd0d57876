package worker

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/miguelptq/crypto-project/models"
	"github.com/miguelptq/crypto-project/repositories"
	"github.com/miguelptq/crypto-project/services"
	"github.com/miguelptq/crypto-project/timeutil"

	"gorm.io/gorm"
)

// HistoricSyncer definisce le operazioni di sincronizzazione usate dal worker
type HistoricSyncer interface {
	SyncDailyHistory(ctx context.Context, coin *models.Coin) error
	SyncHourlyHistory(ctx context.Context, coin *models.Coin) error
}

// CoinTrackerWorker rappresenta il worker che a ogni ciclo schedulato decide,
// coin per coin, se eseguire il backfill completo dello storico giornaliero
// o il solo aggiornamento orario incrementale
type CoinTrackerWorker struct {
	ctx         context.Context
	cancel      context.CancelFunc
	repoManager repositories.RepositoryManager
	historic    HistoricSyncer
	loc         *time.Location
	clock       services.Clock
}

// NewCoinTrackerWorker crea una nuova istanza del worker
func NewCoinTrackerWorker(repoManager repositories.RepositoryManager, historic HistoricSyncer, loc *time.Location, clock services.Clock) *CoinTrackerWorker {
	ctx, cancel := context.WithCancel(context.Background())

	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = services.SystemClock()
	}

	return &CoinTrackerWorker{
		ctx:         ctx,
		cancel:      cancel,
		repoManager: repoManager,
		historic:    historic,
		loc:         loc,
		clock:       clock,
	}
}

// ExecuteCycle esegue un ciclo di tracciamento: le coin vengono processate
// una alla volta, in sequenza, e un errore su una coin non blocca le altre
func (w *CoinTrackerWorker) ExecuteCycle() {
	coins, err := w.repoManager.Coin().GetAll(w.ctx)
	if err != nil {
		log.Printf("❌ Errore caricamento coin: %v", err)
		return
	}

	if len(coins) == 0 {
		log.Println("⚠️  Nessuna coin tracciata")
		return
	}

	now := w.clock.Now().In(w.loc)
	previousDay := timeutil.DayStart(now).AddDate(0, 0, -1).Unix()

	for _, coin := range coins {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		if w.needsFullBackfill(coin.ID, coin.HistoryCheck, previousDay) {
			log.Printf("📅 %s: backfill giornaliero completo", coin.Symbol)
			if err := w.historic.SyncDailyHistory(w.ctx, coin); err != nil {
				log.Printf("❌ %s: backfill interrotto: %v", coin.Symbol, err)
			}
		} else {
			log.Printf("🕐 %s: aggiornamento orario", coin.Symbol)
			if err := w.historic.SyncHourlyHistory(w.ctx, coin); err != nil {
				log.Printf("❌ %s: aggiornamento orario interrotto: %v", coin.Symbol, err)
			}
		}
	}
}

// needsFullBackfill decide la modalità di sincronizzazione: backfill completo
// se la coin non ha candele, se il backfill non è mai stato completato o se
// l'ultima candela è più vecchia di ieri; altrimenti aggiornamento orario
func (w *CoinTrackerWorker) needsFullBackfill(coinID uint, historyCheck bool, previousDay int64) bool {
	latest, err := w.repoManager.CoinHistoric().GetLatestByCoinID(w.ctx, coinID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ Errore lettura ultima candela per coin %d: %v", coinID, err)
		}
		return true
	}

	return !historyCheck || latest.Timestamp < previousDay
}

// Stop ferma il worker e pulisce le risorse
func (w *CoinTrackerWorker) Stop() {
	w.cancel()
}

// GetName restituisce il nome del worker per identificazione
func (w *CoinTrackerWorker) GetName() string {
	return "coin-tracker"
}

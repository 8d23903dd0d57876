package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/miguelptq/crypto-project/exchange"
	"github.com/miguelptq/crypto-project/models"
	"github.com/miguelptq/crypto-project/notifier"
	"github.com/miguelptq/crypto-project/repositories"
	"github.com/miguelptq/crypto-project/timeutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const secondsPerDay = 24 * 3600

// Clock fornisce il tempo corrente; iniettabile nei test
type Clock interface {
	Now() time.Time
}

// systemClock implementa Clock con l'orologio di sistema
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock restituisce il Clock basato sull'orologio di sistema
func SystemClock() Clock { return systemClock{} }

// HistoricConfig contiene i parametri del motore di sincronizzazione storica
type HistoricConfig struct {
	QuoteCurrency string
	PageLimit     int
	RequestDelay  time.Duration
	Location      *time.Location
	Clock         Clock
}

// HistoricService gestisce la sincronizzazione dello storico di una coin:
// backfill completo delle candele giornaliere e aggiornamento incrementale
// del ledger orario del giorno corrente
type HistoricService struct {
	repoManager repositories.RepositoryManager
	market      exchange.Exchange
	notifier    notifier.Notifier
	quote       string
	pageLimit   int
	loc         *time.Location
	clock       Clock
	limiter     *rate.Limiter
}

// NewHistoricService crea una nuova istanza di HistoricService
func NewHistoricService(repoManager repositories.RepositoryManager, market exchange.Exchange, notif notifier.Notifier, cfg HistoricConfig) *HistoricService {
	if cfg.QuoteCurrency == "" {
		cfg.QuoteCurrency = "USD"
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 1500
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}

	// Un token ogni RequestDelay, burst 1: il limiter impone il ritardo di
	// cortesia tra tutte le chiamate upstream. Il token iniziale viene
	// consumato subito, così anche la prima richiesta attende.
	limiter := rate.NewLimiter(rate.Every(cfg.RequestDelay), 1)
	limiter.Allow()

	return &HistoricService{
		repoManager: repoManager,
		market:      market,
		notifier:    notif,
		quote:       cfg.QuoteCurrency,
		pageLimit:   cfg.PageLimit,
		loc:         cfg.Location,
		clock:       cfg.Clock,
		limiter:     limiter,
	}
}

// SyncDailyHistory esegue il backfill completo delle candele giornaliere di
// una coin, paginando all'indietro dal presente fino a coprire la finestra
// mancante o a incontrare la sentinella di fine dati. Gli errori vengono
// loggati e non propagati: i flag di completamento restano invariati e il
// ciclo schedulato successivo riprova.
func (s *HistoricService) SyncDailyHistory(ctx context.Context, coin *models.Coin) error {
	runID := uuid.New().String()[:8]
	now := s.clock.Now().In(s.loc)
	todayUnix := timeutil.DayStart(now).Unix()

	totalDays := int((todayUnix - coin.LastTimeTracked) / secondsPerDay)
	if totalDays <= 0 {
		log.Printf("[sync %s] %s: nessun giorno mancante", runID, coin.Symbol)
		return nil
	}

	log.Printf("[sync %s] %s: backfill di %d giorni", runID, coin.Symbol, totalDays)

	historicRepo := s.repoManager.CoinHistoric()

	toTs := now.Unix()
	validCount := 0
	invalidSeen := false
	upstreamFailed := false

	for totalDays > 0 && !invalidSeen {
		// Ritardo di cortesia prima di ogni pagina
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		daysToFetch := totalDays
		if daysToFetch > s.pageLimit {
			daysToFetch = s.pageLimit
		}

		// L'API restituisce limit+1 punti
		data, err := s.market.FetchDailyHistory(ctx, coin.Symbol, s.quote, daysToFetch-1, toTs)
		if err != nil {
			log.Printf("[sync %s] %s: errore upstream, pagine già salvate mantenute: %v", runID, coin.Symbol, err)
			upstreamFailed = true
			break
		}

		// Ordina i punti per tempo decrescente
		points := make([]models.PricePoint, len(data.Points))
		copy(points, data.Points)
		sort.Slice(points, func(i, j int) bool { return points[i].Time > points[j].Time })

		batch := make([]*models.CoinHistoric, 0, len(points))
		for _, point := range points {
			dayUnix := timeutil.LocalDayStartUnix(point.Time, s.loc)

			// Il giorno corrente non è ancora una candela chiusa
			if dayUnix == todayUnix {
				continue
			}

			// La sentinella tutta-zero segnala che non esiste altro storico:
			// ferma la paginazione senza sollevare errori
			if point.IsZero() {
				invalidSeen = true
				continue
			}

			validCount++
			batch = append(batch, &models.CoinHistoric{
				CoinID:         coin.ID,
				Open:           point.Open,
				High:           point.High,
				Low:            point.Low,
				Close:          point.Close,
				Timestamp:      dayUnix,
				HourlyHistoric: models.HourlyLedger{},
			})
		}

		if err := historicRepo.CreateBatch(ctx, batch); err != nil {
			log.Printf("[sync %s] %s: errore salvataggio batch: %v", runID, coin.Symbol, err)
			return nil
		}

		totalDays -= daysToFetch
		toTs = data.TimeFrom
	}

	// Dopo un errore upstream i flag di completamento restano invariati: il
	// ciclo successivo riparte dalla stessa finestra
	if upstreamFailed {
		return nil
	}

	// Controllo di completamento "almeno": tollera righe preesistenti
	// lasciate da un run parziale precedente
	persisted, err := historicRepo.CountByCoinID(ctx, coin.ID)
	if err != nil {
		log.Printf("[sync %s] %s: errore conteggio candele: %v", runID, coin.Symbol, err)
		return nil
	}

	if persisted >= int64(validCount) {
		coin.HistoryCheck = true
		coin.LastTimeTracked = todayUnix
		if err := s.repoManager.Coin().Update(ctx, coin); err != nil {
			log.Printf("[sync %s] %s: failed to update completion flags: %v", runID, coin.Symbol, err)
			return nil
		}

		s.notify(ctx, notifier.Message{
			Content:    fmt.Sprintf("%s historic was inserted successfully!", coin.Name),
			WebhookURL: coin.WebhookURL,
			Username:   coin.Name,
			Category:   "historic",
		})
		log.Printf("[sync %s] %s: backfill completato (%d candele valide, %d persistite)", runID, coin.Symbol, validCount, persisted)
	}

	return nil
}

// SyncHourlyHistory aggiunge al ledger orario del giorno le ore appena
// chiuse. L'intero aggiornamento avviene in una transazione: qualsiasi
// errore viene loggato e annullato senza propagarsi, lasciando il ledger
// allo stato precedente per il ciclo successivo.
func (s *HistoricService) SyncHourlyHistory(ctx context.Context, coin *models.Coin) error {
	err := s.repoManager.Transaction(ctx, func(txRepos repositories.RepositoryManager) error {
		return s.topUpHourly(ctx, txRepos, coin)
	})
	if err != nil {
		log.Printf("aggiornamento orario fallito per %s, ledger invariato: %v", coin.Symbol, err)
	}
	return nil
}

// topUpHourly esegue l'aggiornamento orario all'interno della transazione
func (s *HistoricService) topUpHourly(ctx context.Context, repos repositories.RepositoryManager, coin *models.Coin) error {
	now := s.clock.Now().In(s.loc)
	startOfCurrentHour := timeutil.HourStart(now)

	// Il giorno di riferimento è quello dell'ultima ora chiusa: subito dopo
	// mezzanotte il ledger da completare è ancora quello di ieri
	lastClosed := startOfCurrentHour.Add(-time.Hour)
	anchorDay := timeutil.DayStart(lastClosed)
	anchorUnix := anchorDay.Unix()

	historicRepo := repos.CoinHistoric()

	historic, err := historicRepo.GetByCoinAndTimestamp(ctx, coin.ID, anchorUnix)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load daily candle: %w", err)
		}

		// Placeholder: contenitore per il ledger orario in attesa dei
		// valori OHLC definitivi di fine giornata
		historic = &models.CoinHistoric{
			CoinID:         coin.ID,
			Open:           decimal.Zero,
			High:           decimal.Zero,
			Low:            decimal.Zero,
			Close:          decimal.Zero,
			Timestamp:      anchorUnix,
			HourlyHistoric: models.HourlyLedger{},
		}
		created = true
	}

	startFrom := anchorDay
	lastSavedHour, hasHours := historic.HourlyHistoric.LastSavedHour()
	if hasHours {
		startFrom = anchorDay.Add(time.Duration(lastSavedHour+1) * time.Hour)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	// La pagina termina all'inizio dell'ora corrente: l'ora ancora aperta
	// non viene mai richiesta
	data, err := s.market.FetchHourlyHistory(ctx, coin.Symbol, s.quote, 24, startOfCurrentHour.Unix())
	if err != nil {
		return fmt.Errorf("failed to fetch hourly data: %w", err)
	}

	// Ordina i punti per tempo crescente
	points := make([]models.PricePoint, len(data.Points))
	copy(points, data.Points)
	sort.Slice(points, func(i, j int) bool { return points[i].Time < points[j].Time })

	accepted := make([]models.HourlyEntry, 0, len(points))
	for _, point := range points {
		local := time.Unix(point.Time, 0).In(s.loc)
		if local.Before(startFrom) || !local.Before(startOfCurrentHour) {
			continue
		}

		hour := local.Hour()
		if historic.HourlyHistoric.HasHour(hour) || containsHour(accepted, hour) {
			continue
		}

		// L'arrivo dell'ora 23 segnala che il giorno è chiuso: i valori
		// giornalieri definitivi sostituiscono quelli del placeholder
		if hour == 23 {
			if err := s.finalizeDailyCandle(ctx, coin, historic, anchorDay); err != nil {
				log.Printf("errore chiusura candela giornaliera per %s: %v", coin.Symbol, err)
			}
		}

		accepted = append(accepted, models.HourlyEntry{
			Hour:  hour,
			Open:  point.Open,
			High:  point.High,
			Low:   point.Low,
			Close: point.Close,
		})
	}

	if len(accepted) == 0 {
		log.Printf("nessun nuovo dato orario per %s", coin.Symbol)
		return nil
	}

	updated, err := historic.HourlyHistoric.Append(accepted...)
	if err != nil {
		return fmt.Errorf("failed to append hourly entries: %w", err)
	}
	historic.HourlyHistoric = updated

	if created {
		if err := historicRepo.Create(ctx, historic); err != nil {
			return fmt.Errorf("failed to create daily candle: %w", err)
		}
	} else {
		if err := historicRepo.Update(ctx, historic); err != nil {
			return fmt.Errorf("failed to update daily candle: %w", err)
		}
	}

	// Una sola notifica per ciclo, sul movimento dell'ultima ora accettata
	last := accepted[len(accepted)-1]
	s.notify(ctx, notifier.Message{
		Content:    movementContent(last.Open, last.Close),
		WebhookURL: coin.WebhookURL,
		Username:   coin.Name,
		Category:   "historic",
		Embed:      true,
		Color:      movementColor(last.Open, last.Close),
		Hour:       last.Hour,
	})

	log.Printf("salvate %d candele orarie per %s", len(accepted), coin.Symbol)
	return nil
}

// finalizeDailyCandle recupera i valori OHLC definitivi del giorno appena
// chiuso con una piccola richiesta giornaliera supplementare, sovrascrive il
// placeholder e invia la notifica di riepilogo giornaliero
func (s *HistoricService) finalizeDailyCandle(ctx context.Context, coin *models.Coin, historic *models.CoinHistoric, day time.Time) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	data, err := s.market.FetchDailyHistory(ctx, coin.Symbol, s.quote, 4, 0)
	if err != nil {
		return err
	}

	dayUnix := day.Unix()
	for _, point := range data.Points {
		if timeutil.LocalDayStartUnix(point.Time, s.loc) != dayUnix {
			continue
		}

		historic.Open = point.Open
		historic.High = point.High
		historic.Low = point.Low
		historic.Close = point.Close

		s.notify(ctx, notifier.Message{
			Content:    "Daily Resume -> " + movementContent(point.Open, point.Close),
			WebhookURL: coin.WebhookURL,
			Username:   coin.Name,
			Category:   "historic",
			Embed:      true,
			Color:      movementColor(point.Open, point.Close),
			Daily:      true,
		})
		return nil
	}

	return fmt.Errorf("nessuna candela giornaliera definitiva per %s", day.Format("2006-01-02"))
}

// notify consegna una notifica loggando l'eventuale errore senza propagarlo
func (s *HistoricService) notify(ctx context.Context, msg notifier.Message) {
	if err := s.notifier.Send(ctx, msg); err != nil {
		log.Printf("errore invio notifica per %s: %v", msg.Username, err)
	}
}

// movementContent formatta il messaggio di variazione prezzo tra apertura e chiusura
func movementContent(open, close decimal.Decimal) string {
	change := models.PercentageChange(open, close)
	switch {
	case open.GreaterThan(close):
		return fmt.Sprintf("Open: %s, Close: %s. Price dropped %s%%", open, close, change.StringFixed(2))
	case open.LessThan(close):
		return fmt.Sprintf("Open: %s, Close: %s. Price increased %s%%", open, close, change.StringFixed(2))
	default:
		return fmt.Sprintf("Open: %s, Close: %s. No change in price", open, close)
	}
}

// movementColor mappa la direzione del movimento sul colore dell'embed
func movementColor(open, close decimal.Decimal) string {
	switch {
	case open.GreaterThan(close):
		return "red"
	case open.LessThan(close):
		return "green"
	default:
		return "yellow"
	}
}

// containsHour verifica se un'ora è già presente tra le entry accettate
func containsHour(entries []models.HourlyEntry, hour int) bool {
	for _, entry := range entries {
		if entry.Hour == hour {
			return true
		}
	}
	return false
}

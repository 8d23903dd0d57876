package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/miguelptq/crypto-project/models"
	"github.com/miguelptq/crypto-project/repositories"
	"github.com/miguelptq/crypto-project/timeutil"

	"github.com/shopspring/decimal"
)

// ReportInterval rappresenta la granularità di aggregazione di un report
type ReportInterval string

const (
	IntervalDaily   ReportInterval = "daily"
	IntervalMonthly ReportInterval = "monthly"
	IntervalYearly  ReportInterval = "yearly"
)

// ReportRow rappresenta una riga del report: apertura del primo giorno del
// periodo, chiusura dell'ultimo e variazione percentuale
type ReportRow struct {
	Period string
	Open   decimal.Decimal
	Close  decimal.Decimal
	Change decimal.Decimal
}

// ReportService genera report di apertura/chiusura per intervalli di date
type ReportService struct {
	repoManager repositories.RepositoryManager
	loc         *time.Location
}

// NewReportService crea una nuova istanza di ReportService
func NewReportService(repoManager repositories.RepositoryManager, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		repoManager: repoManager,
		loc:         loc,
	}
}

// GenerateReport produce le righe del report per una coin nell'intervallo
// [from, to], aggregate alla granularità richiesta
func (s *ReportService) GenerateReport(ctx context.Context, symbol string, from, to time.Time, interval ReportInterval) ([]ReportRow, error) {
	coin, err := s.repoManager.Coin().GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to load coin %s: %w", symbol, err)
	}

	fromUnix := timeutil.DayStart(from.In(s.loc)).Unix()
	toUnix := timeutil.DayStart(to.In(s.loc)).Unix()

	historics, err := s.repoManager.CoinHistoric().GetByCoinIDAndRange(ctx, coin.ID, fromUnix, toUnix)
	if err != nil {
		return nil, fmt.Errorf("failed to load candles: %w", err)
	}

	// Aggrega per periodo mantenendo l'ordine cronologico: apertura del
	// primo giorno del periodo, chiusura dell'ultimo
	var rows []ReportRow
	index := make(map[string]int)
	for _, historic := range historics {
		key := s.periodKey(historic.Timestamp, interval)
		if i, ok := index[key]; ok {
			rows[i].Close = historic.Close
			continue
		}
		index[key] = len(rows)
		rows = append(rows, ReportRow{
			Period: key,
			Open:   historic.Open,
			Close:  historic.Close,
		})
	}

	for i := range rows {
		rows[i].Change = models.PercentageChange(rows[i].Open, rows[i].Close)
	}

	return rows, nil
}

// periodKey restituisce la chiave di aggregazione di un timestamp
func (s *ReportService) periodKey(unix int64, interval ReportInterval) string {
	day := time.Unix(unix, 0).In(s.loc)
	switch interval {
	case IntervalMonthly:
		return day.Format("2006-01")
	case IntervalYearly:
		return day.Format("2006")
	default:
		return day.Format("2006-01-02")
	}
}

// WriteCSV esporta le righe del report in un file CSV
func (s *ReportService) WriteCSV(path string, rows []ReportRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Date", "Open", "Close", "Change %"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Period,
			row.Open.String(),
			row.Close.String(),
			row.Change.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	return writer.Error()
}

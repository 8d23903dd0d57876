package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/miguelptq/crypto-project/config"
	"github.com/miguelptq/crypto-project/database"
	"github.com/miguelptq/crypto-project/repositories"
	"github.com/miguelptq/crypto-project/services"
)

func main() {
	symbol := flag.String("symbol", "", "Simbolo della coin (es: BTC)")
	from := flag.String("from", "", "Data di inizio (gg/mm/aaaa)")
	to := flag.String("to", "", "Data di fine (gg/mm/aaaa)")
	interval := flag.String("interval", "daily", "Intervallo di aggregazione: daily, monthly, yearly")
	out := flag.String("out", "", "Percorso del file CSV di output")
	flag.Parse()

	if *symbol == "" || *from == "" || *to == "" {
		flag.Usage()
		log.Fatal("symbol, from e to sono obbligatori")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Errore nel caricamento della configurazione:", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Errore nella risoluzione del fuso orario:", err)
	}

	startDate, err := time.ParseInLocation("02/01/2006", *from, loc)
	if err != nil {
		log.Fatalf("Formato data non valido %q, usare gg/mm/aaaa", *from)
	}
	endDate, err := time.ParseInLocation("02/01/2006", *to, loc)
	if err != nil {
		log.Fatalf("Formato data non valido %q, usare gg/mm/aaaa", *to)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatalf("ERRORE CRITICO: Impossibile inizializzare database: %v", err)
	}
	defer database.Close(db)

	repoManager := repositories.NewRepositoryManager(db)
	reportService := services.NewReportService(repoManager, loc)

	rows, err := reportService.GenerateReport(context.Background(), strings.ToUpper(*symbol), startDate, endDate, services.ReportInterval(*interval))
	if err != nil {
		log.Fatalf("Errore generazione report: %v", err)
	}

	filename := *out
	if filename == "" {
		filename = fmt.Sprintf("coin_data_%s.csv", time.Now().In(loc).Format("2006-01-02"))
	}

	if err := reportService.WriteCSV(filename, rows); err != nil {
		log.Fatalf("Errore scrittura CSV: %v", err)
	}

	log.Printf("✅ Report %s: %d righe scritte in %s", strings.ToUpper(*symbol), len(rows), filename)
}

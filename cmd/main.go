package main

import (
	"log"

	"github.com/miguelptq/crypto-project/config"
	"github.com/miguelptq/crypto-project/database"
	"github.com/miguelptq/crypto-project/exchange"
	"github.com/miguelptq/crypto-project/notifier"
	"github.com/miguelptq/crypto-project/repositories"
	"github.com/miguelptq/crypto-project/services"
	"github.com/miguelptq/crypto-project/worker"
)

func main() {
	// Carica configurazioni
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Errore nel caricamento della configurazione:", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Errore nella risoluzione del fuso orario:", err)
	}

	log.Printf("Configurazione caricata (timezone: %s, schedule: %s)", cfg.Timezone, cfg.Scheduler.CronSchedule)
	log.Printf("API Key CryptoCompare configurata: %t", cfg.CryptoCompare.APIKey != "")

	// Inizializza database ed esegui le migrazioni
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatalf("ERRORE CRITICO: Impossibile inizializzare database: %v", err)
	}
	defer database.Close(db)

	// Crea repository manager e servizi
	repoManager := repositories.NewRepositoryManager(db)
	market := exchange.NewCryptoCompareExchange(cfg.CryptoCompare)
	discordNotifier := notifier.NewDiscordNotifier()

	historicService := services.NewHistoricService(repoManager, market, discordNotifier, services.HistoricConfig{
		QuoteCurrency: cfg.CryptoCompare.QuoteCurrency,
		PageLimit:     cfg.CryptoCompare.PageLimit,
		RequestDelay:  cfg.CryptoCompare.RequestDelay,
		Location:      loc,
	})

	// Registra il worker di tracciamento sullo scheduler cron
	manager := worker.NewWorkerManager()
	tracker := worker.NewCoinTrackerWorker(repoManager, historicService, loc, nil)

	trackerConfig := &worker.WorkerConfig{
		Name:        tracker.GetName(),
		Schedule:    cfg.Scheduler.CronSchedule,
		Worker:      tracker,
		Enabled:     true,
		Description: "Sincronizzazione storico e ledger orario delle coin tracciate",
	}

	if err := manager.RegisterWorker(trackerConfig); err != nil {
		log.Fatalf("ERRORE CRITICO: Impossibile registrare il worker: %v", err)
	}

	manager.Start()

	log.Println("✅ Sistema avviato. Premi Ctrl+C per fermare.")

	// Mantieni il programma in esecuzione
	select {}
}

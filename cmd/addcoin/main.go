package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/miguelptq/crypto-project/config"
	"github.com/miguelptq/crypto-project/database"
	"github.com/miguelptq/crypto-project/exchange"
	"github.com/miguelptq/crypto-project/notifier"
	"github.com/miguelptq/crypto-project/repositories"
	"github.com/miguelptq/crypto-project/services"
)

func main() {
	symbol := flag.String("symbol", "", "Simbolo della coin da registrare (es: BTC)")
	webhook := flag.String("webhook", "", "URL del webhook Discord per le notifiche")
	flag.Parse()

	if *symbol == "" || *webhook == "" {
		flag.Usage()
		log.Fatal("symbol e webhook sono obbligatori")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Errore nel caricamento della configurazione:", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Errore nella risoluzione del fuso orario:", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatalf("ERRORE CRITICO: Impossibile inizializzare database: %v", err)
	}
	defer database.Close(db)

	repoManager := repositories.NewRepositoryManager(db)
	market := exchange.NewCryptoCompareExchange(cfg.CryptoCompare)

	historicService := services.NewHistoricService(repoManager, market, notifier.NewDiscordNotifier(), services.HistoricConfig{
		QuoteCurrency: cfg.CryptoCompare.QuoteCurrency,
		PageLimit:     cfg.CryptoCompare.PageLimit,
		RequestDelay:  cfg.CryptoCompare.RequestDelay,
		Location:      loc,
	})
	coinService := services.NewCoinService(repoManager, market, historicService)

	coin, err := coinService.AddCoin(context.Background(), strings.ToUpper(*symbol), *webhook)
	if err != nil {
		log.Fatalf("Errore registrazione coin: %v", err)
	}

	log.Printf("✅ %s (%s) registrata con successo", coin.Name, coin.Symbol)
}

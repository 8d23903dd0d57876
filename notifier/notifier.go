package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Colori per gli embed Discord
var colorMap = map[string]int{
	"red":    15158332,
	"green":  3066993,
	"yellow": 16776960,
}

// defaultColor è il colore neutro usato quando non è indicato un colore noto
const defaultColor = 16777215

// Icone avatar per categoria di messaggio
var iconList = map[string]string{
	"plus":     "https://as2.ftcdn.net/v2/jpg/02/22/71/79/1000_F_222717975_8TfDJLKSAjUmukqhJFcfrhGaNP9xaePZ.jpg",
	"historic": "https://cdn-icons-png.flaticon.com/512/2961/2961948.png",
}

// Message rappresenta una notifica da consegnare a un webhook
type Message struct {
	Content    string
	WebhookURL string
	Username   string
	Category   string
	Embed      bool
	Color      string
	Hour       int
	Daily      bool
}

// Notifier definisce l'interfaccia per la consegna delle notifiche
type Notifier interface {
	// Send consegna un messaggio al webhook di destinazione.
	// La consegna è fire-and-forget: un errore va loggato dal chiamante,
	// mai propagato alle operazioni di sincronizzazione.
	Send(ctx context.Context, msg Message) error
}

// DiscordNotifier implementa Notifier per i webhook Discord
type DiscordNotifier struct {
	httpClient *http.Client
}

// discordEmbed rappresenta un embed del payload webhook Discord
type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

// discordPayload rappresenta il payload del webhook Discord
type discordPayload struct {
	Content   string         `json:"content,omitempty"`
	Username  string         `json:"username"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []discordEmbed `json:"embeds,omitempty"`
}

// NewDiscordNotifier crea una nuova istanza di DiscordNotifier
func NewDiscordNotifier() *DiscordNotifier {
	return &DiscordNotifier{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Send consegna un messaggio al webhook Discord
func (n *DiscordNotifier) Send(ctx context.Context, msg Message) error {
	payload := discordPayload{
		Username:  msg.Username,
		AvatarURL: iconList[msg.Category],
	}

	if msg.Embed {
		var title string
		if msg.Daily {
			title = fmt.Sprintf("%s Daily Update", msg.Username)
		} else {
			title = fmt.Sprintf("%s Hourly Update at %02d:00", msg.Username, msg.Hour)
		}

		color, ok := colorMap[msg.Color]
		if !ok {
			color = defaultColor
		}

		payload.Embeds = []discordEmbed{
			{
				Title:       title,
				Description: msg.Content,
				Color:       color,
			},
		}
	} else {
		payload.Content = msg.Content
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("errore nella serializzazione del payload: %w", err)
	}

	// Crea la richiesta HTTP
	req, err := http.NewRequestWithContext(ctx, "POST", msg.WebhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("errore nella creazione della richiesta HTTP: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Esegui la richiesta
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("errore nell'esecuzione della richiesta: %w", err)
	}
	defer resp.Body.Close()

	// Discord risponde 204 No Content quando la consegna va a buon fine
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("consegna webhook fallita: stato %d", resp.StatusCode)
	}

	return nil
}

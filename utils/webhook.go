package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"learnhub/config"
)

var webhookClient = resty.New().SetTimeout(10 * time.Second)

// NotifyEvent posts a platform event to the configured webhook URL.
// Delivery is fire-and-forget; failures are logged and never retried.
func NotifyEvent(event string, payload map[string]interface{}) {
	url := config.AppConfig.WebhookURL
	if url == "" {
		return
	}

	body := map[string]interface{}{
		"event":     event,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"data":      payload,
	}

	go func() {
		resp, err := webhookClient.R().
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(url)
		if err != nil {
			log.Printf("[WEBHOOK] Error delivering %s: %v", event, err)
			return
		}
		if resp.StatusCode() >= 400 {
			log.Printf("[WEBHOOK] Endpoint rejected %s: %d", event, resp.StatusCode())
		}
	}()
}

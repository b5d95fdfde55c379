package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/karthikeyanvk18/Clerro/internal/log"
)

// Pusher sends push notifications through a OneSignal-compatible REST API.
// The user ID doubles as the external user ID registered by the mobile app.
type Pusher struct {
	apiURL  string
	appID   string
	apiKey  string
	client  *http.Client
	logger  *log.Logger
	enabled bool
}

type PusherConfig struct {
	APIURL string
	AppID  string
	APIKey string
}

func NewPusher(cfg PusherConfig, logger *log.Logger) *Pusher {
	return &Pusher{
		apiURL:  cfg.APIURL,
		appID:   cfg.AppID,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.WithComponent(log.ComponentNotify),
		enabled: cfg.AppID != "" && cfg.APIKey != "",
	}
}

type pushRequest struct {
	AppID            string            `json:"app_id"`
	ExternalUserIDs  []string          `json:"include_external_user_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	NotificationType string            `json:"data_type,omitempty"`
}

// Send pushes a notification to a single user. Disabled pushers drop the
// message without error so dispatch keeps working in dev setups.
func (p *Pusher) Send(ctx context.Context, userID, title, message, notifType string) error {
	if !p.enabled {
		p.logger.Debug("Push sending disabled, dropping message", log.FieldUserID, userID)
		return nil
	}

	payload := pushRequest{
		AppID:            p.appID,
		ExternalUserIDs:  []string{userID},
		Headings:         map[string]string{"en": title},
		Contents:         map[string]string{"en": message},
		NotificationType: notifType,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push API returned %d: %s", resp.StatusCode, detail)
	}

	p.logger.Info("Push sent", log.FieldUserID, userID, "type", notifType)
	return nil
}

package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/config"
)

// Notification is one push message to a set of device subscriptions.
type Notification struct {
	Title     string
	Message   string
	PlayerIDs []string
}

// Client is the narrow interface to the push provider. Send returns the
// subscription ids the provider reported invalid so callers can prune them;
// delivery beyond that is the provider's concern.
type Client interface {
	Send(ctx context.Context, note Notification) (invalidIDs []string, err error)
}

type httpClient struct {
	endpoint string
	appID    string
	apiKey   string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient builds a push client against the configured provider endpoint.
func NewClient(cfg config.PushConfig, logger *zap.Logger) Client {
	return &httpClient{
		endpoint: cfg.Endpoint,
		appID:    cfg.AppID,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type sendRequest struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
}

type sendResponse struct {
	ID     string `json:"id"`
	Errors struct {
		InvalidPlayerIDs []string `json:"invalid_player_ids"`
	} `json:"errors"`
}

func (c *httpClient) Send(ctx context.Context, note Notification) ([]string, error) {
	if len(note.PlayerIDs) == 0 {
		return nil, nil
	}
	if c.appID == "" || c.apiKey == "" {
		c.logger.Warn("push credentials not configured; skipping send")
		return nil, nil
	}

	body, err := json.Marshal(sendRequest{
		AppID:            c.appID,
		IncludePlayerIDs: note.PlayerIDs,
		Headings:         map[string]string{"en": note.Title},
		Contents:         map[string]string{"en": note.Message},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return parsed.Errors.InvalidPlayerIDs, fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	c.logger.Info("push sent",
		zap.String("notification_id", parsed.ID),
		zap.Int("recipients", len(note.PlayerIDs)),
		zap.Int("invalid", len(parsed.Errors.InvalidPlayerIDs)))
	return parsed.Errors.InvalidPlayerIDs, nil
}

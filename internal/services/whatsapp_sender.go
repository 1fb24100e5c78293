package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assinazap/internal/models/db_models"

	"github.com/go-resty/resty/v2"
)

// IWhatsAppSender sends one message to a normalized JID and returns the
// raw provider body, which callers persist verbatim. One attempt per
// call; retries are deliberately not this layer's job.
type IWhatsAppSender interface {
	SendText(ctx context.Context, jid, text string) ([]byte, error)
	SendMedia(ctx context.Context, jid, mediaURL string, mediaType db_models.MessageType) ([]byte, error)
}

type EvolutionConfig struct {
	BaseURL  string // e.g. https://evolution.example.com
	Instance string
	APIKey   string
	Timeout  time.Duration
}

type evolutionSender struct {
	client   *resty.Client
	instance string
}

func NewEvolutionSender(cfg EvolutionConfig) IWhatsAppSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &evolutionSender{client: client, instance: cfg.Instance}
}

func (s *evolutionSender) SendText(ctx context.Context, jid, text string) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"number": jid,
			"text":   text,
		}).
		Post("/message/sendText/" + s.instance)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return resp.Body(), fmt.Errorf("evolution sendText: status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

func (s *evolutionSender) SendMedia(ctx context.Context, jid, mediaURL string, mediaType db_models.MessageType) ([]byte, error) {
	mimetype := "image/jpeg"
	if mediaType == db_models.MessageTypeVideo {
		mimetype = "video/mp4"
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"number":    jid,
			"mediatype": string(mediaType),
			"mimetype":  mimetype,
			"media":     mediaURL,
		}).
		Post("/message/sendMedia/" + s.instance)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return resp.Body(), fmt.Errorf("evolution sendMedia: status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

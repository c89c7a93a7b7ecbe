package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/domain/notification"

	"golang.org/x/time/rate"
)

const emailJSSendPath = "/api/v1.0/email/send"

type EmailJSConfig struct {
	BaseURL    string
	ServiceID  string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
	// PerMinute caps outbound sends; EmailJS rejects bursts.
	PerMinute int
}

// EmailJS posts templated messages to the EmailJS REST API.
type EmailJS struct {
	cfg     EmailJSConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewEmailJS(cfg EmailJSConfig) *EmailJS {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &EmailJS{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) Send(ctx context.Context, msg notification.Message) error {
	const op = "notifier.EmailJS.Send"

	if err := e.limiter.Wait(ctx); err != nil {
		return apperr.New(apperr.CodeNotificationFailed, op, err)
	}

	params := make(map[string]string, len(msg.Fields)+1)
	for k, v := range msg.Fields {
		params[k] = v
	}
	if msg.Recipient != "" {
		params["email"] = msg.Recipient
	}
	body, err := json.Marshal(emailJSPayload{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     msg.TemplateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return apperr.New(apperr.CodeNotificationFailed, op, err)
	}

	url := strings.TrimRight(e.cfg.BaseURL, "/") + emailJSSendPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return apperr.New(apperr.CodeNotificationFailed, op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := e.client.Do(req)
	if err != nil {
		return apperr.New(apperr.CodeNotificationFailed, op, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return apperr.Newf(apperr.CodeNotificationFailed, op, "status %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

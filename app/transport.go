package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"time"

	"github.com/sweater-ventures/notifier/config"
)

// Transport delivers one event to one address. A returned error is a failed
// attempt to be consumed by the retry state machine, not a fault to
// propagate: network errors, timeouts, non-2xx responses, and SMTP errors
// all count the same.
type Transport interface {
	Deliver(ctx context.Context, method DeliveryMethod, event Event) error
}

// DeliveryTransport is the production Transport: HTTP POST for webhooks,
// SMTP for email.
type DeliveryTransport struct {
	client   *http.Client
	smtpAddr string
	smtpFrom string
}

func NewDeliveryTransport(cfg *config.AppConfig) *DeliveryTransport {
	return &DeliveryTransport{
		client: &http.Client{
			Timeout: time.Duration(cfg.DeliveryTimeoutSeconds) * time.Second,
		},
		smtpAddr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		smtpFrom: cfg.SMTPFrom,
	}
}

func (t *DeliveryTransport) Deliver(ctx context.Context, method DeliveryMethod, event Event) error {
	switch method.Method {
	case MethodWebhook:
		return t.deliverWebhook(ctx, method.Address, event)
	case MethodEmail:
		return t.deliverEmail(method.Address, event)
	default:
		return fmt.Errorf("unknown delivery method %q", method.Method)
	}
}

func (t *DeliveryTransport) deliverWebhook(ctx context.Context, address string, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, address, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Notifier-Event-ID", event.UUID)
	req.Header.Set("X-Notifier-Event-Type", event.Type)
	req.Header.Set("X-Notifier-Event-Subject", event.Subject)
	req.Header.Set("X-Notifier-Tenant", event.Tenant)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain a bounded amount so the connection can be reused.
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024*1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("non-2xx response: %d", resp.StatusCode)
	}
	return nil
}

func (t *DeliveryTransport) deliverEmail(address string, event Event) error {
	body, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", t.smtpFrom)
	fmt.Fprintf(&msg, "To: %s\r\n", address)
	fmt.Fprintf(&msg, "Subject: Notification: %s\r\n", event.Type)
	msg.WriteString("Content-Type: application/json\r\n")
	msg.WriteString("\r\n")
	msg.Write(body)

	if err := smtp.SendMail(t.smtpAddr, nil, t.smtpFrom, []string{address}, msg.Bytes()); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

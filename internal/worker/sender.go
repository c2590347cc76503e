package worker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// WebhookSender posts booking notifications as JSON to a configured
// endpoint.
type WebhookSender struct {
	url    string
	client *http.Client
	logger *zerolog.Logger
}

func NewWebhookSender(url string, logger *zerolog.Logger) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (s *WebhookSender) SendBookingCreated(booking *models.Booking) error {
	return s.post("booking_created", booking)
}

func (s *WebhookSender) SendBookingDecision(booking *models.Booking) error {
	return s.post("booking_decided", booking)
}

func (s *WebhookSender) post(event string, booking *models.Booking) error {
	body, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"booking": booking,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// LogSender is used when no webhook is configured. Notifications land
// in the application log only.
type LogSender struct {
	logger *zerolog.Logger
}

func NewLogSender(logger *zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendBookingCreated(booking *models.Booking) error {
	s.logger.Info().Int64("booking_id", booking.ID).Int64("owner_id", booking.OwnerID).Msg("booking created notification")
	return nil
}

func (s *LogSender) SendBookingDecision(booking *models.Booking) error {
	s.logger.Info().Int64("booking_id", booking.ID).Str("status", booking.Status).Msg("booking decision notification")
	return nil
}

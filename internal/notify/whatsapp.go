package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smilemore/clinic-scheduler/internal/logging"
)

// WhatsappSender posts messages to a self-hosted WhatsApp HTTP gateway.
// A sender with an empty gateway URL drops messages silently, so local
// setups run without the gateway.
type WhatsappSender struct {
	gatewayURL string
	client     *http.Client
}

func NewWhatsappSender(gatewayURL string) *WhatsappSender {
	return &WhatsappSender{
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *WhatsappSender) SendMessage(ctx context.Context, phone, message string) error {
	if s.gatewayURL == "" {
		logging.Log.Debug("whatsapp gateway not configured, dropping message",
			zap.String("phone", phone))
		return nil
	}

	payload, err := json.Marshal(sendMessageRequest{
		Phone:   phone,
		Message: message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.gatewayURL+"/send/message",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned %d: %s", res.StatusCode, body)
	}

	logging.Log.Info("whatsapp message sent", zap.String("phone", phone))
	return nil
}

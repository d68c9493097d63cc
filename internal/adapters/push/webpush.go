// Package push adapts the web-push protocol behind the core's PushSender
// interface. VAPID key handling and encryption are delegated to webpush-go.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

var errEndpointGone = errors.New("push endpoint no longer exists")

type WebPushSender struct {
	subscriber      string
	vapidPublicKey  string
	vapidPrivateKey string
}

func NewWebPushSender(subscriber, vapidPublicKey, vapidPrivateKey string) *WebPushSender {
	return &WebPushSender{
		subscriber:      subscriber,
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
	}
}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

func (s *WebPushSender) Send(ctx context.Context, sub *domain.PushSubscription, title, body string) error {
	payload, err := json.Marshal(pushPayload{
		Title: title,
		Body:  body,
		Icon:  "/icon.png",
	})
	if err != nil {
		return fmt.Errorf("webpush: failed to marshal payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.vapidPublicKey,
		VAPIDPrivateKey: s.vapidPrivateKey,
		TTL:             3600,
	})
	if err != nil {
		return fmt.Errorf("webpush: send failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return errEndpointGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("webpush: push service answered %d", resp.StatusCode)
	}

	return nil
}

func (s *WebPushSender) IsGone(err error) bool {
	return errors.Is(err, errEndpointGone)
}

// Package notifier dispatches order lifecycle notifications over HTTP.
// Notifications go to the push gateway that fans them out to the recipients'
// devices, and additionally to the marketplace hook URL when the order carries
// one. Delivery is best-effort: failures are logged, never propagated.
package notifier

import (
	"context"
	"fmt"
	"time"

	"carveyor/internal/core/ports"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WebhookNotifier implements Notifier over REST webhooks.
type WebhookNotifier struct {
	client     *resty.Client
	gatewayURL string
	logger     *zap.Logger
}

// NewWebhookNotifier creates a notifier posting to the given push gateway.
// An empty gateway URL disables gateway delivery; hook URLs on orders are
// still honored.
func NewWebhookNotifier(gatewayURL string, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		client:     resty.New().SetTimeout(timeout),
		gatewayURL: gatewayURL,
		logger:     logger,
	}
}

type notificationPayload struct {
	Event      string         `json:"event"`
	OrderID    string         `json:"order_id"`
	Recipients []string       `json:"recipients,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// Notify posts the notification to the gateway and the order's hook URL in a
// background goroutine. Handlers call this after their transaction commits; a
// slow collaborator must not stall the caller, so dispatch is detached from
// the caller's context and errors stay here.
func (n *WebhookNotifier) Notify(ctx context.Context, notification ports.Notification) {
	payload := notificationPayload{
		Event:   string(notification.Event),
		OrderID: notification.OrderID.String(),
		Data:    notification.Payload,
	}
	for _, recipient := range notification.Recipients {
		payload.Recipients = append(payload.Recipients, recipient.String())
	}

	go n.dispatch(context.WithoutCancel(ctx), notification, payload)
}

func (n *WebhookNotifier) dispatch(ctx context.Context, notification ports.Notification, payload notificationPayload) {
	if n.gatewayURL != "" {
		if err := n.post(ctx, n.gatewayURL+"/notifications", payload); err != nil {
			n.logger.Warn("notification delivery to gateway failed",
				zap.String("event", payload.Event),
				zap.String("orderID", payload.OrderID),
				zap.Error(err),
			)
		}
	}

	if notification.HookURL != "" {
		// The marketplace gets the event without the recipient list.
		hookPayload := payload
		hookPayload.Recipients = nil
		if err := n.post(ctx, notification.HookURL, hookPayload); err != nil {
			n.logger.Warn("notification delivery to hook failed",
				zap.String("event", payload.Event),
				zap.String("orderID", payload.OrderID),
				zap.String("hookURL", notification.HookURL),
				zap.Error(err),
			)
		}
	}
}

func (n *WebhookNotifier) post(ctx context.Context, url string, payload notificationPayload) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("endpoint responded %s", resp.Status())
	}
	return nil
}

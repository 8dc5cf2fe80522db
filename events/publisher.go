package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"shoplet-backend/models"
)

const purchaseSubject = "purchase.completed"

// Publisher pushes storefront events to NATS for the reporting consumers.
type Publisher struct {
	nc *nats.Conn
}

// Connect dials NATS. The caller decides whether a failure is fatal; the
// service runs fine without a broker.
func Connect(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("shoplet-backend"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected: %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{nc: nc}, nil
}

// PurchaseCompletedEvent is the wire shape on purchase.completed.
type PurchaseCompletedEvent struct {
	EventID     string  `json:"event_id"`
	PurchaseID  string  `json:"purchase_id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	ItemCount   int     `json:"item_count"`
	TotalAmount float64 `json:"total_amount"`
	CompletedAt string  `json:"completed_at"`
}

func (p *Publisher) PublishPurchaseCompleted(ctx context.Context, user *models.User, group models.PurchaseGroup, total float64) error {
	event := PurchaseCompletedEvent{
		EventID:     uuid.NewString(),
		PurchaseID:  group.PurchaseID,
		UserID:      user.ID,
		UserName:    user.Name,
		ItemCount:   len(group.Items),
		TotalAmount: total,
		CompletedAt: group.PurchasedAt.Format(time.RFC3339),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.nc.Publish(purchaseSubject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", purchaseSubject, err)
	}
	return p.nc.FlushTimeout(2 * time.Second)
}

func (p *Publisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
	}
}

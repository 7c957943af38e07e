package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/notification"
)

// StartOrderPlacedConsumer binds a durable queue to the events exchange and
// turns every OrderPlaced event into a stored customer notification.
func StartOrderPlacedConsumer(ctx context.Context, conn *amqp.Connection, repo notification.Repository) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		notificationsQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	if err := ch.QueueBind(notificationsQueueName, OrderPlacedRoutingKey, EventsExchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	msgs, err := ch.Consume(
		notificationsQueueName,
		"storefront-notifications", // consumer tag
		false,                      // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stopping order.placed consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Warn().Msg("order.placed messages channel closed")
					return
				}

				if err := handleOrderPlaced(ctx, repo, msg.Body); err != nil {
					log.Error().Err(err).Msg("handle order.placed")
					_ = msg.Nack(false, false) // drop, notification is best-effort
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}

func handleOrderPlaced(ctx context.Context, repo notification.Repository, body []byte) error {
	var env Envelope[OrderPlaced]
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := env.Validate(OrderPlacedName, OrderPlacedVersion); err != nil {
		return fmt.Errorf("validate envelope: %w", err)
	}

	ev := env.Payload
	// The event id doubles as the notification id, so a redelivered
	// message maps onto the same row instead of storing a second one.
	n := &notification.Notification{
		ID:      env.EventID,
		UserKey: ev.OwnerKey,
		OrderID: ev.OrderID,
		Title:   "Order confirmed",
		TitleBN: "অর্ডার নিশ্চিত হয়েছে",
		Body:    fmt.Sprintf("Your order %s (%d items, ৳%.0f) has been received.", ev.OrderNumber, ev.TotalItems, ev.TotalAmount),
		BodyBN:  fmt.Sprintf("আপনার অর্ডার %s (%d টি পণ্য, ৳%.0f) গ্রহণ করা হয়েছে।", ev.OrderNumber, ev.TotalItems, ev.TotalAmount),
	}

	if err := repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	log.Info().
		Str("order_number", ev.OrderNumber).
		Str("owner", ev.OwnerKey).
		Msg("notification stored for placed order")
	return nil
}

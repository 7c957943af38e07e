package events

import (
	"os"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	EventsExchange         = "storefront.events"
	OrderPlacedRoutingKey  = "order.placed.v1"
	producerName           = "storefront"
	notificationsQueueName = "notifications." + OrderPlacedRoutingKey
)

func MustDial(url string) *amqp.Connection {
	if url == "" {
		url = os.Getenv("RABBITMQ_URL")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to RabbitMQ")
	}
	return conn
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
}

package queue

import (
	"context"
	"encoding/json"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/trip-planner/internal/logger"
)

const completedQueue = "activity.completed"

// Enabled reports whether a broker is configured. With no URL set the
// application publishes nothing at all.
func Enabled() bool { return brokerURL() != "" }

func brokerURL() string {
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		return url
	}
	return os.Getenv("AMQP_URL")
}

// Publisher publishes domain events to RabbitMQ. A connection is dialled
// per publish; the event volume here is a handful per day.
type Publisher struct{}

// ActivityCompleted publishes an ActivityCompletedEvent to the durable
// "activity.completed" queue. It never panics; any error is logged and
// returned so the caller can choose to ignore it.
func (Publisher) ActivityCompleted(ctx context.Context, event ActivityCompletedEvent) error {
	log := logger.Get()

	conn, err := amqp.Dial(brokerURL())
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(completedQueue, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", completedQueue, false, false, pub); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}

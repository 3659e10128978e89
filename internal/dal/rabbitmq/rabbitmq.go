package rabbitmq

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Client represents a RabbitMQ client for publishing order events.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Channel returns the underlying AMQP channel.
func (r *Client) Channel() *amqp.Channel {
	return r.channel
}

// Close closes the channel and connection for graceful shutdown.
func (r *Client) Close() error {
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			return err
		}
	}
	if r.conn != nil {
		return r.conn.Close()
	}

	return nil
}

// MustNewClient creates a new RabbitMQ client and declares the order events queue.
func MustNewClient() *Client {
	host := viper.GetString("rabbitmq.host")
	if host == "" {
		host = "rabbitmq"
	}

	connStr := fmt.Sprintf(
		"amqp://%s:%s@%s:5672/",
		os.Getenv("RABBITMQ_DEFAULT_USER"),
		os.Getenv("RABBITMQ_DEFAULT_PASS"),
		host,
	)

	conn, err := amqp.Dial(connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to RabbitMQ: %v", err))
	}

	channel, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			panic(fmt.Sprintf("Failed to close a connection: %v", closeErr))
		}
		panic(fmt.Sprintf("Failed to open a channel: %v", err))
	}

	queueName := viper.GetString("rabbitmq.outbox.queue_name")
	if queueName == "" {
		queueName = "order.events"
	}

	if _, err := channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		panic(fmt.Sprintf("Failed to declare queue: %v", err))
	}

	slog.Info("RabbitMQ connected", "queue", queueName)

	return &Client{
		conn:    conn,
		channel: channel,
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

var RabbitMQ *amqp.Connection

// ErrRabbitMQNotInitialized is returned when InitRabbitMQ has not succeeded
var ErrRabbitMQNotInitialized = errors.New("RabbitMQ connection not initialized")

// RabbitMQURL builds the AMQP URL from the RABBITMQ_* environment variables
func RabbitMQURL() string {
	port := os.Getenv("RABBITMQ_PORT")
	if port == "" {
		port = "5672"
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		os.Getenv("RABBITMQ_USER"),
		os.Getenv("RABBITMQ_PASSWORD"),
		os.Getenv("RABBITMQ_HOST"),
		port,
	)
}

// InitRabbitMQ connects to RabbitMQ, retrying up to maxRetries times
func InitRabbitMQ(maxRetries int) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	retryDelay := 3 * time.Second

	var err error
	for i := 0; i < maxRetries; i++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(RabbitMQURL())
		if err == nil {
			RabbitMQ = conn
			log.Infof("Successfully connected to RabbitMQ at %s", os.Getenv("RABBITMQ_HOST"))
			return nil
		}

		if i < maxRetries-1 {
			log.Warnf("Failed to connect to RabbitMQ (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// CloseRabbitMQ closes the shared connection
func CloseRabbitMQ() error {
	if RabbitMQ == nil {
		return nil
	}
	err := RabbitMQ.Close()
	RabbitMQ = nil
	return err
}

// PurgeQueue removes all messages from a queue without deleting the queue itself
func PurgeQueue(queueName string) error {
	if RabbitMQ == nil {
		return ErrRabbitMQNotInitialized
	}

	ch, err := RabbitMQ.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueuePurge(queueName, false); err != nil {
		return fmt.Errorf("failed to purge queue %s: %w", queueName, err)
	}

	log.Infof("Successfully purged RabbitMQ queue: %s", queueName)
	return nil
}

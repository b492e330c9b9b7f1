package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	logrus "github.com/sirupsen/logrus"

	"soltoken/internal/events"
	"soltoken/internal/schedule"
	"soltoken/internal/store"
	"soltoken/internal/token"
	"soltoken/internal/worker"
	"soltoken/pkg/config"
)

func main() {
	purge := flag.Bool("purge", false, "drop queued token events before consuming, e.g. after a simulation run")
	flag.Parse()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	settings, err := config.LoadSettings(os.Getenv("ENV_FILE"))
	if err != nil {
		logrus.Fatal("Failed to load settings: ", err)
	}
	if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := config.InitDB(); err != nil {
		logrus.Fatal(err)
	}
	defer config.CloseDB()
	registry := store.New(config.DB)

	if err := config.InitRabbitMQ(10); err != nil {
		logrus.Fatal(err)
	}
	defer config.CloseRabbitMQ()

	// snapshots need a wallet; the consumer runs without one
	if svc, err := token.NewFromSettings(settings, logrus.StandardLogger()); err != nil {
		logrus.WithError(err).Warn("Balance snapshots disabled")
	} else {
		job := schedule.NewSnapshotJob(registry, svc, logrus.StandardLogger())
		c, err := schedule.Start(ctx, settings.SnapshotCron, job)
		if err != nil {
			logrus.Fatal(err)
		}
		defer c.Stop()
	}

	msgConsumer, err := config.NewConsumer(events.QueueName)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	if *purge {
		if err := config.PurgeQueue(events.QueueName); err != nil {
			logrus.Fatal(err)
		}
	}

	handler := worker.NewHandler(registry, logrus.StandardLogger())
	logrus.Info("Token registry worker started, waiting for messages...")

	err = msgConsumer.Consume(ctx, func(msg []byte) error {
		return handler.Handle(ctx, msg)
	})
	if err != nil {
		logrus.Error("Consumer stopped: ", err)
	}
}

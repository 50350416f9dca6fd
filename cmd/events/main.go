package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-pipeline-be/internal/config"
	"ai-pipeline-be/pkg/events"
	pktNats "ai-pipeline-be/pkg/nats"
)

// Event tap: subscribes to every domain event on the bus and logs it.
// Useful when verifying that QUERY_COMPLETED / DOCUMENT_INGESTED are
// flowing without attaching a real downstream consumer.
func main() {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect subscriber: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.>", "event-tap", func(ctx context.Context, event events.Event) error {
		log.Printf("[EVENT] %s payload=%v", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	log.Println("Event tap running, Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}

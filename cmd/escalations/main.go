package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"swift-assist-be/internal/config"
	"swift-assist-be/pkg/events"
	"swift-assist-be/pkg/nats"

	"github.com/fatih/color"
)

// Support-desk console: tails escalation events off the chat event stream so
// an agent can see who asked for a human before joining the session.
func main() {
	cfg := config.Load()

	sub, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	color.Cyan("📟 SwiftAssist escalation monitor (stream: CHAT_EVENTS)")

	err = sub.Subscribe("chat.escalation", "support-desk", func(ctx context.Context, event events.Event) error {
		payload := event.Payload()
		color.Red("⚠ escalation at %s", event.Timestamp().Format("15:04:05"))
		color.White("  user:    %v", payload["user_id"])
		color.White("  session: %v", payload["session_id"])
		color.Yellow("  reason:  %v", payload["reason"])
		if excerpt, ok := payload["excerpt"].(string); ok && excerpt != "" {
			color.HiBlack("  > %s", excerpt)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to subscribe: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	color.Cyan("bye")
}

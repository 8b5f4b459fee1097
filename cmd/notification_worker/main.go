package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/streamvault/streamvault/config"
	pginfra "github.com/streamvault/streamvault/internal/infrastructure/postgres"
	"github.com/streamvault/streamvault/pkg/mailer"
)

// The notification worker drains the RabbitMQ queue the api server publishes
// to. Welcome jobs go straight out; new-video jobs fan out to every
// subscriber of the channel.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; notification worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotificationQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	subs := pginfra.NewSubscriptionRepository(pool)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQNotificationQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQNotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job mailer.Job
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			recipients, err := resolveRecipients(ctx, &job, users, subs)
			if err != nil {
				log.Printf("resolve recipients: %v", err)
				_ = msg.Nack(false, true)
				continue
			}
			if len(recipients) == 0 {
				_ = msg.Ack(false)
				continue
			}

			subject, text := job.Render()
			failed := false
			for _, to := range recipients {
				c, cancel := context.WithTimeout(ctx, 15*time.Second)
				if err := mg.Send(c, to, subject, text, ""); err != nil {
					log.Printf("send to %s failed: %v", to, err)
					failed = true
				}
				cancel()
			}
			if failed {
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("notification worker listening on queue=%s", cfg.RabbitMQNotificationQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// resolveRecipients also fills in the channel's display name for new-video
// jobs so the subject line reads naturally.
func resolveRecipients(ctx context.Context, job *mailer.Job, users *pginfra.UserRepository, subs *pginfra.SubscriptionRepository) ([]string, error) {
	switch job.Kind {
	case mailer.KindWelcome:
		if job.To == "" {
			return nil, nil
		}
		return []string{job.To}, nil
	case mailer.KindNewVideo:
		owner, err := users.GetByID(ctx, job.ChannelID)
		if err != nil {
			return nil, err
		}
		job.UserName = owner.UserName
		return subs.SubscriberEmails(ctx, job.ChannelID)
	default:
		log.Printf("unknown job kind %q dropped", job.Kind)
		return nil, nil
	}
}

package main

import (
	"log"

	"github.com/ss-immigration/application_service/config"
	"github.com/ss-immigration/application_service/infra/queue"
	"github.com/ss-immigration/application_service/internal/mailer"
	"github.com/ss-immigration/application_service/pkg/logger"
)

func main() {
	// ---------- Load Config ----------
	cfg := config.LoadConfig()

	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zlog.Sync() }()

	log.Println("Mail Worker starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	// ---------- Init Service ----------
	mailService := mailer.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	// ---------- Init Handler ----------
	handler := mailer.NewEventHandler(mailService, zlog)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	// ---------- Start Listening ----------
	log.Println("Mail Worker listening for events...")
	consumer.Listen()
}

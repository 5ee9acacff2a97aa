// Package notifier собирает и запускает воркер почтовых уведомлений
// о новых заявках.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/d-directory/d-directory/internal/config"
	"github.com/d-directory/d-directory/internal/lib/rabbitmq"
	"github.com/d-directory/d-directory/internal/lib/smtp"
	senderservice "github.com/d-directory/d-directory/internal/services/sender"
)

// App инкапсулирует подключение к брокеру и сервис отправки писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New собирает воркер: подключение к RabbitMQ, очереди и SMTP-транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, newTransport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run подписывается на очередь событий заявок и работает до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.LeadCreatedQueue, a.senderService.SendLeadNotification)
	if err != nil {
		a.logger.Error("failed to start lead.created consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Notifier service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}

package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/d-directory/d-directory/internal/models"
)

// LeadEventPublisher публикует события о принятых заявках в обменник leads.
type LeadEventPublisher struct {
	ch *amqp.Channel
}

// NewLeadEventPublisher создает издателя событий заявок поверх открытого канала.
func NewLeadEventPublisher(ch *amqp.Channel) *LeadEventPublisher {
	return &LeadEventPublisher{ch: ch}
}

// PublishLeadCreated публикует событие о новой заявке для воркера уведомлений.
func (p *LeadEventPublisher) PublishLeadCreated(event models.LeadCreatedEvent) error {
	return PublishMessage(p.ch, Exchange, "created", event)
}

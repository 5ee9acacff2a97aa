package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для привязки к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// LeadCreatedQueue — очередь уведомлений подрядчикам о новых заявках.
const LeadCreatedQueue = "lead.created"

// GetNotificationQueues возвращает очереди воркера уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: LeadCreatedQueue, RoutingKey: "created"},
	}
}

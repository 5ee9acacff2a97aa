// Package models содержит доменную модель заявки (лида) на услуги подрядчика.
// Заявка создаётся клиентом со статусом "new" и далее ведётся менеджером
// по воронке статусов.
package models

import "time"

// Статусы заявки. Начальный статус всегда StatusNew; переходы между
// статусами разрешены в любом направлении, "won" и "lost" терминальны
// лишь по соглашению.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQuoted    = "quoted"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

// LeadStatuses перечисляет все допустимые статусы заявки.
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQuoted,
	LeadStatusWon,
	LeadStatusLost,
}

// IsValidLeadStatus сообщает, входит ли значение в набор допустимых статусов.
func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Lead представляет собой заявку клиента, адресованную одному подрядчику.
type Lead struct {
	ID                 int       // Уникальный идентификатор
	ContractorID       int       // Идентификатор подрядчика (обязательная ссылка)
	CustomerName       string    // Имя клиента
	CustomerEmail      string    // Электронная почта клиента
	CustomerPhone      string    // Телефон клиента (опционально)
	ProjectType        string    // Тип проекта
	ProjectDescription string    // Описание проекта (опционально)
	Budget             string    // Бюджет (опционально)
	Timeline           string    // Сроки (опционально)
	Status             string    // Текущий статус заявки
	CreatedAt          time.Time // Дата создания
	UpdatedAt          time.Time // Дата последнего изменения статуса
}

// DummyLead используется для приёма заявки из JSON-запроса до её валидации.
type DummyLead struct {
	ContractorID       int    `json:"contractor_id" validate:"required,gt=0"`       // Подрядчик
	CustomerName       string `json:"customer_name" validate:"required"`            // Имя клиента
	CustomerEmail      string `json:"customer_email" validate:"required,email"`     // Почта клиента
	CustomerPhone      string `json:"customer_phone,omitempty"`                     // Телефон
	ProjectType        string `json:"project_type" validate:"required"`             // Тип проекта
	ProjectDescription string `json:"project_description,omitempty"`                // Описание
	Budget             string `json:"budget,omitempty"`                             // Бюджет
	Timeline           string `json:"timeline,omitempty"`                           // Сроки
}

// DummyLeadStatus используется для приёма нового статуса заявки из JSON-запроса.
type DummyLeadStatus struct {
	Status string `json:"status" validate:"required,oneof=new contacted quoted won lost"` // Новый статус
}

// LeadFilter описывает параметры выборки заявок.
type LeadFilter struct {
	ContractorID *int // Фильтр по подрядчику (nil — все заявки)
}

// LeadCreatedEvent публикуется в очередь уведомлений после успешного
// приёма заявки, чтобы воркер отправил письмо подрядчику.
type LeadCreatedEvent struct {
	LeadID          int    `json:"lead_id"`
	ContractorID    int    `json:"contractor_id"`
	ContractorName  string `json:"contractor_name"`
	ContractorEmail string `json:"contractor_email"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	ProjectType     string `json:"project_type"`
}

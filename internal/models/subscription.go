// Package models содержит модель подписки подрядчика на тарифный план.
// У подрядчика в любой момент времени не более одной активной подписки:
// оформление нового плана деактивирует предыдущую запись, история сохраняется.
package models

import "time"

// Статусы подписки.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
)

// Subscription связывает одного подрядчика с одним тарифным планом
// на период платёжного цикла. Счётчик LeadsUsed монотонно растёт внутри
// цикла и сбрасывается только оформлением новой подписки — автоматического
// переката цикла нет.
type Subscription struct {
	ID                int       // Уникальный идентификатор
	ContractorID      int       // Идентификатор подрядчика
	PlanID            int       // Идентификатор тарифного плана
	LeadsUsed         int       // Число принятых заявок в текущем цикле (>= 0)
	BillingCycleStart time.Time // Начало платёжного цикла
	BillingCycleEnd   time.Time // Конец платёжного цикла (строго позже начала)
	Status            string    // active или inactive
	CreatedAt         time.Time // Дата создания записи
	UpdatedAt         time.Time // Дата последнего изменения
}

// SubscriptionWithPlan объединяет активную подписку с её тарифным планом.
type SubscriptionWithPlan struct {
	Subscription Subscription // Активная подписка подрядчика
	Plan         Plan         // Тарифный план подписки
}

// DummySubscription используется для приёма данных новой подписки
// из JSON-запроса. Даты приходят строками в формате RFC 3339;
// формат проверяет сервис подписок, а не теги валидации.
type DummySubscription struct {
	PlanID            int    `json:"plan_id" validate:"required,gt=0"`       // Тарифный план
	BillingCycleStart string `json:"billing_cycle_start" validate:"required"` // Начало цикла, RFC 3339
	BillingCycleEnd   string `json:"billing_cycle_end" validate:"required"`   // Конец цикла, RFC 3339
}

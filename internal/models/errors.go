// Package models содержит ошибки доменного уровня.
// Хранилище и сервисы возвращают эти ошибки вместо специфичных для драйвера,
// чтобы HTTP-слой мог отобразить их в точные статусы и сообщения.
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrContractorNotFound возвращается, когда подрядчик с указанным ID не существует.
	ErrContractorNotFound = errors.New("contractor not found")

	// ErrLeadNotFound возвращается, когда заявка с указанным ID не существует.
	ErrLeadNotFound = errors.New("lead not found")

	// ErrPlanNotFound возвращается, когда тарифный план не существует.
	// Для активной подписки, ссылающейся на отсутствующий план, это
	// нарушение инварианта каталога и всегда ошибка, а не "пустой" результат.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrSubscriptionNotFound возвращается, когда у подрядчика нет активной подписки,
	// в операциях, где её отсутствие является ошибкой.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInvalidLeadStatus возвращается при попытке перевести заявку
	// в нераспознанный статус.
	ErrInvalidLeadStatus = errors.New("invalid lead status")

	// ErrInvalidBillingCycle возвращается, когда даты платёжного цикла
	// не разбираются как RFC 3339 или начало цикла не раньше его конца.
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")

	// ErrQuotaExceeded — сигнальная ошибка исчерпанной месячной квоты заявок.
	// Конкретные значения счётчиков несёт QuotaExceededError.
	ErrQuotaExceeded = errors.New("monthly lead quota exceeded")
)

// QuotaExceededError возвращается при отклонении заявки из-за исчерпанной
// квоты и несёт значения счётчиков для точного сообщения пользователю.
// Сравнение выполняется до инкремента: подрядчик ровно на квоте получает отказ.
type QuotaExceededError struct {
	LeadsUsed        int // Число принятых заявок в текущем цикле
	MonthlyLeadQuota int // Квота тарифного плана
}

// Error реализует интерфейс error.
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly lead quota exceeded: %d of %d leads used",
		e.LeadsUsed, e.MonthlyLeadQuota)
}

// Is позволяет проверять QuotaExceededError через errors.Is(err, ErrQuotaExceeded).
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

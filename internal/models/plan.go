// Package models содержит модель тарифного плана каталога.
// Планы создаются при первичном наполнении базы и почти не меняются;
// план нельзя удалить, пока на него ссылается подписка.
package models

// Plan представляет собой тарифный план с месячной квотой заявок.
type Plan struct {
	ID               int      // Уникальный идентификатор
	Name             string   // Название тарифа
	Price            float64  // Цена за месяц
	MonthlyLeadQuota int      // Максимум заявок за платёжный цикл (> 0)
	Features         []string // Список возможностей тарифа
	Active           bool     // Доступен ли тариф для покупки
}

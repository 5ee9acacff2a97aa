// Package models содержит доменные структуры каталога подрядчиков,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Contractor представляет собой карточку подрядчика в каталоге.
// Подрядчик существует независимо от подписки и заявок:
// запись может не иметь ни одной заявки и ни одной подписки.
type Contractor struct {
	ID              int       // Уникальный идентификатор
	Name            string    // Название компании
	Category        string    // Категория услуг
	Description     string    // Описание компании
	Location        string    // Город/регион работы
	Address         string    // Адрес (опционально)
	Phone           string    // Телефон (опционально)
	Email           string    // Электронная почта (опционально)
	Website         string    // Сайт (опционально)
	ImageURL        string    // Ссылка на изображение (опционально)
	Rating          float64   // Рейтинг от 0.0 до 5.0
	ReviewCount     int       // Количество отзывов (>= 0)
	YearsExperience int       // Стаж работы в годах
	ProjectTypes    []string  // Слаги типов проектов
	ServiceRadius   int       // Радиус обслуживания в милях (>= 1)
	FreeEstimate    bool      // Бесплатная оценка работ
	Licensed        bool      // Наличие лицензии
	CreatedAt       time.Time // Дата создания записи
	UpdatedAt       time.Time // Дата последнего обновления
}

// DummyContractor используется для приёма данных подрядчика из JSON-запроса,
// прежде чем конвертировать их в Contractor.
type DummyContractor struct {
	Name            string   `json:"name" validate:"required"`                      // Название компании
	Category        string   `json:"category" validate:"required"`                  // Категория услуг
	Description     string   `json:"description,omitempty"`                         // Описание
	Location        string   `json:"location,omitempty"`                            // Город/регион
	Address         string   `json:"address,omitempty"`                             // Адрес
	Phone           string   `json:"phone,omitempty"`                               // Телефон
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`    // Почта
	Website         string   `json:"website,omitempty"`                             // Сайт
	ImageURL        string   `json:"image_url,omitempty"`                           // Изображение
	Rating          float64  `json:"rating,omitempty" validate:"omitempty,min=0,max=5"` // Рейтинг (0..5)
	ReviewCount     int      `json:"review_count,omitempty" validate:"omitempty,min=0"`  // Количество отзывов
	YearsExperience int      `json:"years_experience,omitempty" validate:"omitempty,min=0"` // Стаж
	ProjectTypes    []string `json:"project_types,omitempty"`                       // Типы проектов
	ServiceRadius   int      `json:"service_radius,omitempty" validate:"omitempty,min=1"` // Радиус, мили
	FreeEstimate    bool     `json:"free_estimate,omitempty"`                       // Бесплатная оценка
	Licensed        bool     `json:"licensed,omitempty"`                            // Лицензия
}

// ContractorFilter описывает параметры фильтрации каталога,
// которые передаются в слой доступа к данным.
type ContractorFilter struct {
	Category string // Категория услуг ("" — без фильтра)
	Location string // Подстрока города/региона ("" — без фильтра)
	Radius   int    // Минимальный радиус обслуживания (0 — без фильтра)
	Search   string // Поиск по названию, описанию и категории ("" — без фильтра)
}

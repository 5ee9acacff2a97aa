package models

// ProjectType представляет собой тип проекта для навигации по каталогу.
type ProjectType struct {
	ID       int    // Уникальный идентификатор
	Name     string // Название типа проекта
	Slug     string // Слаг для URL
	ImageURL string // Ссылка на изображение
}

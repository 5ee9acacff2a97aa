// Package sl содержит вспомогательные функции для логгера slog.
// Обработчики и хранилище каталога пишут ошибки одним и тем же
// структурированным полем, чтобы их было легко фильтровать в логах.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to submit lead", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

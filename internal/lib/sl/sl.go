// Package sl содержит вспомогательные атрибуты для логгера slog,
// чтобы ошибки и имена операций выводились в логах единообразно.
package sl

import "log/slog"

// Err возвращает атрибут "error" с текстом ошибки.
// Для nil возвращается пустая строка, чтобы логирование не паниковало.
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Op возвращает атрибут "op" с именем операции.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}

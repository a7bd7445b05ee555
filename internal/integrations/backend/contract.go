package backend

import "time"

// TokenSource источник bearer-токена для исходящих запросов.
// Реализуется хранилищем сессии; второй результат false, если токена нет.
type TokenSource interface {
	Token() (string, bool)
}

// UnauthorizedHandler получает уведомление об ответе 401.
// Хранилище сессии по нему выполняет неявный выход.
type UnauthorizedHandler interface {
	HandleUnauthorized()
}

// Metrics интерфейс для записи метрик исходящих запросов
type Metrics interface {
	ObserveRequest(operation, outcome string, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// nopMetrics заглушка метрик, когда сбор выключен конфигурацией
type nopMetrics struct{}

func (nopMetrics) ObserveRequest(string, string, time.Duration) {}

package bus

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс для учета опубликованных событий
type MetricsRecorder interface {
	IncBusEvent(channel, field string)
}

// Handler обработчик события изменения выбора
// Событие это сигнал "перечитай каноническое состояние", а не источник данных:
// payload намеренно не передается
type Handler func(ctx context.Context, evt Event)

// Unsubscribe снимает ранее оформленную подписку
type Unsubscribe func()

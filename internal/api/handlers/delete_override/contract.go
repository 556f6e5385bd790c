package delete_override

import "context"

type OverridesService interface {
	Delete(ctx context.Context, serviceID, professionalID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

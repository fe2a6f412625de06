package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/sms_budget_tracker/internal/middleware"
)

// BaseService gives services access to the request-scoped logger. The
// parsing engine itself never logs; everything is reported from here.
type BaseService struct{}

// GetLogger returns the logger stored on ctx by the HTTP middleware, or slog's default.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs msg at error level with err attached under "error".
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := append([]any{slog.String("error", err.Error())}, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

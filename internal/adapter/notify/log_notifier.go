package notify

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

// LogNotifier writes user notices to the service log. Clients receive the
// same notices through the wizard view.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notice")}
}

func (n *LogNotifier) Notify(ctx context.Context, notice domain.Notice) {
	fields := []zap.Field{zap.String("key", notice.Key)}
	for k, v := range notice.Params {
		fields = append(fields, zap.String(k, v))
	}
	n.logger.Log(levelOf(notice.Level), "notice", fields...)
}

func levelOf(l domain.NoticeLevel) zapcore.Level {
	switch l {
	case domain.NoticeError:
		return zapcore.ErrorLevel
	case domain.NoticeWarning:
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

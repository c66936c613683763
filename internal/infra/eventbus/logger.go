package eventbus

import (
	"maps"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-kratos/kratos/v2/log"
)

// KratosLoggerAdapter routes watermill logs into the kratos logger.
type KratosLoggerAdapter struct {
	logger log.Logger
	fields watermill.LogFields
}

// NewKratosLoggerAdapter creates a watermill.LoggerAdapter backed by logger.
func NewKratosLoggerAdapter(logger log.Logger) watermill.LoggerAdapter {
	return &KratosLoggerAdapter{
		logger: log.With(logger, "module", "eventbus"),
		fields: watermill.LogFields{},
	}
}

func (l *KratosLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.log(log.LevelError, msg, err, fields)
}

func (l *KratosLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.log(log.LevelInfo, msg, nil, fields)
}

func (l *KratosLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.log(log.LevelDebug, msg, nil, fields)
}

// Trace is logged at debug; kratos has no trace level.
func (l *KratosLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.log(log.LevelDebug, msg, nil, fields)
}

func (l *KratosLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &KratosLoggerAdapter{
		logger: l.logger,
		fields: merged,
	}
}

func (l *KratosLoggerAdapter) log(level log.Level, msg string, err error, fields watermill.LogFields) {
	keyvals := make([]any, 0, 2+(len(l.fields)+len(fields))*2+2)
	keyvals = append(keyvals, "msg", msg)
	for k, v := range l.fields {
		keyvals = append(keyvals, k, v)
	}
	for k, v := range fields {
		keyvals = append(keyvals, k, v)
	}
	if err != nil {
		keyvals = append(keyvals, "error", err)
	}
	_ = l.logger.Log(level, keyvals...)
}

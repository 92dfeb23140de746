package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

type GormLoggerConfig struct {
	Level                gormlogger.LogLevel
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
}

// DefaultGormLoggerConfig logs failed and slow catalog queries only.
func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:         gormlogger.Warn,
		SlowThreshold: 200 * time.Millisecond,
	}
}

// GormLogger routes gorm output through the request-scoped zap logger so
// queries carry request and trace ids.
type GormLogger struct {
	cfg GormLoggerConfig
}

func NewGormLogger(cfg GormLoggerConfig) *GormLogger {
	return &GormLogger{cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.cfg.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) message(ctx context.Context, min gormlogger.LogLevel, level zapcore.Level, msg string, data []interface{}) {
	if l.cfg.Level < min {
		return
	}
	if len(data) > 0 {
		msg = fmt.Sprintf(msg, data...)
	}
	if ce := FromContext(ctx).Check(level, msg); ce != nil {
		ce.Write(zap.String("component", "gorm"))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	level, ok := l.traceLevel(elapsed, err)
	if !ok {
		return
	}

	sql, rows := fc()
	op, table := describeStatement(sql)
	fields := []zap.Field{
		zap.String("component", "gorm"),
		zap.String("db.operation", op),
		zap.String("db.table", table),
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Duration("elapsed", elapsed),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if ce := FromContext(ctx).Check(level, "gorm.query"); ce != nil {
		ce.Write(fields...)
	}
}

// traceLevel picks how a finished query is reported, or false to drop it.
func (l *GormLogger) traceLevel(elapsed time.Duration, err error) (zapcore.Level, bool) {
	if err != nil && l.cfg.Level >= gormlogger.Error {
		if errors.Is(err, gormlogger.ErrRecordNotFound) && l.cfg.IgnoreRecordNotFound {
			return 0, false
		}
		return zapcore.ErrorLevel, true
	}
	if l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn {
		return zapcore.WarnLevel, true
	}
	if l.cfg.Level >= gormlogger.Info {
		return zapcore.DebugLevel, true
	}
	return 0, false
}

// ParamsFilter keeps bound values (credentials, site text) out of the log.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

// describeStatement returns the verb of sql and the first table it touches.
func describeStatement(sql string) (op string, table string) {
	op, table = "UNKNOWN", ""
	words := strings.Fields(sql)
	for i, word := range words {
		upper := strings.ToUpper(strings.Trim(word, "();"))
		switch upper {
		case "SELECT", "INSERT", "UPDATE", "DELETE":
			if op == "UNKNOWN" {
				op = upper
			}
			if upper == "UPDATE" && table == "" && i+1 < len(words) {
				table = cleanIdent(words[i+1])
			}
		case "FROM", "INTO":
			if table == "" && i+1 < len(words) {
				table = cleanIdent(words[i+1])
			}
		}
	}
	return op, table
}

func cleanIdent(word string) string {
	return strings.Trim(word, "`\"();,")
}

var _ gormlogger.Interface = (*GormLogger)(nil)

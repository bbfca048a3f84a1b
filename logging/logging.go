package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger threaded through every planning call,
// wrapping zap the way the rest of this corpus does. The C-prefixed methods
// (CDebugf, CInfof, ...) take a context.Context as their first argument,
// matching the convention used by the planner and rpcfacade packages so that call
// sites stay uniform whether or not a given entry actually has trace
// information attached yet.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a Logger named name, writing through the given
// Appenders (or a single stdout appender if none are given).
func NewLogger(name string, appenders ...Appender) Logger {
	if len(appenders) == 0 {
		appenders = []Appender{NewStdoutAppender()}
	}
	core := newAppenderCore(zapcore.DebugLevel, appenders...)
	zl := zap.New(core, zap.AddCaller()).Named(name)
	return Logger{SugaredLogger: zl.Sugar()}
}

// CDebugf logs at debug level. The context is accepted for call-site
// uniformity with the rest of the corpus's ctx-threaded logging; it carries
// no fields here.
func (l Logger) CDebugf(ctx context.Context, template string, args ...interface{}) {
	l.Debugf(template, args...)
}

// CInfof logs at info level.
func (l Logger) CInfof(ctx context.Context, template string, args ...interface{}) {
	l.Infof(template, args...)
}

// CWarnf logs at warn level.
func (l Logger) CWarnf(ctx context.Context, template string, args ...interface{}) {
	l.Warnf(template, args...)
}

// CErrorf logs at error level.
func (l Logger) CErrorf(ctx context.Context, template string, args ...interface{}) {
	l.Errorf(template, args...)
}

// appenderCore bridges the Appender interface (a subset of zapcore.Core
// used throughout this corpus) to a real zapcore.Core so Logger can be
// built from a plain zap.New.
type appenderCore struct {
	appenders []Appender
	fields    []zapcore.Field
	level     zapcore.Level
}

func newAppenderCore(level zapcore.Level, appenders ...Appender) *appenderCore {
	return &appenderCore{appenders: appenders, level: level}
}

func (c *appenderCore) Enabled(l zapcore.Level) bool {
	return l >= c.level
}

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &appenderCore{appenders: c.appenders, fields: merged, level: c.level}
}

func (c *appenderCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)
	var firstErr error
	for _, a := range c.appenders {
		if err := a.Write(entry, all); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *appenderCore) Sync() error {
	var firstErr error
	for _, a := range c.appenders {
		if err := a.Sync(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

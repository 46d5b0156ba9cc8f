package logx

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ZerologAdapter adapts zerolog.Logger to the logx.Logger interface.
type ZerologAdapter struct {
	l zerolog.Logger
}

// NewZerolog returns a zerolog-backed Logger writing JSON lines to w.
func NewZerolog(w io.Writer, level string) Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return &ZerologAdapter{l: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) { emit(z.l.Debug(), msg, fields) }
func (z *ZerologAdapter) Info(msg string, fields ...Field)  { emit(z.l.Info(), msg, fields) }
func (z *ZerologAdapter) Warn(msg string, fields ...Field)  { emit(z.l.Warn(), msg, fields) }
func (z *ZerologAdapter) Error(msg string, fields ...Field) { emit(z.l.Error(), msg, fields) }

// With returns a child logger carrying fields.
func (z *ZerologAdapter) With(fields ...Field) Logger {
	ctx := z.l.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZerologAdapter{l: ctx.Logger()}
}

// Sync is a no-op; zerolog writes synchronously.
func (z *ZerologAdapter) Sync() error { return nil }

func emit(e *zerolog.Event, msg string, fields []Field) {
	if e == nil {
		return
	}
	for _, f := range fields {
		e = e.Interface(f.Key, f.Value)
	}
	e.Msg(msg)
}

var _ Logger = (*ZerologAdapter)(nil)

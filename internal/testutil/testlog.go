package testlog

import (
	"sync"

	"delivery-coordinator/internal/logx"
)

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Recorder collects entries written through Logger. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger that writes into r.
func (r *Recorder) Logger() logx.Logger {
	return bound{r: r}
}

// Entries returns a snapshot of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Recorder) add(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: fields})
}

// bound carries the fields accumulated through With.
type bound struct {
	r    *Recorder
	base []logx.Field
}

func (b bound) emit(level, msg string, f []logx.Field) {
	fields := make([]logx.Field, 0, len(b.base)+len(f))
	fields = append(fields, b.base...)
	b.r.add(level, msg, append(fields, f...))
}

func (b bound) Debug(msg string, f ...logx.Field) { b.emit("debug", msg, f) }
func (b bound) Info(msg string, f ...logx.Field)  { b.emit("info", msg, f) }
func (b bound) Warn(msg string, f ...logx.Field)  { b.emit("warn", msg, f) }
func (b bound) Error(msg string, f ...logx.Field) { b.emit("error", msg, f) }

func (b bound) With(f ...logx.Field) logx.Logger {
	base := make([]logx.Field, 0, len(b.base)+len(f))
	base = append(base, b.base...)
	return bound{r: b.r, base: append(base, f...)}
}

func (b bound) Sync() error { return nil }

var _ logx.Logger = bound{}

// Has reports whether an entry with the given level and message was recorded.
func (r *Recorder) Has(level, msg string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && e.Msg == msg {
			return true
		}
	}
	return false
}

// Field returns the value of key in e, or nil.
func (e Entry) Field(key string) any {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

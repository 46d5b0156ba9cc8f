package logx

// discard drops every entry.
type discard struct{}

var _ Logger = discard{}

// Nop returns a Logger that writes nothing. Constructors fall back to it when given nil.
func Nop() Logger { return discard{} }

func (discard) Debug(string, ...Field) {}
func (discard) Info(string, ...Field)  {}
func (discard) Warn(string, ...Field)  {}
func (discard) Error(string, ...Field) {}
func (d discard) With(...Field) Logger { return d }
func (discard) Sync() error            { return nil }

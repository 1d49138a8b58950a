package trace

import "time"

// Event is one trace record. Events of concurrently analysed files are told
// apart by ParentID, which links every event to the span that caused it.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points
	ParentID uint64
	Name     string // e.g. "check", "analyze", "push"
	Detail   string
	Extra    map[string]string
}

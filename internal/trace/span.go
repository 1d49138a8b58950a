package trace

import (
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span tracks one begin/end pair. A disabled span still measures time.
type Span struct {
	tracer  Tracer
	ev      Event
	started time.Time
}

func active(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin starts a span under parent (0 for a root span) and emits its begin
// event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	now := time.Now()
	if !active(t, scope) {
		return &Span{started: now}
	}
	s := &Span{
		tracer:  t,
		started: now,
		ev: Event{
			Scope:    scope,
			SpanID:   spanIDs.Add(1),
			ParentID: parent,
			Name:     name,
		},
	}
	begin := s.ev
	begin.Time, begin.Kind = now, KindSpanBegin
	t.Emit(&begin)
	return s
}

// End emits the end event, carrying detail and any extras, and returns the
// span's duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	dur := time.Since(s.started)
	if s.tracer != nil {
		end := s.ev
		end.Time, end.Kind, end.Detail = time.Now(), KindSpanEnd, detail
		s.tracer.Emit(&end)
	}
	return dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.ev.Extra == nil {
		s.ev.Extra = make(map[string]string, 2)
	}
	s.ev.Extra[key] = value
	return s
}

// ID returns the span ID, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.ev.SpanID
}

// Point emits an instant event under parent. kv holds key, value pairs; an
// odd trailing key is dropped.
func Point(t Tracer, scope Scope, name, detail string, parent uint64, kv ...string) {
	if !active(t, scope) {
		return
	}
	ev := Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	}
	if len(kv) >= 2 {
		ev.Extra = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			ev.Extra[kv[i]] = kv[i+1]
		}
	}
	t.Emit(&ev)
}

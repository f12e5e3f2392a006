package logging

import "sync"

// Entry is a single record held by a [Capture] logger.
type Entry struct {
	Level   Level
	Message string
	Err     error
	Fields  []Field
}

// Capture is a Logger that records entries in memory. Use it in tests to
// assert on what a walk logged:
//
//	log := logging.NewCapture()
//	_ = jsonproc.Traverse(obj, target, fn, jsonproc.LogFailures(log))
//	assert.Len(t, log.Entries(), 2)
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

// NewCapture returns an empty Capture logger.
func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) record(level Level, msg string, err error, fields []Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Level: level, Message: msg, Err: err, Fields: fields})
}

func (c *Capture) Debug(msg string, fields ...Field) { c.record(DebugLevel, msg, nil, fields) }
func (c *Capture) Info(msg string, fields ...Field)  { c.record(InfoLevel, msg, nil, fields) }
func (c *Capture) Warn(msg string, fields ...Field)  { c.record(WarnLevel, msg, nil, fields) }

func (c *Capture) Error(msg string, err error, fields ...Field) {
	c.record(ErrorLevel, msg, err, fields)
}

// With returns a logger that prepends fields to every recorded entry.
// Entries still land in the parent Capture.
func (c *Capture) With(fields ...Field) Logger {
	return &withCapture{parent: c, fields: fields}
}

// Entries returns a copy of everything recorded so far.
func (c *Capture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Messages returns just the recorded messages, in order.
func (c *Capture) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Message
	}
	return out
}

// Reset discards all recorded entries.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

type withCapture struct {
	parent *Capture
	fields []Field
}

func (w *withCapture) log(level Level, msg string, err error, fields []Field) {
	all := make([]Field, 0, len(w.fields)+len(fields))
	all = append(all, w.fields...)
	all = append(all, fields...)
	w.parent.record(level, msg, err, all)
}

func (w *withCapture) Debug(msg string, fields ...Field) { w.log(DebugLevel, msg, nil, fields) }
func (w *withCapture) Info(msg string, fields ...Field)  { w.log(InfoLevel, msg, nil, fields) }
func (w *withCapture) Warn(msg string, fields ...Field)  { w.log(WarnLevel, msg, nil, fields) }

func (w *withCapture) Error(msg string, err error, fields ...Field) {
	w.log(ErrorLevel, msg, err, fields)
}

func (w *withCapture) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(w.fields)+len(fields))
	merged = append(merged, w.fields...)
	merged = append(merged, fields...)
	return &withCapture{parent: w.parent, fields: merged}
}

package logging

import "sync"

// Record is an entry captured by a Recorder.
type Record struct {
	Level   Level
	Message string
	Fields  map[string]any
}

// Recorder keeps entries in memory. Tests use it to assert on what a
// component logged.
type Recorder struct {
	mu      *sync.Mutex
	records *[]Record
	level   *levelVar
	fields  []Field
}

// NewRecorder creates a Recorder capturing entries at or above level.
func NewRecorder(level Level) *Recorder {
	return &Recorder{
		mu:      &sync.Mutex{},
		records: &[]Record{},
		level:   &levelVar{level: level},
	}
}

func (r *Recorder) add(level Level, msg string, fields []Field) {
	if level < r.level.get() {
		return
	}
	rec := Record{Level: level, Message: msg, Fields: make(map[string]any, len(r.fields)+len(fields))}
	for _, f := range r.fields {
		rec.Fields[f.Key] = f.Value
	}
	for _, f := range fields {
		rec.Fields[f.Key] = f.Value
	}
	r.mu.Lock()
	*r.records = append(*r.records, rec)
	r.mu.Unlock()
}

func (r *Recorder) Debug(msg string, fields ...Field) { r.add(DebugLevel, msg, fields) }
func (r *Recorder) Info(msg string, fields ...Field)  { r.add(InfoLevel, msg, fields) }
func (r *Recorder) Warn(msg string, fields ...Field)  { r.add(WarnLevel, msg, fields) }
func (r *Recorder) Error(msg string, fields ...Field) { r.add(ErrorLevel, msg, fields) }

func (r *Recorder) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(r.fields)+len(fields))
	merged = append(merged, r.fields...)
	merged = append(merged, fields...)
	return &Recorder{mu: r.mu, records: r.records, level: r.level, fields: merged}
}

func (r *Recorder) SetLevel(level Level) { r.level.set(level) }
func (r *Recorder) GetLevel() Level      { return r.level.get() }

// Records returns a copy of everything captured so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(*r.records))
	copy(out, *r.records)
	return out
}

// AtLevel returns the captured entries with exactly the given level.
func (r *Recorder) AtLevel(level Level) []Record {
	var out []Record
	for _, rec := range r.Records() {
		if rec.Level == level {
			out = append(out, rec)
		}
	}
	return out
}

package models

// Sentinel is the canonical "not available" marker used by the original
// service-order documents and by every persisted projection of them.
// Inside the pipeline absence is carried by the Field zero value; the
// sentinel string only appears at serialization boundaries.
const Sentinel = "S/A"

// Field holds one extracted value. The zero value means "not available".
type Field struct {
	value string
	ok    bool
}

// FieldOf wraps a non-empty extracted value. An empty or sentinel input
// yields an unavailable Field, so extractors can pass captures through
// without special-casing misses.
func FieldOf(s string) Field {
	if s == "" || s == Sentinel {
		return Field{}
	}
	return Field{value: s, ok: true}
}

// Available reports whether the field holds a real value.
func (f Field) Available() bool {
	return f.ok
}

// Value returns the underlying value and whether it is available.
func (f Field) Value() (string, bool) {
	return f.value, f.ok
}

// String renders the field for persistence and error payloads: the value
// when available, the sentinel otherwise.
func (f Field) String() string {
	if !f.ok {
		return Sentinel
	}
	return f.value
}

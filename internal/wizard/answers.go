package wizard

import "fmt"

// Field names one answer slot. Hosts declare the closed set of fields their
// steps may own and pass it to New.
type Field string

// Answers holds the value chosen for each answered field.
// Absent fields have not been answered on the current path.
type Answers map[Field]any

// Has reports whether f has been answered.
func (a Answers) Has(f Field) bool {
	_, ok := a[f]
	return ok
}

// String returns the answer for f formatted as a string, or "" when absent.
func (a Answers) String(f Field) string {
	v, ok := a[f]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Clone returns a shallow copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Map converts the answers into a plain map keyed by field name.
func (a Answers) Map() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[string(k)] = v
	}
	return out
}

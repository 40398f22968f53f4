package parse

import "fmt"

// MalformedEventError reports a line that classified as some event kind but
// was missing the marker or numeric field that kind requires. The hand
// containing the line is rejected whole; partial hands are never emitted.
type MalformedEventError struct {
	Kind   string
	Marker string
	Line   string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed %s event: expected %q in line %q", e.Kind, e.Marker, e.Line)
}

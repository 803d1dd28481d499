package records

import "fmt"

// ShapeError reports input that is not an array of objects, or a record
// whose name or id field has the wrong JSON type.
type ShapeError struct {
	// Index is the record position, or -1 for the top level.
	Index  int
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("invalid input: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("invalid record at index %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("invalid record at index %d: field %q %s", e.Index, e.Field, e.Reason)
	}
}

// ErrorKind classifies the error for exit handling.
func (e *ShapeError) ErrorKind() string {
	return "input_shape"
}

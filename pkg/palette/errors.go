package palette

import (
	"errors"
	"fmt"
)

// ErrDataFormat is matched by every DataFormatError via errors.Is
var ErrDataFormat = errors.New("malformed palette data")

// DataFormatError reports reference data that cannot be loaded: a missing
// header or required column, or a row with a bad name or channel value.
// Line is the 1-based line in the source, zero when not tied to a row.
type DataFormatError struct {
    Line   int
    Column string
    Value  string
    Reason string
}

func (e *DataFormatError) Error() string {
    switch {
    case e.Line > 0 && e.Column != "":
        return fmt.Sprintf("palette line %d, column %s (%q): %s",
                           e.Line, e.Column, e.Value, e.Reason)
    case e.Line > 0:
        return fmt.Sprintf("palette line %d: %s", e.Line, e.Reason)
    default:
        return fmt.Sprintf("palette: %s", e.Reason)
    }
}

func (e *DataFormatError) Is(target error) bool {
    return target == ErrDataFormat
}

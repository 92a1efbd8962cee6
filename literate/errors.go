package literate

import "fmt"

// ParseError is the only error Parse returns. Line is 1-based and Content
// is the offending input line.
type ParseError struct {
	Message string
	Line    int
	Content string

	err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Content)
}

func (e *ParseError) Unwrap() error { return e.err }

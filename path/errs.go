package path

import "fmt"

// SyntaxError reports a malformed query string. Off is the byte offset
// of the offending character in the original text.
type SyntaxError struct {
	Query string
	Off   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query %q: offset %d: %s", e.Query, e.Off, e.Msg)
}

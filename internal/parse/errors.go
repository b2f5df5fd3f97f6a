package parse

import "fmt"

// SourceUnavailableError reports a source file that could not be read.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s: source unavailable: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// MalformedDeclarationError reports a class or interface header that looks
// like a declaration but cannot be decomposed.
type MalformedDeclarationError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("%s:%d: malformed declaration: %s", e.Path, e.Line, e.Reason)
}

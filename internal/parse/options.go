package parse

import "fmt"

// BodyTracking selects how the end of a method body is detected.
type BodyTracking string

const (
	// TrackPresence ends a body at the first line containing '}'.
	TrackPresence BodyTracking = "presence"
	// TrackDepth ends a body when its braces balance.
	TrackDepth BodyTracking = "depth"
)

// MalformedPolicy decides what a malformed declaration header does.
type MalformedPolicy string

const (
	// Abort fails the whole file with a *MalformedDeclarationError.
	Abort MalformedPolicy = "abort"
	// Skip records a diagnostic and keeps looking for a header.
	Skip MalformedPolicy = "skip"
)

// Options configures a parse run. The zero value uses presence tracking
// and aborts on malformed headers.
type Options struct {
	BodyTracking BodyTracking
	OnMalformed  MalformedPolicy
}

// ParseBodyTracking validates a body tracking name.
func ParseBodyTracking(s string) (BodyTracking, error) {
	switch t := BodyTracking(s); t {
	case TrackPresence, TrackDepth:
		return t, nil
	}
	return "", fmt.Errorf("unknown body tracking %q (want %q or %q)", s, TrackPresence, TrackDepth)
}

// ParseMalformedPolicy validates a malformed-header policy name.
func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch p := MalformedPolicy(s); p {
	case Abort, Skip:
		return p, nil
	}
	return "", fmt.Errorf("unknown malformed policy %q (want %q or %q)", s, Abort, Skip)
}

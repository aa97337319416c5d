package ward

import "fmt"

// UnresolvableHintError reports a forward reference that no resolver
// could satisfy. Compilation of the affected callable does not proceed.
type UnresolvableHintError struct {
	Name string
}

func (e *UnresolvableHintError) Error() string {
	return fmt.Sprintf("ward: unresolvable forward reference %q", e.Name)
}

// UnsupportedHintError reports a hint shape with no synthesis rule and no
// permissive fallback.
type UnsupportedHintError struct {
	Sign   Sign
	Reason string
}

func (e *UnsupportedHintError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("ward: unsupported hint sign %s", e.Sign)
	}
	return fmt.Sprintf("ward: unsupported hint sign %s: %s", e.Sign, e.Reason)
}

// InternalError reports a compiled procedure whose recorded sign
// disagrees with the requested node. It indicates a defect in the
// engine, never a recoverable condition.
type InternalError struct {
	Key  string
	Want Sign
	Got  Sign
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("ward: internal inconsistency for key %q: want sign %s, got %s", e.Key, e.Want, e.Got)
}

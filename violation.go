package ward

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ReturnKey is the reserved plan entry name for a callable's return
// value.
const ReturnKey = "return"

// maxReprWidth bounds the rendered width of offending values carried in
// violations, so a huge container never floods a diagnostic.
const maxReprWidth = 96

// Violation reports a checked value failing its compiled hint. It is
// terminal: always surfaced to the caller of the wrapped callable, never
// retried or swallowed.
type Violation struct {
	// Callable identifies the decorated callable.
	Callable string
	// Name is the violating parameter name, or ReturnKey.
	Name string
	// Value is a bounded rendering of the offending value.
	Value string
	// Hint renders the violated hint.
	Hint string
	// Path walks from the checked value down to the offending leaf.
	Path []Step
}

func (v *Violation) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ward: %s: ", v.Callable)
	if v.Name == ReturnKey {
		b.WriteString("return value")
	} else {
		fmt.Fprintf(&b, "parameter %q", v.Name)
	}
	fmt.Fprintf(&b, " violates %s: got %s", v.Hint, v.Value)
	for _, s := range v.Path {
		b.WriteString("\n  ")
		b.WriteString(s.String())
	}
	return b.String()
}

// boundedRepr renders a value for diagnostics, truncated to a display
// width rather than a byte count so multi-width runes cut cleanly.
func boundedRepr(v any) string {
	s := fmt.Sprintf("%#v", v)
	return runewidth.Truncate(s, maxReprWidth, "…")
}

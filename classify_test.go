package ward

import (
	"errors"
	"testing"
)

func TestClassifySignDeterminism(t *testing.T) {
	cases := []struct {
		hint Hint
		want Sign
	}{
		{Any(), SignAny},
		{Type[int](), SignClass},
		{Union(Type[int](), Type[string]()), SignUnion},
		{SliceOf(Type[int]()), SignSlice},
		{TupleOf(Type[int](), Type[string]()), SignTuple},
		{MapOf(Type[string](), Type[int]()), SignMap},
		{SeqOf(Type[int]()), SignSeq},
		{Literal("a", "b"), SignLiteral},
		{Numeric(TowerReal), SignNumeric},
	}
	for _, tc := range cases {
		for run := 0; run < 3; run++ {
			n, err := classify(tc.hint, nil)
			if err != nil {
				t.Fatalf("classify(%v): %v", tc.hint.Sign(), err)
			}
			if n.Sign != tc.want {
				t.Fatalf("classify run %d: got sign %v, want %v", run, n.Sign, tc.want)
			}
		}
	}
}

func TestClassifyStructuralKeyEquality(t *testing.T) {
	// Re-constructed hints of equal structure must share a canonical key.
	a, err := classify(SliceOf(Union(Type[int](), Type[string]())), nil)
	if err != nil {
		t.Fatalf("classify a: %v", err)
	}
	b, err := classify(SliceOf(Union(Type[int](), Type[string]())), nil)
	if err != nil {
		t.Fatalf("classify b: %v", err)
	}
	if a.Key() != b.Key() {
		t.Fatalf("structurally equal hints keyed differently: %q vs %q", a.Key(), b.Key())
	}
	c, err := classify(SliceOf(Union(Type[string](), Type[int]())), nil)
	if err != nil {
		t.Fatalf("classify c: %v", err)
	}
	if a.Key() == c.Key() {
		t.Fatalf("unions with different declared order must not share a key")
	}
}

func TestClassifyForwardReference(t *testing.T) {
	resolve := func(name string) (Hint, bool) {
		if name == "UserID" {
			return Type[int](), true
		}
		return Hint{}, false
	}
	n, err := classify(Ref("UserID"), resolve)
	if err != nil {
		t.Fatalf("classify ref: %v", err)
	}
	if n.Sign != SignClass {
		t.Fatalf("resolved ref should classify as class, got %v", n.Sign)
	}
}

func TestClassifyUnresolvableReference(t *testing.T) {
	_, err := classify(Ref("Undefined"), nil)
	var unresolvable *UnresolvableHintError
	if !errors.As(err, &unresolvable) {
		t.Fatalf("expected UnresolvableHintError, got %v", err)
	}
	if unresolvable.Name != "Undefined" {
		t.Fatalf("error should carry the name, got %q", unresolvable.Name)
	}
}

func TestClassifyRefCycleRejected(t *testing.T) {
	resolve := func(name string) (Hint, bool) {
		return Ref(name), true
	}
	_, err := classify(Ref("self"), resolve)
	var unresolvable *UnresolvableHintError
	if !errors.As(err, &unresolvable) {
		t.Fatalf("cyclic references must fail, got %v", err)
	}
}

func TestClassifyMethodlessProtocolIsAny(t *testing.T) {
	n, err := classify(Protocol[any](), nil)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if n.Sign != SignAny {
		t.Fatalf("empty interface protocol should route to accept-any, got %v", n.Sign)
	}
}

func TestClassifyMetadataFreeAnnotatedCollapses(t *testing.T) {
	n, err := classify(Annotated(Type[int]()), nil)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if n.Sign != SignClass {
		t.Fatalf("annotation without metadata should collapse to its inner hint, got %v", n.Sign)
	}
}

func TestClassifyRejectsInvalidShapes(t *testing.T) {
	var unsupported *UnsupportedHintError
	for _, h := range []Hint{
		{},
		Union(),
		Literal(),
		Literal([]int{1}),
		Class(nil),
		TupleOf(),
	} {
		_, err := classify(h, nil)
		if !errors.As(err, &unsupported) {
			t.Fatalf("hint %v: expected UnsupportedHintError, got %v", h.Sign(), err)
		}
	}
}

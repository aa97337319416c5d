package ward

import (
	"math/big"
	"testing"
)

func compileOrFatal(t *testing.T, e *Engine, h Hint) *Proc {
	t.Helper()
	p, err := e.Compile(h)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func TestClassCheck(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, Type[int]())
	if !p.Check(42) {
		t.Fatalf("int must satisfy int")
	}
	for _, v := range []any{"x", 4.2, nil, []int{1}} {
		if p.Check(v) {
			t.Fatalf("%T must not satisfy int", v)
		}
	}
}

func TestClassCheckInterface(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, Type[error]())
	if !p.Check(errTest{}) {
		t.Fatalf("error implementation must satisfy error")
	}
	if p.Check("not an error") {
		t.Fatalf("string must not satisfy error")
	}
}

type errTest struct{}

func (errTest) Error() string { return "test" }

func TestUnionShortCircuits(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, Union(Type[int](), Type[string]()))
	if !p.Check(1) || !p.Check("a") {
		t.Fatalf("union must accept both members")
	}
	if p.Check(1.5) {
		t.Fatalf("float64 matches neither int nor string")
	}
}

func TestSliceOfIntegersAccepted(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, SliceOf(Type[int]()))
	if !p.Check([]int{1, 2, 3, 4, 5}) {
		t.Fatalf("list of 5 integers must be accepted")
	}
	if !p.Check([]int{}) {
		t.Fatalf("empty slice is vacuously conforming")
	}
	if p.Check("not a slice") {
		t.Fatalf("non-slice must be rejected")
	}
}

func TestSliceViolationAtSmallSizeIsDeterministic(t *testing.T) {
	// Below the sampling budget coverage is exhaustive, so the bad
	// element is found on every run.
	e := New(Config{})
	p := compileOrFatal(t, e, SliceOf(Type[int]()))
	bad := []any{0, 1, 2, "three", 4}
	for run := 0; run < 20; run++ {
		if p.Check(bad) {
			t.Fatalf("run %d: violation at index 3 must be detected at this size", run)
		}
	}
}

func TestTupleShape(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, TupleOf(Type[int](), Type[string]()))
	if !p.Check([]any{1, "a"}) {
		t.Fatalf("(1, \"a\") must satisfy tuple[int, string]")
	}
	if p.Check([]any{1, 2}) {
		t.Fatalf("(1, 2) must fail on position 1")
	}
	if p.Check([]any{1}) {
		t.Fatalf("length mismatch must fail")
	}
	if p.Check([]any{1, "a", 2}) {
		t.Fatalf("extra positions must fail")
	}
}

func TestMapCheck(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, MapOf(Type[string](), Type[int]()))
	if !p.Check(map[string]int{"a": 1, "b": 2}) {
		t.Fatalf("conforming map rejected")
	}
	if !p.Check(map[string]int{}) {
		t.Fatalf("empty map is vacuously conforming")
	}
	if p.Check(map[string]any{"a": "x"}) {
		t.Fatalf("bad value must be detected in a small map")
	}
	if p.Check(map[int]int{1: 1}) {
		t.Fatalf("bad key must be detected in a small map")
	}
	if p.Check([]int{1}) {
		t.Fatalf("non-map must be rejected")
	}
}

func intSeq(vals ...int) func(func(int) bool) {
	return func(yield func(int) bool) {
		for _, v := range vals {
			if !yield(v) {
				return
			}
		}
	}
}

func TestSeqChecksFirstElement(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, SeqOf(Type[int]()))
	if !p.Check(intSeq(1, 2, 3)) {
		t.Fatalf("int sequence rejected")
	}
	if !p.Check(intSeq()) {
		t.Fatalf("empty sequence is vacuously conforming")
	}
	bad := func(yield func(any) bool) {
		yield("x")
	}
	if p.Check(bad) {
		t.Fatalf("sequence starting with a string must fail seq[int]")
	}
	if p.Check(42) {
		t.Fatalf("non-iterator must be rejected")
	}
}

func TestLiteralCheck(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, Literal("red", "green", 3))
	for _, v := range []any{"red", "green", 3} {
		if !p.Check(v) {
			t.Fatalf("declared literal %v rejected", v)
		}
	}
	for _, v := range []any{"blue", 4, nil, []int{}} {
		if p.Check(v) {
			t.Fatalf("undeclared value %v accepted", v)
		}
	}
	pn := compileOrFatal(t, e, Literal(nil, "none"))
	if !pn.Check(nil) {
		t.Fatalf("nil literal must match nil")
	}
}

type duckCloser struct{}

func (duckCloser) Close() error { return nil }

type notCloser struct{}

func TestProtocolIsStructural(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, Protocol[interface{ Close() error }]())
	if !p.Check(duckCloser{}) {
		t.Fatalf("type with Close method must conform")
	}
	if p.Check(notCloser{}) {
		t.Fatalf("type without Close must not conform")
	}
	if p.Check(nil) {
		t.Fatalf("nil never conforms to a protocol")
	}
}

type evenValidator struct{}

func (evenValidator) Validate(v any) bool {
	i, ok := v.(int)
	return ok && i%2 == 0
}

func TestAnnotatedValidator(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, Annotated(Type[int](), evenValidator{}))
	if !p.Check(4) {
		t.Fatalf("even int must pass")
	}
	if p.Check(3) {
		t.Fatalf("validator must reject odd int")
	}
	if p.Check("4") {
		t.Fatalf("inner type check must run before the validator")
	}

	// Passive metadata is carried but never invoked.
	passive := compileOrFatal(t, e, Annotated(Type[int](), "docs: an int"))
	if !passive.Check(3) {
		t.Fatalf("passive metadata must not constrain")
	}
}

func TestNumericTower(t *testing.T) {
	e := New(Config{})
	cases := []struct {
		level  Tower
		accept []any
		reject []any
	}{
		{TowerInteger, []any{1, uint8(2), int64(-3), big.NewInt(9)}, []any{1.5, 2 + 3i, "1", nil}},
		{TowerRational, []any{1, big.NewRat(1, 2)}, []any{1.5, 2 + 3i}},
		{TowerReal, []any{1, 1.5, float32(2), big.NewFloat(3)}, []any{2 + 3i, "x"}},
		{TowerComplex, []any{1, 1.5, 2 + 3i, complex64(1)}, []any{"x", nil, []int{1}}},
	}
	for _, tc := range cases {
		p := compileOrFatal(t, e, Numeric(tc.level))
		for _, v := range tc.accept {
			if !p.Check(v) {
				t.Fatalf("%s must accept %T(%v)", tc.level, v, v)
			}
		}
		for _, v := range tc.reject {
			if p.Check(v) {
				t.Fatalf("%s must reject %T(%v)", tc.level, v, v)
			}
		}
	}
}

type celsius float64

func TestNumericTowerNamedKinds(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, Numeric(TowerReal))
	if !p.Check(celsius(36.6)) {
		t.Fatalf("named float kind must classify as real")
	}
}

func TestAnyAcceptsEverything(t *testing.T) {
	e := New(Config{})
	p := compileOrFatal(t, e, Any())
	for _, v := range []any{nil, 1, "x", []int{1}, map[string]int{}, struct{}{}} {
		if !p.Check(v) {
			t.Fatalf("accept-any rejected %T", v)
		}
	}
}

package ward

import "reflect"

// Tower identifies a level of the numeric tower. Each level subsumes the
// ones below it: every integer is rational, every rational is real, every
// real is complex.
type Tower uint8

const (
	TowerInteger Tower = iota + 1
	TowerRational
	TowerReal
	TowerComplex
)

func (t Tower) String() string {
	switch t {
	case TowerInteger:
		return "integer"
	case TowerRational:
		return "rational"
	case TowerReal:
		return "real"
	case TowerComplex:
		return "complex"
	default:
		return "tower?"
	}
}

// Validator is implemented by Annotated metadata that takes part in
// checking. Metadata without this interface is carried but never invoked.
type Validator interface {
	Validate(value any) bool
}

// Hint is an immutable type constraint built by the constructors below.
// The zero value is invalid and rejected at compile time.
type Hint struct {
	sign     Sign
	rtype    reflect.Type
	children []Hint
	literals []any
	meta     []any
	name     string
	tower    Tower
}

// Sign reports the hint's structural category before classification.
func (h Hint) Sign() Sign { return h.sign }

// Any accepts every value, nil included.
func Any() Hint {
	return Hint{sign: SignAny}
}

// Type constrains a value to the runtime type T (or a type assignable to
// it; for interface T, any implementation).
func Type[T any]() Hint {
	return Class(reflect.TypeOf((*T)(nil)).Elem())
}

// Class is the non-generic form of Type for a reflect.Type obtained
// elsewhere.
func Class(t reflect.Type) Hint {
	return Hint{sign: SignClass, rtype: t}
}

// Union accepts a value matching any member. Members are tried in
// declared order within equal static cost.
func Union(members ...Hint) Hint {
	return Hint{sign: SignUnion, children: members}
}

// SliceOf constrains a slice or array whose elements match elem.
// Elements of large values are validated by sampling.
func SliceOf(elem Hint) Hint {
	return Hint{sign: SignSlice, children: []Hint{elem}}
}

// TupleOf constrains a slice or array of exactly len(elems) positions,
// each checked against its own hint. Never sampled.
func TupleOf(elems ...Hint) Hint {
	return Hint{sign: SignTuple, children: elems}
}

// MapOf constrains a map whose keys and values match the given hints.
// Entries of large maps are validated by sampling.
func MapOf(key, value Hint) Hint {
	return Hint{sign: SignMap, children: []Hint{key, value}}
}

// SeqOf constrains a one-pass iterator in the func(yield func(T) bool)
// shape. Only the first obtainable element is validated.
func SeqOf(elem Hint) Hint {
	return Hint{sign: SignSeq, children: []Hint{elem}}
}

// Literal accepts exactly the listed values, compared by equality
// (identity for nil). Values must be of comparable types.
func Literal(values ...any) Hint {
	return Hint{sign: SignLiteral, literals: values}
}

// Protocol constrains a value structurally: its method set must contain
// every method name declared by the interface T. Conformance is
// duck-typed; the value need not nominally implement T.
func Protocol[T any]() Hint {
	return Hint{sign: SignProtocol, rtype: reflect.TypeOf((*T)(nil)).Elem()}
}

// Ref is a forward reference resolved through the engine's Resolver at
// compile time. An unresolvable name fails compilation.
func Ref(name string) Hint {
	return Hint{sign: SignRef, name: name}
}

// Annotated wraps inner with metadata. Metadata implementing Validator is
// applied as an additional predicate after the inner check passes.
func Annotated(inner Hint, meta ...any) Hint {
	return Hint{sign: SignAnnotated, children: []Hint{inner}, meta: meta}
}

// Numeric accepts any value the numeric tower classifies at or below the
// given level.
func Numeric(level Tower) Hint {
	return Hint{sign: SignNumeric, tower: level}
}

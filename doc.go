// Package ward compiles type hints into reusable runtime check
// procedures.
//
// A hint is built from the constructors in this package (Type, Union,
// SliceOf, Literal, ...), classified into a sign-tagged node tree, and
// compiled once into a closure composition. Compiled procedures are
// cached per engine by structural identity, so the same hint annotated
// on many callables costs one compilation.
//
// Checks are built for the hot path: container elements are validated by
// bounded pseudo-random sampling instead of full traversal, trading
// probabilistic completeness on large containers for constant cost. When
// a check fails, the reporter re-walks the value exhaustively to name
// the exact offending sub-value, so diagnostics stay precise even though
// checks are sampled.
package ward

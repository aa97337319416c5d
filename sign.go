package ward

import "fmt"

// Sign enumerates the structural categories a hint can classify into.
// Every hint maps to exactly one sign; the mapping depends only on the
// hint's shape, never on checked values.
type Sign uint8

const (
	SignInvalid Sign = iota
	SignAny
	SignClass
	SignUnion
	SignSlice
	SignTuple
	SignMap
	SignSeq
	SignLiteral
	SignProtocol
	SignAnnotated
	SignNumeric
	SignRef
)

func (s Sign) String() string {
	switch s {
	case SignInvalid:
		return "invalid"
	case SignAny:
		return "any"
	case SignClass:
		return "class"
	case SignUnion:
		return "union"
	case SignSlice:
		return "slice"
	case SignTuple:
		return "tuple"
	case SignMap:
		return "map"
	case SignSeq:
		return "seq"
	case SignLiteral:
		return "literal"
	case SignProtocol:
		return "protocol"
	case SignAnnotated:
		return "annotated"
	case SignNumeric:
		return "numeric"
	case SignRef:
		return "ref"
	default:
		return fmt.Sprintf("Sign(%d)", s)
	}
}

// costRank orders union members for evaluation. Members are tried
// cheapest rank first; declared order is preserved within a rank.
func (s Sign) costRank() int {
	switch s {
	case SignAny:
		return 0
	case SignLiteral, SignClass, SignNumeric:
		return 1
	case SignProtocol:
		return 2
	case SignTuple:
		return 3
	case SignSlice, SignMap, SignSeq:
		return 4
	default:
		return 5
	}
}

package ward

import (
	"fmt"
	"reflect"
	"strings"
)

// Resolver looks up a forward-referenced hint by name. It is supplied by
// the caller; the engine makes no assumption about how namespaces are
// represented.
type Resolver func(name string) (Hint, bool)

// maxRefChain bounds forward-reference chains so mutually referring
// names fail compilation instead of looping.
const maxRefChain = 32

// Node is the classifier's normalized view of a hint.
type Node struct {
	Sign     Sign
	Type     reflect.Type
	Children []*Node
	Literals []any
	Meta     []any
	Tower    Tower

	key string
}

// Key returns the canonical identity of the node. Structurally equal
// hints share a key even when built as distinct values.
func (n *Node) Key() string { return n.key }

// classify normalizes a hint into a Node, resolving forward references
// through resolve. It is pure and idempotent: the same hint shape always
// yields the same node.
func classify(h Hint, resolve Resolver) (*Node, error) {
	return classifyChain(h, resolve, 0)
}

func classifyChain(h Hint, resolve Resolver, chain int) (*Node, error) {
	switch h.sign {
	case SignAny:
		return &Node{Sign: SignAny, key: "any"}, nil

	case SignClass:
		if h.rtype == nil {
			return nil, &UnsupportedHintError{Sign: SignClass, Reason: "nil type"}
		}
		return &Node{Sign: SignClass, Type: h.rtype, key: "class(" + typeKey(h.rtype) + ")"}, nil

	case SignUnion:
		if len(h.children) == 0 {
			return nil, &UnsupportedHintError{Sign: SignUnion, Reason: "no members"}
		}
		children, err := classifyAll(h.children, resolve, chain)
		if err != nil {
			return nil, err
		}
		return &Node{Sign: SignUnion, Children: children, key: "union(" + childKeys(children) + ")"}, nil

	case SignSlice:
		elem, err := classifyChain(h.children[0], resolve, chain)
		if err != nil {
			return nil, err
		}
		return &Node{Sign: SignSlice, Children: []*Node{elem}, key: "slice(" + elem.key + ")"}, nil

	case SignTuple:
		if len(h.children) == 0 {
			return nil, &UnsupportedHintError{Sign: SignTuple, Reason: "no positions"}
		}
		children, err := classifyAll(h.children, resolve, chain)
		if err != nil {
			return nil, err
		}
		return &Node{Sign: SignTuple, Children: children, key: "tuple(" + childKeys(children) + ")"}, nil

	case SignMap:
		children, err := classifyAll(h.children, resolve, chain)
		if err != nil {
			return nil, err
		}
		return &Node{Sign: SignMap, Children: children, key: "map(" + children[0].key + ";" + children[1].key + ")"}, nil

	case SignSeq:
		elem, err := classifyChain(h.children[0], resolve, chain)
		if err != nil {
			return nil, err
		}
		return &Node{Sign: SignSeq, Children: []*Node{elem}, key: "seq(" + elem.key + ")"}, nil

	case SignLiteral:
		if len(h.literals) == 0 {
			return nil, &UnsupportedHintError{Sign: SignLiteral, Reason: "empty literal set"}
		}
		for _, v := range h.literals {
			if v != nil && !reflect.TypeOf(v).Comparable() {
				return nil, &UnsupportedHintError{
					Sign:   SignLiteral,
					Reason: fmt.Sprintf("literal of non-comparable type %T", v),
				}
			}
		}
		return &Node{Sign: SignLiteral, Literals: h.literals, key: "lit(" + literalKeys(h.literals) + ")"}, nil

	case SignProtocol:
		if h.rtype == nil || h.rtype.Kind() != reflect.Interface {
			return nil, &UnsupportedHintError{Sign: SignProtocol, Reason: "protocol requires an interface type"}
		}
		if h.rtype.NumMethod() == 0 {
			// A methodless protocol constrains nothing; route it to the
			// permissive sign instead of erroring.
			return &Node{Sign: SignAny, key: "any"}, nil
		}
		return &Node{Sign: SignProtocol, Type: h.rtype, key: "proto(" + typeKey(h.rtype) + ")"}, nil

	case SignAnnotated:
		inner, err := classifyChain(h.children[0], resolve, chain)
		if err != nil {
			return nil, err
		}
		if len(h.meta) == 0 {
			// Metadata-free annotation is just its inner hint.
			return inner, nil
		}
		return &Node{
			Sign:     SignAnnotated,
			Children: []*Node{inner},
			Meta:     h.meta,
			key:      "annot(" + inner.key + ";" + metaKeys(h.meta) + ")",
		}, nil

	case SignNumeric:
		if h.tower < TowerInteger || h.tower > TowerComplex {
			return nil, &UnsupportedHintError{Sign: SignNumeric, Reason: "unknown tower level"}
		}
		return &Node{Sign: SignNumeric, Tower: h.tower, key: "num(" + h.tower.String() + ")"}, nil

	case SignRef:
		if chain >= maxRefChain {
			return nil, &UnresolvableHintError{Name: h.name}
		}
		if resolve == nil {
			return nil, &UnresolvableHintError{Name: h.name}
		}
		target, ok := resolve(h.name)
		if !ok {
			return nil, &UnresolvableHintError{Name: h.name}
		}
		return classifyChain(target, resolve, chain+1)

	default:
		return nil, &UnsupportedHintError{Sign: h.sign}
	}
}

func classifyAll(hints []Hint, resolve Resolver, chain int) ([]*Node, error) {
	nodes := make([]*Node, len(hints))
	for i, h := range hints {
		n, err := classifyChain(h, resolve, chain)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

// typeKey names a reflect.Type unambiguously enough for cache identity:
// fully qualified for named types, structural rendering otherwise.
func typeKey(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func childKeys(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.key
	}
	return strings.Join(parts, ",")
}

func literalKeys(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = fmt.Sprintf("%T:%#v", v, v)
	}
	return strings.Join(parts, ",")
}

// metaKeys derives identity for annotation metadata from its type and
// printed value. Validators whose printed state coincides share a
// compiled procedure.
func metaKeys(meta []any) string {
	parts := make([]string, len(meta))
	for i, m := range meta {
		parts[i] = fmt.Sprintf("%T:%v", m, m)
	}
	return strings.Join(parts, ",")
}

// String renders the node the way a hint expression reads.
func (n *Node) String() string {
	switch n.Sign {
	case SignAny:
		return "any"
	case SignClass:
		return n.Type.String()
	case SignUnion:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return strings.Join(parts, " | ")
	case SignSlice:
		return "[]" + n.Children[0].String()
	case SignTuple:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return "tuple[" + strings.Join(parts, ", ") + "]"
	case SignMap:
		return "map[" + n.Children[0].String() + "]" + n.Children[1].String()
	case SignSeq:
		return "seq[" + n.Children[0].String() + "]"
	case SignLiteral:
		parts := make([]string, len(n.Literals))
		for i, v := range n.Literals {
			parts[i] = literalRepr(v)
		}
		return "lit[" + strings.Join(parts, ", ") + "]"
	case SignProtocol:
		return "proto[" + n.Type.String() + "]"
	case SignAnnotated:
		return "annotated[" + n.Children[0].String() + "]"
	case SignNumeric:
		return n.Tower.String()
	default:
		return n.Sign.String()
	}
}

func literalRepr(v any) string {
	if v == nil {
		return "nil"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

package ward

import (
	"reflect"
	"slices"
)

// Proc is a compiled check procedure for one hint. The hot path is Fn;
// the retained node feeds the exhaustive explain walk on failure. A Proc
// is immutable after synthesis and safe for concurrent use.
type Proc struct {
	sign Sign
	key  string
	node *Node
	fn   func(value any) bool
}

// Check runs the compiled check against a value.
func (p *Proc) Check(value any) bool { return p.fn(value) }

// Sign returns the sign the procedure was compiled for.
func (p *Proc) Sign() Sign { return p.sign }

// Key returns the canonical identity the procedure is cached under.
func (p *Proc) Key() string { return p.key }

// Node returns the normalized hint the procedure checks.
func (p *Proc) Node() *Node { return p.node }

// synthesize emits the check procedure for one node, compiling children
// through compileChild so structurally shared sub-hints hit the cache.
func (e *Engine) synthesize(n *Node, compileChild func(*Node) (*Proc, error)) (*Proc, error) {
	fn, err := e.synthFn(n, compileChild)
	if err != nil {
		return nil, err
	}
	return &Proc{sign: n.Sign, key: n.key, node: n, fn: fn}, nil
}

func (e *Engine) synthFn(n *Node, compileChild func(*Node) (*Proc, error)) (func(any) bool, error) {
	switch n.Sign {
	case SignAny:
		return func(any) bool { return true }, nil

	case SignClass:
		return synthClass(n.Type), nil

	case SignUnion:
		return e.synthUnion(n, compileChild)

	case SignSlice:
		elem, err := compileChild(n.Children[0])
		if err != nil {
			return nil, err
		}
		return e.synthSlice(elem), nil

	case SignTuple:
		procs, err := compileAll(n.Children, compileChild)
		if err != nil {
			return nil, err
		}
		return synthTuple(procs), nil

	case SignMap:
		key, err := compileChild(n.Children[0])
		if err != nil {
			return nil, err
		}
		val, err := compileChild(n.Children[1])
		if err != nil {
			return nil, err
		}
		return e.synthMap(key, val), nil

	case SignSeq:
		elem, err := compileChild(n.Children[0])
		if err != nil {
			return nil, err
		}
		return synthSeq(elem), nil

	case SignLiteral:
		return synthLiteral(n.Literals), nil

	case SignProtocol:
		return synthProtocol(n.Type), nil

	case SignAnnotated:
		inner, err := compileChild(n.Children[0])
		if err != nil {
			return nil, err
		}
		return synthAnnotated(inner, n.Meta), nil

	case SignNumeric:
		level := n.Tower
		return func(v any) bool { return towerAccepts(level, v) }, nil

	default:
		// Refs are resolved away by classification; anything else
		// reaching synthesis is a defect.
		return nil, &InternalError{Key: n.key, Want: n.Sign, Got: SignInvalid}
	}
}

func compileAll(nodes []*Node, compileChild func(*Node) (*Proc, error)) ([]*Proc, error) {
	procs := make([]*Proc, len(nodes))
	for i, c := range nodes {
		p, err := compileChild(c)
		if err != nil {
			return nil, err
		}
		procs[i] = p
	}
	return procs, nil
}

func synthClass(target reflect.Type) func(any) bool {
	if target.Kind() == reflect.Interface {
		return func(v any) bool {
			if v == nil {
				return false
			}
			return reflect.TypeOf(v).Implements(target)
		}
	}
	return func(v any) bool {
		if v == nil {
			return false
		}
		t := reflect.TypeOf(v)
		return t == target || t.AssignableTo(target)
	}
}

// synthUnion short-circuits over members, cheapest sign rank first.
// Ranking is static; declared order breaks ties, so semantics never
// depend on it, only average cost does.
func (e *Engine) synthUnion(n *Node, compileChild func(*Node) (*Proc, error)) (func(any) bool, error) {
	procs, err := compileAll(n.Children, compileChild)
	if err != nil {
		return nil, err
	}
	ordered := slices.Clone(procs)
	slices.SortStableFunc(ordered, func(a, b *Proc) int {
		return a.sign.costRank() - b.sign.costRank()
	})
	return func(v any) bool {
		for _, m := range ordered {
			if m.fn(v) {
				return true
			}
		}
		return false
	}, nil
}

func (e *Engine) synthSlice(elem *Proc) func(any) bool {
	s := e.sampler
	return func(v any) bool {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
		default:
			return false
		}
		for _, i := range s.pick(rv.Len()) {
			if !elem.fn(rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
}

func synthTuple(procs []*Proc) func(any) bool {
	return func(v any) bool {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
		default:
			return false
		}
		if rv.Len() != len(procs) {
			return false
		}
		for i, p := range procs {
			if !p.fn(rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
}

func (e *Engine) synthMap(key, val *Proc) func(any) bool {
	s := e.sampler
	return func(v any) bool {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return false
		}
		limit := s.limit(rv.Len())
		iter := rv.MapRange()
		for i := 0; i < limit && iter.Next(); i++ {
			if !key.fn(iter.Key().Interface()) {
				return false
			}
			if !val.fn(iter.Value().Interface()) {
				return false
			}
		}
		return true
	}
}

// synthSeq checks the first obtainable element of a one-pass iterator in
// the func(yield func(T) bool) shape. Length is unknown, so the sampling
// budget degenerates to one element.
func synthSeq(elem *Proc) func(any) bool {
	return func(v any) bool {
		rv := reflect.ValueOf(v)
		yt, ok := seqYieldType(rv)
		if !ok {
			return false
		}
		pass := true
		yield := reflect.MakeFunc(yt, func(args []reflect.Value) []reflect.Value {
			pass = elem.fn(args[0].Interface())
			return []reflect.Value{reflect.ValueOf(false)}
		})
		rv.Call([]reflect.Value{yield})
		return pass
	}
}

// seqYieldType validates the iterator shape and returns the yield
// callback type.
func seqYieldType(rv reflect.Value) (reflect.Type, bool) {
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	t := rv.Type()
	if t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return nil, false
	}
	yt := t.In(0)
	if yt.Kind() != reflect.Func || yt.NumIn() != 1 || yt.NumOut() != 1 || yt.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	return yt, true
}

func synthLiteral(values []any) func(any) bool {
	return func(v any) bool {
		if v != nil && !reflect.TypeOf(v).Comparable() {
			return false
		}
		for _, want := range values {
			if want == v {
				return true
			}
		}
		return false
	}
}

func synthProtocol(target reflect.Type) func(any) bool {
	names := make([]string, target.NumMethod())
	for i := range names {
		names[i] = target.Method(i).Name
	}
	return func(v any) bool {
		if v == nil {
			return false
		}
		t := reflect.TypeOf(v)
		for _, name := range names {
			if _, ok := t.MethodByName(name); !ok {
				return false
			}
		}
		return true
	}
}

func synthAnnotated(inner *Proc, meta []any) func(any) bool {
	var active []Validator
	for _, m := range meta {
		if val, ok := m.(Validator); ok {
			active = append(active, val)
		}
	}
	if len(active) == 0 {
		return inner.fn
	}
	return func(v any) bool {
		if !inner.fn(v) {
			return false
		}
		for _, val := range active {
			if !val.Validate(v) {
				return false
			}
		}
		return true
	}
}

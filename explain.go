package ward

import (
	"fmt"
	"reflect"
	"strings"
)

// DefaultMaxExplainDepth bounds the exhaustive diagnostic walk so
// self-referential data terminates instead of recursing unboundedly.
const DefaultMaxExplainDepth = 32

// Step is one link of a violation's explanation path: a container hint,
// the index or key taken into it, and the sub-hint expected there. The
// final step carries the leaf failure detail.
type Step struct {
	Container string
	Key       string
	Hint      string
	Detail    string
}

func (s Step) String() string {
	var b strings.Builder
	if s.Key != "" {
		fmt.Fprintf(&b, "at %s of %s: ", s.Key, s.Container)
	}
	if s.Hint != "" {
		fmt.Fprintf(&b, "expected %s", s.Hint)
	}
	if s.Detail != "" {
		if s.Hint != "" {
			b.WriteString(": ")
		}
		b.WriteString(s.Detail)
	}
	return b.String()
}

// Explain re-walks a failed check exhaustively, without sampling, and
// returns the path to the first violating sub-value. It runs only on the
// cold path, after Check has already reported failure; on a conforming
// value it returns nil (the sampled check may fail values the exhaustive
// walk cannot fault only if a validator is non-deterministic).
func (e *Engine) Explain(p *Proc, value any) []Step {
	x := &explainer{
		maxDepth: e.maxDepth,
		visited:  make(map[visitRef]struct{}),
	}
	steps, ok := x.walk(p.node, value, 0)
	if ok {
		return nil
	}
	return steps
}

type visitRef struct {
	ptr uintptr
	t   reflect.Type
}

type explainer struct {
	maxDepth int
	visited  map[visitRef]struct{}
}

// enter guards against cycles and unbounded depth. A revisited or
// too-deep value is treated as conforming: the walk must terminate, and
// the hot-path check already faulted the value somewhere reachable.
func (x *explainer) enter(rv reflect.Value, depth int) (func(), bool) {
	if depth >= x.maxDepth {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer:
		if rv.IsNil() {
			return func() {}, true
		}
		ref := visitRef{ptr: rv.Pointer(), t: rv.Type()}
		if _, seen := x.visited[ref]; seen {
			return nil, false
		}
		x.visited[ref] = struct{}{}
		return func() { delete(x.visited, ref) }, true
	default:
		return func() {}, true
	}
}

// walk checks value against node exhaustively. It returns the failure
// path and false when the value does not conform.
func (x *explainer) walk(n *Node, v any, depth int) ([]Step, bool) {
	switch n.Sign {
	case SignAny:
		return nil, true

	case SignClass:
		if synthClass(n.Type)(v) {
			return nil, true
		}
		return []Step{{Hint: n.String(), Detail: typeDetail(v)}}, false

	case SignNumeric:
		if towerAccepts(n.Tower, v) {
			return nil, true
		}
		return []Step{{Hint: n.String(), Detail: typeDetail(v)}}, false

	case SignLiteral:
		if synthLiteral(n.Literals)(v) {
			return nil, true
		}
		return []Step{{Hint: n.String(), Detail: fmt.Sprintf("%s equals none of the declared literals", valueDetail(v))}}, false

	case SignProtocol:
		return x.walkProtocol(n, v)

	case SignUnion:
		return x.walkUnion(n, v, depth)

	case SignSlice:
		return x.walkSlice(n, v, depth)

	case SignTuple:
		return x.walkTuple(n, v, depth)

	case SignMap:
		return x.walkMap(n, v, depth)

	case SignSeq:
		return x.walkSeq(n, v, depth)

	case SignAnnotated:
		return x.walkAnnotated(n, v, depth)

	default:
		return []Step{{Hint: n.String(), Detail: "unexplainable sign"}}, false
	}
}

func (x *explainer) walkProtocol(n *Node, v any) ([]Step, bool) {
	if v == nil {
		return []Step{{Hint: n.String(), Detail: "value is nil"}}, false
	}
	t := reflect.TypeOf(v)
	for i := 0; i < n.Type.NumMethod(); i++ {
		name := n.Type.Method(i).Name
		if _, ok := t.MethodByName(name); !ok {
			return []Step{{
				Hint:   n.String(),
				Detail: fmt.Sprintf("type %s has no method %s", t, name),
			}}, false
		}
	}
	return nil, true
}

// walkUnion reports every member as failing, so the caller sees why no
// alternative applied.
func (x *explainer) walkUnion(n *Node, v any, depth int) ([]Step, bool) {
	details := make([]string, 0, len(n.Children))
	for _, m := range n.Children {
		steps, ok := x.walk(m, v, depth)
		if ok {
			return nil, true
		}
		detail := m.String()
		if len(steps) > 0 && steps[len(steps)-1].Detail != "" {
			detail = fmt.Sprintf("%s (%s)", m.String(), steps[len(steps)-1].Detail)
		}
		details = append(details, detail)
	}
	return []Step{{
		Hint:   n.String(),
		Detail: "no union member matched: " + strings.Join(details, "; "),
	}}, false
}

func (x *explainer) walkSlice(n *Node, v any, depth int) ([]Step, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return []Step{{Hint: n.String(), Detail: typeDetail(v)}}, false
	}
	leave, descend := x.enter(rv, depth)
	if !descend {
		return nil, true
	}
	defer leave()
	elem := n.Children[0]
	for i := 0; i < rv.Len(); i++ {
		steps, ok := x.walk(elem, rv.Index(i).Interface(), depth+1)
		if !ok {
			step := Step{Container: n.String(), Key: fmt.Sprintf("index %d", i), Hint: elem.String()}
			return append([]Step{step}, steps...), false
		}
	}
	return nil, true
}

func (x *explainer) walkTuple(n *Node, v any, depth int) ([]Step, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return []Step{{Hint: n.String(), Detail: typeDetail(v)}}, false
	}
	if rv.Len() != len(n.Children) {
		return []Step{{
			Hint:   n.String(),
			Detail: fmt.Sprintf("length %d, want %d", rv.Len(), len(n.Children)),
		}}, false
	}
	leave, descend := x.enter(rv, depth)
	if !descend {
		return nil, true
	}
	defer leave()
	for i, elem := range n.Children {
		steps, ok := x.walk(elem, rv.Index(i).Interface(), depth+1)
		if !ok {
			step := Step{Container: n.String(), Key: fmt.Sprintf("position %d", i), Hint: elem.String()}
			return append([]Step{step}, steps...), false
		}
	}
	return nil, true
}

func (x *explainer) walkMap(n *Node, v any, depth int) ([]Step, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return []Step{{Hint: n.String(), Detail: typeDetail(v)}}, false
	}
	leave, descend := x.enter(rv, depth)
	if !descend {
		return nil, true
	}
	defer leave()
	keyHint, valHint := n.Children[0], n.Children[1]
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		if steps, ok := x.walk(keyHint, k, depth+1); !ok {
			step := Step{Container: n.String(), Key: fmt.Sprintf("key %s", boundedRepr(k)), Hint: keyHint.String()}
			return append([]Step{step}, steps...), false
		}
		if steps, ok := x.walk(valHint, iter.Value().Interface(), depth+1); !ok {
			step := Step{Container: n.String(), Key: fmt.Sprintf("value for key %s", boundedRepr(k)), Hint: valHint.String()}
			return append([]Step{step}, steps...), false
		}
	}
	return nil, true
}

func (x *explainer) walkSeq(n *Node, v any, depth int) ([]Step, bool) {
	rv := reflect.ValueOf(v)
	yt, ok := seqYieldType(rv)
	if !ok {
		return []Step{{Hint: n.String(), Detail: typeDetail(v)}}, false
	}
	elem := n.Children[0]
	var steps []Step
	conforms := true
	yield := reflect.MakeFunc(yt, func(args []reflect.Value) []reflect.Value {
		steps, conforms = x.walk(elem, args[0].Interface(), depth+1)
		return []reflect.Value{reflect.ValueOf(false)}
	})
	rv.Call([]reflect.Value{yield})
	if conforms {
		return nil, true
	}
	step := Step{Container: n.String(), Key: "element 0", Hint: elem.String()}
	return append([]Step{step}, steps...), false
}

func (x *explainer) walkAnnotated(n *Node, v any, depth int) ([]Step, bool) {
	steps, ok := x.walk(n.Children[0], v, depth)
	if !ok {
		return steps, false
	}
	for _, m := range n.Meta {
		val, isValidator := m.(Validator)
		if !isValidator {
			continue
		}
		if !val.Validate(v) {
			return []Step{{
				Hint:   n.String(),
				Detail: fmt.Sprintf("validator %T rejected %s", m, valueDetail(v)),
			}}, false
		}
	}
	return nil, true
}

func typeDetail(v any) string {
	if v == nil {
		return "value is nil"
	}
	return fmt.Sprintf("value of type %s", reflect.TypeOf(v))
}

func valueDetail(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%s %s", reflect.TypeOf(v), boundedRepr(v))
}

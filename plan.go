package ward

import "fmt"

// ParamHint pairs a parameter name (or ReturnKey) with its hint.
type ParamHint struct {
	Name string
	Hint Hint
}

// Plan is the compiled check plan for one callable: an ordered mapping
// from parameter name (plus ReturnKey) to check procedure. Built once at
// decoration time, immutable afterwards, owned by its wrapper.
type Plan struct {
	callable string
	names    []string
	procs    map[string]*Proc
	engine   *Engine
}

// BuildPlan compiles every entry's hint, in declared order. Any failure
// (unresolvable reference, unsupported shape) aborts decoration of this
// callable immediately; callables already wrapped are unaffected.
func (e *Engine) BuildPlan(callable string, params []ParamHint) (*Plan, error) {
	p := &Plan{
		callable: callable,
		names:    make([]string, 0, len(params)),
		procs:    make(map[string]*Proc, len(params)),
		engine:   e,
	}
	for _, ph := range params {
		if _, dup := p.procs[ph.Name]; dup {
			return nil, fmt.Errorf("ward: %s: duplicate plan entry %q", callable, ph.Name)
		}
		proc, err := e.Compile(ph.Hint)
		if err != nil {
			return nil, fmt.Errorf("ward: %s: parameter %q: %w", callable, ph.Name, err)
		}
		p.names = append(p.names, ph.Name)
		p.procs[ph.Name] = proc
	}
	return p, nil
}

// BuildPlan builds a plan on the default engine.
func BuildPlan(callable string, params []ParamHint) (*Plan, error) {
	return Default().BuildPlan(callable, params)
}

// Callable returns the identity the plan was built for.
func (p *Plan) Callable() string { return p.callable }

// Names returns the plan's entry names in declared order.
func (p *Plan) Names() []string { return p.names }

// Proc returns the compiled procedure for one entry.
func (p *Plan) Proc(name string) (*Proc, bool) {
	proc, ok := p.procs[name]
	return proc, ok
}

// Check validates one bound value against its entry's procedure. Names
// without a plan entry pass: an unannotated parameter is unchecked. On
// failure the violation carries the exhaustive explanation path.
func (p *Plan) Check(name string, value any) (bool, *Violation) {
	proc, ok := p.procs[name]
	if !ok || proc.fn(value) {
		return true, nil
	}
	return false, &Violation{
		Callable: p.callable,
		Name:     name,
		Value:    boundedRepr(value),
		Hint:     proc.node.String(),
		Path:     p.engine.Explain(proc, value),
	}
}

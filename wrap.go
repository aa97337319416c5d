package ward

import (
	"fmt"
	"reflect"
	"runtime"
)

// Wrap returns a function of the same type as fn that validates each
// argument against its hint, calls fn, then validates the first return
// value if the plan carries a ReturnKey entry. A failing check panics
// with the *Violation (which implements error), the library's analog of
// raising; the panic is never recovered internally.
//
// Hints are positional: hints[i] applies to fn's i-th parameter.
// Variadic functions are rejected at wrap time.
func (e *Engine) Wrap(fn any, hints []Hint, ret *Hint) (any, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("ward: Wrap expects a function, got %T", fn)
	}
	t := fv.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("ward: Wrap does not support variadic functions")
	}
	if len(hints) != t.NumIn() {
		return nil, fmt.Errorf("ward: %d hints for a function of %d parameters", len(hints), t.NumIn())
	}
	if ret != nil && t.NumOut() == 0 {
		return nil, fmt.Errorf("ward: return hint for a function without results")
	}

	name := callableName(fv)
	params := make([]ParamHint, 0, len(hints)+1)
	names := make([]string, len(hints))
	for i, h := range hints {
		names[i] = fmt.Sprintf("arg%d", i)
		params = append(params, ParamHint{Name: names[i], Hint: h})
	}
	if ret != nil {
		params = append(params, ParamHint{Name: ReturnKey, Hint: *ret})
	}
	plan, err := e.BuildPlan(name, params)
	if err != nil {
		return nil, err
	}

	wrapped := reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		for i, arg := range args {
			if ok, viol := plan.Check(names[i], arg.Interface()); !ok {
				panic(viol)
			}
		}
		out := fv.Call(args)
		if ret != nil {
			if ok, viol := plan.Check(ReturnKey, out[0].Interface()); !ok {
				panic(viol)
			}
		}
		return out
	})
	return wrapped.Interface(), nil
}

// Wrap wraps on the default engine.
func Wrap(fn any, hints []Hint, ret *Hint) (any, error) {
	return Default().Wrap(fn, hints, ret)
}

func callableName(fv reflect.Value) string {
	if f := runtime.FuncForPC(fv.Pointer()); f != nil {
		return f.Name()
	}
	return "func"
}

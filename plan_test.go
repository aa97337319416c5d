package ward

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildPlanPreservesOrder(t *testing.T) {
	e := New(Config{})
	plan, err := e.BuildPlan("pkg.Create", []ParamHint{
		{Name: "name", Hint: Type[string]()},
		{Name: "count", Hint: Type[int]()},
		{Name: ReturnKey, Hint: Type[bool]()},
	})
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	want := []string{"name", "count", ReturnKey}
	got := plan.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("declared order not preserved: %v", got)
		}
	}
}

func TestBuildPlanRejectsUnresolvableBeforeAnyCall(t *testing.T) {
	e := New(Config{})
	_, err := e.BuildPlan("pkg.Broken", []ParamHint{
		{Name: "x", Hint: Ref("Undefined")},
	})
	var unresolvable *UnresolvableHintError
	if !errors.As(err, &unresolvable) {
		t.Fatalf("decoration must fail with UnresolvableHintError, got %v", err)
	}
	if !strings.Contains(err.Error(), "pkg.Broken") {
		t.Fatalf("error must identify the callable, got %q", err)
	}
}

func TestBuildPlanRejectsDuplicates(t *testing.T) {
	e := New(Config{})
	_, err := e.BuildPlan("pkg.Dup", []ParamHint{
		{Name: "x", Hint: Type[int]()},
		{Name: "x", Hint: Type[string]()},
	})
	if err == nil {
		t.Fatalf("duplicate entries must be rejected")
	}
}

func TestPlanCheckViolationDetail(t *testing.T) {
	e := New(Config{})
	plan, err := e.BuildPlan("pkg.Take", []ParamHint{
		{Name: "items", Hint: SliceOf(Type[int]())},
	})
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}

	ok, violation := plan.Check("items", []int{1, 2, 3})
	if !ok || violation != nil {
		t.Fatalf("conforming value flagged: %v", violation)
	}

	ok, violation = plan.Check("items", []any{1, "x"})
	if ok || violation == nil {
		t.Fatalf("violation not reported")
	}
	if violation.Callable != "pkg.Take" || violation.Name != "items" {
		t.Fatalf("violation identity wrong: %+v", violation)
	}
	msg := violation.Error()
	for _, want := range []string{"pkg.Take", `"items"`, "[]int", "index 1"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("violation message missing %q:\n%s", want, msg)
		}
	}
}

func TestPlanCheckUnknownNamePasses(t *testing.T) {
	e := New(Config{})
	plan, err := e.BuildPlan("pkg.Partial", []ParamHint{
		{Name: "x", Hint: Type[int]()},
	})
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if ok, _ := plan.Check("unannotated", "anything"); !ok {
		t.Fatalf("entries without hints are unchecked")
	}
}

func TestPlansShareCompiledHints(t *testing.T) {
	e := New(Config{})
	a, err := e.BuildPlan("pkg.A", []ParamHint{{Name: "xs", Hint: SliceOf(Type[int]())}})
	if err != nil {
		t.Fatalf("plan a: %v", err)
	}
	b, err := e.BuildPlan("pkg.B", []ParamHint{{Name: "ys", Hint: SliceOf(Type[int]())}})
	if err != nil {
		t.Fatalf("plan b: %v", err)
	}
	pa, _ := a.Proc("xs")
	pb, _ := b.Proc("ys")
	if pa != pb {
		t.Fatalf("two callables sharing a hint must share its procedure")
	}
}

package cmdregistry

import (
	"errors"
	"testing"
)

func TestRegistryRegisterLookup(t *testing.T) {
	r := New()
	hit := false
	r.Register(Command{Name: "sample", Handler: func(ctx *Context) error {
		hit = true
		if ctx.Root != "/srv/site" {
			t.Fatalf("unexpected root %q", ctx.Root)
		}
		return nil
	}})
	ctx := &Context{Root: "/srv/site"}
	cmd, ok := r.Lookup("sample")
	if !ok {
		t.Fatalf("handler not found")
	}
	if err := cmd.Handler(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !hit {
		t.Fatalf("handler was not invoked")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := New()
	r.Register(Command{Name: "dup", Handler: func(*Context) error { return nil }})
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on duplicate register")
		}
	}()
	r.Register(Command{Name: "dup", Handler: func(*Context) error { return nil }})
}

func TestAllSorted(t *testing.T) {
	r := New()
	for _, n := range []string{"si", "ddev:init", "common:shortcuts-help"} {
		r.Register(Command{Name: n, Handler: func(*Context) error { return nil }})
	}
	all := r.All()
	if len(all) != 3 || all[0].Name != "common:shortcuts-help" || all[2].Name != "si" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestCallDispatchesThroughBoundRegistry(t *testing.T) {
	r := New()
	boom := errors.New("boom")
	r.Register(Command{Name: "inner", Handler: func(*Context) error { return boom }})
	ctx := r.Bind(&Context{})
	if err := ctx.Call("inner"); !errors.Is(err, boom) {
		t.Fatalf("expected inner error, got %v", err)
	}
	if err := ctx.Call("missing"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if err := (&Context{}).Call("inner"); err == nil {
		t.Fatalf("expected error without registry")
	}
}

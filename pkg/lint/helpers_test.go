package lint

import (
	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/parser/kotlin"
)

// stubRule is a configurable rule for engine tests. Nil hooks do nothing.
type stubRule struct {
	BaseRule

	before func(ctx *RuleContext)
	enter  func(ctx *RuleContext, n cst.Node)
	leave  func(ctx *RuleContext, n cst.Node)
	after  func(ctx *RuleContext)
}

func stub(id string, opts ...RuleOption) *stubRule {
	return &stubRule{BaseRule: NewBaseRule(id, id+" test rule", opts...)}
}

func (r *stubRule) BeforeFirstNode(ctx *RuleContext) {
	if r.before != nil {
		r.before(ctx)
	}
}

func (r *stubRule) EnterNode(ctx *RuleContext, n cst.Node) {
	if r.enter != nil {
		r.enter(ctx, n)
	}
}

func (r *stubRule) LeaveNode(ctx *RuleContext, n cst.Node) {
	if r.leave != nil {
		r.leave(ctx, n)
	}
}

func (r *stubRule) AfterLastNode(ctx *RuleContext) {
	if r.after != nil {
		r.after(ctx)
	}
}

func newTestRegistry(providers ...Provider) *Registry {
	reg := NewRegistry()
	for _, p := range providers {
		reg.Register(p)
	}
	return reg
}

func newTestEngine(providers ...Provider) *Engine {
	return NewEngine(kotlin.New(), newTestRegistry(providers...), nil)
}

// semiProvider reports every semicolon and removes it in format mode.
func semiProvider() Rule {
	r := stub("test:no-semi", WithAutocorrect())
	r.enter = func(ctx *RuleContext, n cst.Node) {
		if !n.Is(cst.KindSemicolon) {
			return
		}
		if ctx.Emit(n, "Unnecessary semicolon", true) && ctx.CanMutate() {
			_ = ctx.Remove(n)
		}
	}
	return r
}

// funProvider reports every fun keyword and never fixes anything.
func funProvider() Rule {
	r := stub("test:report-fun")
	r.enter = func(ctx *RuleContext, n cst.Node) {
		if n.Is(cst.KindKeyword) && n.Text() == "fun" {
			ctx.Emit(n, "Function found", false)
		}
	}
	return r
}

// flipProvider renames a to b and b to a, so format never settles.
func flipProvider() Rule {
	r := stub("test:flip", WithAutocorrect())
	r.enter = func(ctx *RuleContext, n cst.Node) {
		if !n.Is(cst.KindIdentifier) {
			return
		}
		var other string
		switch n.Text() {
		case "a":
			other = "b"
		case "b":
			other = "a"
		default:
			return
		}
		if ctx.Emit(n, "flip "+n.Text(), true) && ctx.CanMutate() {
			_ = ctx.ReplaceText(n, other)
		}
	}
	return r
}

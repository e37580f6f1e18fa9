package reconciler

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/ports"
	"github.com/aretw0/mdrender/pkg/ui"
)

type op struct {
	name  string
	apply func()
}

// pass holds the state of one render and the commit it produces.
type pass[C any, N comparable, Ctx any, U any] struct {
	host      ports.HostConfig[C, N, Ctx, U]
	logger    *slog.Logger
	container C

	ops     []op
	mounts  []op
	deleted []N
}

func newPass[C any, N comparable, Ctx any, U any](r *Reconciler[C, N, Ctx, U], container C) *pass[C, N, Ctx, U] {
	return &pass[C, N, Ctx, U]{
		host:      r.host,
		logger:    r.logger,
		container: container,
	}
}

func (p *pass[C, N, Ctx, U]) queue(name string, apply func()) {
	p.ops = append(p.ops, op{name: name, apply: apply})
}

// renderRoot reconciles the root description against the committed fibers.
// It returns the new fibers and the host instances that belong directly in
// the container.
func (p *pass[C, N, Ctx, U]) renderRoot(current []*fiber[N], desc ui.Node) (children []*fiber[N], desired []N, err error) {
	perr := protect("host", func() {
		hostCtx := p.host.RootHostContext(p.container)
		children, err = p.reconcileChildren(current, []ui.Node{desc}, hostCtx, 0)
	})
	if perr != nil {
		return nil, nil, perr
	}
	if err != nil {
		return nil, nil, err
	}
	return children, hostInstances(children), nil
}

// reconcileChildren matches descs against old by key (or position) and
// returns the new child fibers. Unmatched old fibers are scheduled for
// deletion.
func (p *pass[C, N, Ctx, U]) reconcileChildren(old []*fiber[N], descs []ui.Node, hostCtx Ctx, depth int) ([]*fiber[N], error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("nesting exceeds %d levels: %w", MaxDepth, domain.ErrTooDeep)
	}

	byKey := make(map[string]*fiber[N], len(old))
	for _, f := range old {
		if _, dup := byKey[f.key]; !dup {
			byKey[f.key] = f
		}
	}

	reused := make(map[*fiber[N]]bool, len(old))
	out := make([]*fiber[N], 0, len(descs))
	for i, d := range descs {
		key := slotKey(d, i)
		prev := byKey[key]
		if prev != nil {
			delete(byKey, key)
			if prev.sameType(d) {
				reused[prev] = true
			} else {
				prev = nil
			}
		}
		f, err := p.reconcile(prev, d, key, hostCtx, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	for _, f := range old {
		if !reused[f] {
			p.deleteFiber(f)
		}
	}
	return out, nil
}

// reconcile renders d, reusing prev's host instance when prev is non-nil.
func (p *pass[C, N, Ctx, U]) reconcile(prev *fiber[N], d ui.Node, key string, hostCtx Ctx, depth int) (*fiber[N], error) {
	f := &fiber[N]{kind: d.Kind, key: key}

	switch d.Kind {
	case ui.KindEmpty:
		return f, nil

	case ui.KindText:
		f.text = d.Text
		f.hasInst = true
		if prev == nil {
			f.inst = p.host.CreateTextInstance(d.Text, p.container, hostCtx)
			return f, nil
		}
		f.inst = prev.inst
		if prev.text != d.Text {
			inst, oldText, newText := f.inst, prev.text, d.Text
			p.queue("commitTextUpdate", func() { p.host.CommitTextUpdate(inst, oldText, newText) })
		}
		return f, nil

	case ui.KindHost:
		if d.Type == "" {
			return nil, fmt.Errorf("host element without type: %w", ErrInvalidElement)
		}
		return p.reconcileHost(prev, f, d, hostCtx, depth)

	case ui.KindComponent:
		if d.Component == nil {
			return nil, fmt.Errorf("component %s has no function: %w", d.Label(), ErrInvalidElement)
		}
		f.typ = d.Name
		f.fn = componentID(d.Component)
		f.props = d.Props

		var rendered ui.Node
		if err := protect("component "+d.Label(), func() {
			rendered = d.Component(d.Props, d.Children)
		}); err != nil {
			return nil, err
		}
		var old []*fiber[N]
		if prev != nil {
			old = prev.children
		}
		children, err := p.reconcileChildren(old, []ui.Node{rendered}, hostCtx, depth+1)
		if err != nil {
			return nil, err
		}
		f.children = children
		return f, nil

	case ui.KindFragment:
		var old []*fiber[N]
		if prev != nil {
			old = prev.children
		}
		children, err := p.reconcileChildren(old, d.Children, hostCtx, depth+1)
		if err != nil {
			return nil, err
		}
		f.children = children
		return f, nil
	}
	return nil, fmt.Errorf("unknown node kind %s: %w", d.Kind, ErrInvalidElement)
}

func (p *pass[C, N, Ctx, U]) reconcileHost(prev, f *fiber[N], d ui.Node, hostCtx Ctx, depth int) (*fiber[N], error) {
	props := d.Props
	if props == nil {
		props = domain.Props{}
	}
	f.typ = d.Type
	f.props = props
	f.hasInst = true
	f.textContent = p.host.ShouldSetTextContent(d.Type, props)

	childCtx := p.host.ChildHostContext(hostCtx, d.Type, p.container)

	var descs []ui.Node
	if !f.textContent {
		descs = d.Children
	}

	if prev == nil {
		f.inst = p.host.CreateInstance(d.Type, props, p.container, childCtx)
		children, err := p.reconcileChildren(nil, descs, childCtx, depth+1)
		if err != nil {
			return nil, err
		}
		f.children = children
		f.placed = hostInstances(children)
		for _, c := range f.placed {
			p.host.AppendInitialChild(f.inst, c)
		}
		if p.host.FinalizeInitialChildren(f.inst, d.Type, props, p.container, childCtx) {
			inst, typ := f.inst, d.Type
			p.mounts = append(p.mounts, op{name: "commitMount", apply: func() { p.host.CommitMount(inst, typ, props) }})
		}
		return f, nil
	}

	f.inst = prev.inst
	inst, typ, oldProps := f.inst, d.Type, prev.props
	if !reflect.DeepEqual(oldProps, props) {
		if payload, ok := p.host.PrepareUpdate(inst, typ, oldProps, props); ok {
			p.queue("commitUpdate", func() { p.host.CommitUpdate(inst, payload, typ, oldProps, props) })
		}
	}
	if prev.textContent && !f.textContent {
		p.queue("resetTextContent", func() { p.host.ResetTextContent(inst) })
	}

	children, err := p.reconcileChildren(prev.children, descs, childCtx, depth+1)
	if err != nil {
		return nil, err
	}
	f.children = children
	f.placed = hostInstances(children)
	p.place(p.instanceSlots(inst), prev.placed, f.placed)
	return f, nil
}

// deleteFiber schedules detachment of every host instance below f. Removal
// from the parent happens in place, since the instances are missing from the
// parent's desired order.
func (p *pass[C, N, Ctx, U]) deleteFiber(f *fiber[N]) {
	p.deleted = allInstances(p.deleted, f)
}

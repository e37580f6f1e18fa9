package doctree

import (
	"bytes"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/ports"
)

func TestHost_ChildHostContextIdentity(t *testing.T) {
	h := New()
	root := domain.NewContainer()
	rootCtx := h.RootHostContext(root)
	require.False(t, rootCtx.InsideText)

	p := h.ChildHostContext(rootCtx, "p", root)
	assert.Same(t, rootCtx, p, "unchanged flag must keep the parent context")

	span := h.ChildHostContext(p, "span", root)
	assert.NotSame(t, rootCtx, span)
	assert.True(t, span.InsideText)

	inner := h.ChildHostContext(span, "strong", root)
	assert.Same(t, span, inner, "flag inherited from parent keeps the parent context")

	text := h.ChildHostContext(rootCtx, "text", root)
	assert.True(t, text.InsideText)
}

func TestHost_CreatesFreshInstances(t *testing.T) {
	h := New()
	root := domain.NewContainer()
	ctx := h.RootHostContext(root)

	a := h.CreateInstance("p", domain.Props{"x": 1}, root, ctx)
	b := h.CreateInstance("p", domain.Props{"x": 1}, root, ctx)
	assert.NotSame(t, a, b)

	el := a.(*domain.Element)
	assert.Equal(t, "p", el.Tag)
	assert.Equal(t, 1, el.Props["x"])
	assert.Empty(t, el.Children)

	txt := h.CreateTextInstance("hi", root, ctx).(*domain.Text)
	assert.Equal(t, "hi", txt.Text)

	assert.False(t, h.ShouldSetTextContent("p", domain.Props{"children": "hi"}))
	assert.False(t, h.FinalizeInitialChildren(a, "p", nil, root, ctx))
	assert.Same(t, a, h.PublicInstance(a))
}

func TestHost_Mutations(t *testing.T) {
	h := New()
	root := domain.NewContainer()
	ctx := h.RootHostContext(root)

	list := h.CreateInstance("ul", nil, root, ctx)
	first := h.CreateInstance("li", nil, root, ctx)
	second := h.CreateInstance("li", nil, root, ctx)
	third := h.CreateInstance("li", nil, root, ctx)

	h.AppendInitialChild(list, first)
	h.AppendChildToContainer(root, list)
	h.AppendChild(list, third)
	h.InsertBefore(list, second, third)

	ul := list.(*domain.Element)
	assert.Equal(t, []domain.Node{first, second, third}, ul.Children)
	assert.Same(t, ul, second.Parent())

	h.RemoveChild(list, first)
	assert.Equal(t, []domain.Node{second, third}, ul.Children)

	hr := h.CreateInstance("hr", nil, root, ctx)
	h.InsertInContainerBefore(root, hr, list)
	assert.Equal(t, []domain.Node{hr, list}, root.Children)

	h.RemoveChildFromContainer(root, hr)
	assert.Equal(t, []domain.Node{list}, root.Children)

	h.ClearContainer(root)
	assert.Empty(t, root.Children)

	assert.Equal(t, 6, h.Mutations())
}

func TestHost_UpdateReplacesPropsWholesale(t *testing.T) {
	h := New(WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	root := domain.NewContainer()
	inst := h.CreateInstance("a", domain.Props{"href": "/old", "title": "t"}, root, h.RootHostContext(root))

	newProps := domain.Props{"href": "/new"}
	payload, needed := h.PrepareUpdate(inst, "a", inst.(*domain.Element).Props, newProps)
	require.True(t, needed)
	assert.Equal(t, newProps, payload)

	// Identical props still report an update.
	_, needed = h.PrepareUpdate(inst, "a", newProps, newProps)
	assert.True(t, needed)

	h.CommitUpdate(inst, payload, "a", nil, newProps)
	assert.Equal(t, domain.Props{"href": "/new"}, inst.(*domain.Element).Props)
}

func TestHost_TextUpdateAndVisibility(t *testing.T) {
	h := New()
	root := domain.NewContainer()
	txt := h.CreateTextInstance("before", root, h.RootHostContext(root))

	h.CommitTextUpdate(txt, "before", "after")
	assert.Equal(t, "after", txt.(*domain.Text).Text)

	h.HideTextInstance(txt)
	assert.Equal(t, "", txt.(*domain.Text).Text)
	var vis ports.VisibilityHost[domain.Node] = h
	vis.UnhideTextInstance(txt, "after")
	assert.Equal(t, "after", txt.(*domain.Text).Text)

	el := h.CreateInstance("p", domain.Props{"a": 1}, root, h.RootHostContext(root))
	h.HideInstance(el)
	h.UnhideInstance(el, nil)
	assert.Equal(t, domain.Props{"a": 1}, el.(*domain.Element).Props)
}

func TestHost_CommitLifecycle(t *testing.T) {
	h := New()
	root := domain.NewContainer()

	assert.False(t, h.Completed())
	assert.Nil(t, h.LastRoot())

	h.PrepareForCommit(root)
	assert.False(t, h.Completed(), "before-commit hook must not signal completion")

	h.ResetAfterCommit(root)
	assert.True(t, h.Completed())
	assert.Same(t, root, h.LastRoot())
	assert.Equal(t, 1, h.Commits())
}

func TestHost_Timers(t *testing.T) {
	h := New()
	var fired atomic.Int32

	done := make(chan struct{})
	h.ScheduleTimeout(func() {
		fired.Add(1)
		close(done)
	}, time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled timeout never fired")
	}

	handle := h.ScheduleTimeout(func() { fired.Add(100) }, 50*time.Millisecond)
	h.CancelTimeout(handle)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	assert.Nil(t, h.NoTimeout())
	h.CancelTimeout(h.NoTimeout())
	assert.Equal(t, ports.DefaultEventPriority, h.CurrentEventPriority())
}

func TestHost_Capabilities(t *testing.T) {
	h := New()
	assert.True(t, h.SupportsMutation())
	assert.False(t, h.SupportsPersistence())
	assert.False(t, h.SupportsHydration())
	assert.False(t, h.SupportsMicrotasks())
	assert.False(t, h.IsPrimaryRenderer())
}

func TestHost_InertStubsLog(t *testing.T) {
	var buf bytes.Buffer
	h := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	root := domain.NewContainer()
	inst := h.CreateInstance("p", nil, root, h.RootHostContext(root))

	h.BeforeActiveInstanceBlur()
	h.AfterActiveInstanceBlur()
	h.DetachDeletedInstance(inst)
	_, ok := h.InstanceFromNode("anything")
	assert.False(t, ok)
	assert.Empty(t, buf.String())

	h.PreparePortalMount(root)
	h.PrepareScopeUpdate(nil, inst)
	_, ok = h.InstanceFromScope(nil)
	assert.False(t, ok)
	h.CommitMount(inst, "p", nil)
	h.ResetTextContent(inst)

	out := buf.String()
	assert.Contains(t, out, "unexpected host callback")
	for _, op := range []string{"preparePortalMount", "prepareScopeUpdate", "getInstanceFromScope", "commitMount", "resetTextContent"} {
		assert.Contains(t, out, op)
	}
}

func TestHost_RejectedMutationPanics(t *testing.T) {
	h := New()
	root := domain.NewContainer()
	ctx := h.RootHostContext(root)
	outer := h.CreateInstance("blockquote", nil, root, ctx)
	inner := h.CreateInstance("p", nil, root, ctx)
	h.AppendInitialChild(outer, inner)

	assert.PanicsWithError(t, "appendChild: "+domain.ErrCycle.Error(), func() {
		h.AppendChild(inner, outer)
	})

	txt := h.CreateTextInstance("x", root, ctx)
	assert.Panics(t, func() { h.AppendChild(txt, inner) })
	assert.Panics(t, func() { h.CommitTextUpdate(inner, "", "y") })
}

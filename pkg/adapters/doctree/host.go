package doctree

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/mdrender/internal/logging"
	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/ports"
)

// HostContext is threaded from the root down to every created instance.
type HostContext struct {
	InsideText bool
}

var rootContext = &HostContext{InsideText: false}

// Host implements ports.HostConfig for a single render.
type Host struct {
	logger *slog.Logger

	lastRoot  *domain.Element
	completed bool
	commits   int
	mutations int
}

var _ ports.HostConfig[*domain.Element, domain.Node, *HostContext, domain.Props] = (*Host)(nil)

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used for callback tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// New creates a host with no committed result.
func New(opts ...Option) *Host {
	h := &Host{}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logging.NewNop()
	}
	return h
}

// Completed reports whether a commit has finished since the host was created.
func (h *Host) Completed() bool { return h.completed }

// LastRoot returns the container recorded by the last finished commit.
func (h *Host) LastRoot() *domain.Element { return h.lastRoot }

// Commits returns the number of finished commits.
func (h *Host) Commits() int { return h.commits }

// Mutations returns the number of tree mutations applied so far.
func (h *Host) Mutations() int { return h.mutations }

// -- Context --

func (h *Host) RootHostContext(root *domain.Element) *HostContext {
	return rootContext
}

// ChildHostContext keeps the parent context when the flag is unchanged, so
// descendants see an identical pointer.
func (h *Host) ChildHostContext(parent *HostContext, typ string, root *domain.Element) *HostContext {
	inside := domain.TextBearing(typ) || parent.InsideText
	h.logger.Debug("getChildHostContext", "type", typ, "previous_inside_text", parent.InsideText, "inside_text", inside)
	if inside == parent.InsideText {
		return parent
	}
	return &HostContext{InsideText: inside}
}

// -- Instances --

func (h *Host) CreateInstance(typ string, props domain.Props, root *domain.Element, hostCtx *HostContext) domain.Node {
	h.logger.Debug("createInstance", "type", typ, "props", props)
	return domain.NewElement(typ, props)
}

func (h *Host) CreateTextInstance(text string, root *domain.Element, hostCtx *HostContext) domain.Node {
	h.logger.Debug("createTextInstance", "text", text)
	return domain.NewText(text)
}

// ShouldSetTextContent is always false: text always arrives as Text children.
func (h *Host) ShouldSetTextContent(typ string, props domain.Props) bool {
	return false
}

func (h *Host) AppendInitialChild(parent, child domain.Node) {
	h.logger.Debug("appendInitialChild", "parent", describe(parent), "child", describe(child))
	h.must("appendInitialChild", asElement("appendInitialChild", parent).AppendChild(child))
}

// FinalizeInitialChildren returns false so CommitMount is never scheduled.
func (h *Host) FinalizeInitialChildren(inst domain.Node, typ string, props domain.Props, root *domain.Element, hostCtx *HostContext) bool {
	return false
}

func (h *Host) PublicInstance(inst domain.Node) any {
	return inst
}

// -- Mutation --

func (h *Host) AppendChild(parent, child domain.Node) {
	h.logger.Debug("appendChild", "parent", describe(parent), "child", describe(child))
	h.must("appendChild", asElement("appendChild", parent).AppendChild(child))
	h.mutations++
}

func (h *Host) InsertBefore(parent, child, before domain.Node) {
	h.logger.Debug("insertBefore", "parent", describe(parent), "child", describe(child), "before", describe(before))
	h.must("insertBefore", asElement("insertBefore", parent).InsertBefore(child, before))
	h.mutations++
}

func (h *Host) RemoveChild(parent, child domain.Node) {
	h.logger.Debug("removeChild", "parent", describe(parent), "child", describe(child))
	asElement("removeChild", parent).RemoveChild(child)
	h.mutations++
}

// PrepareUpdate always reports an update and hands over the whole new props.
func (h *Host) PrepareUpdate(inst domain.Node, typ string, oldProps, newProps domain.Props) (domain.Props, bool) {
	if h.logger.Enabled(context.Background(), slog.LevelDebug) {
		h.logger.Debug("prepareUpdate", "type", typ, "diff", domain.DiffProps(oldProps, newProps))
	}
	return newProps, true
}

// CommitUpdate replaces the instance's props with the payload.
func (h *Host) CommitUpdate(inst domain.Node, payload domain.Props, typ string, oldProps, newProps domain.Props) {
	h.logger.Debug("commitUpdate", "instance", describe(inst))
	asElement("commitUpdate", inst).SetProps(payload)
	h.mutations++
}

func (h *Host) CommitTextUpdate(text domain.Node, oldText, newText string) {
	h.logger.Debug("commitTextUpdate", "old", oldText, "new", newText)
	asText("commitTextUpdate", text).SetText(newText)
	h.mutations++
}

func (h *Host) CommitMount(inst domain.Node, typ string, props domain.Props) {
	h.unexpected("commitMount", "instance", describe(inst))
}

func (h *Host) ResetTextContent(inst domain.Node) {
	h.unexpected("resetTextContent", "instance", describe(inst))
}

func (h *Host) DetachDeletedInstance(inst domain.Node) {}

// -- Container --

func (h *Host) AppendChildToContainer(c *domain.Element, child domain.Node) {
	h.logger.Debug("appendChildToContainer", "container", c.Tag, "child", describe(child))
	h.must("appendChildToContainer", c.AppendChild(child))
	h.mutations++
}

func (h *Host) InsertInContainerBefore(c *domain.Element, child, before domain.Node) {
	h.logger.Debug("insertInContainerBefore", "container", c.Tag, "child", describe(child), "before", describe(before))
	h.must("insertInContainerBefore", c.InsertBefore(child, before))
	h.mutations++
}

func (h *Host) RemoveChildFromContainer(c *domain.Element, child domain.Node) {
	h.logger.Debug("removeChildFromContainer", "container", c.Tag, "child", describe(child))
	c.RemoveChild(child)
	h.mutations++
}

func (h *Host) ClearContainer(c *domain.Element) {
	h.logger.Debug("clearContainer", "children", len(c.Children))
	c.Clear()
}

func (h *Host) PreparePortalMount(c *domain.Element) {
	h.unexpected("preparePortalMount")
}

// -- Commit --

func (h *Host) PrepareForCommit(c *domain.Element) {
	h.logger.Debug("prepareForCommit called")
}

// ResetAfterCommit records the committed container and marks the render
// complete.
func (h *Host) ResetAfterCommit(c *domain.Element) {
	h.logger.Debug("resetAfterCommit called", "children", len(c.Children))
	h.lastRoot = c
	h.completed = true
	h.commits++
}

// -- Visibility --

func (h *Host) HideInstance(inst domain.Node) {}

func (h *Host) UnhideInstance(inst domain.Node, props domain.Props) {}

func (h *Host) HideTextInstance(text domain.Node) {
	asText("hideTextInstance", text).SetText("")
}

func (h *Host) UnhideTextInstance(inst domain.Node, text string) {
	asText("unhideTextInstance", inst).SetText(text)
}

// -- Timers --

func (h *Host) ScheduleTimeout(fn func(), delay time.Duration) ports.TimeoutHandle {
	return time.AfterFunc(delay, fn)
}

func (h *Host) CancelTimeout(handle ports.TimeoutHandle) {
	if t, ok := handle.(*time.Timer); ok && t != nil {
		t.Stop()
	}
}

func (h *Host) NoTimeout() ports.TimeoutHandle { return nil }

func (h *Host) CurrentEventPriority() ports.Priority {
	return ports.DefaultEventPriority
}

// -- Capabilities --

func (h *Host) SupportsMutation() bool    { return true }
func (h *Host) SupportsPersistence() bool { return false }
func (h *Host) SupportsHydration() bool   { return false }
func (h *Host) SupportsMicrotasks() bool  { return false }
func (h *Host) IsPrimaryRenderer() bool   { return false }

// -- Scopes --

func (h *Host) BeforeActiveInstanceBlur() {}

func (h *Host) AfterActiveInstanceBlur() {}

func (h *Host) PrepareScopeUpdate(scope any, inst domain.Node) {
	h.unexpected("prepareScopeUpdate")
}

func (h *Host) InstanceFromScope(scope any) (domain.Node, bool) {
	h.unexpected("getInstanceFromScope")
	return nil, false
}

func (h *Host) InstanceFromNode(node any) (domain.Node, bool) {
	return nil, false
}

// -- Helpers --

// unexpected logs a callback the reconciler should never issue to this host.
func (h *Host) unexpected(op string, args ...any) {
	h.logger.Warn("unexpected host callback", append([]any{"op", op}, args...)...)
}

// must turns a rejected tree operation into a panic; the reconciler recovers
// it and fails the commit.
func (h *Host) must(op string, err error) {
	if err != nil {
		h.logger.Error("tree mutation rejected", "op", op, "error", err)
		panic(fmt.Errorf("%s: %w", op, err))
	}
}

func asElement(op string, n domain.Node) *domain.Element {
	el, ok := n.(*domain.Element)
	if !ok {
		panic(fmt.Errorf("%s: expected element instance, got %s", op, describe(n)))
	}
	return el
}

func asText(op string, n domain.Node) *domain.Text {
	t, ok := n.(*domain.Text)
	if !ok {
		panic(fmt.Errorf("%s: expected text instance, got %s", op, describe(n)))
	}
	return t
}

func describe(n domain.Node) string {
	switch v := n.(type) {
	case *domain.Element:
		return "Element(" + v.Tag + ")"
	case *domain.Text:
		return fmt.Sprintf("Text(%q)", v.Text)
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", n)
}

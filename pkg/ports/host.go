package ports

import (
	"time"

	"github.com/aretw0/mdrender/pkg/domain"
)

// Props is the attribute map handed to host callbacks.
type Props = domain.Props

// Priority is the event priority a host reports for the current update.
type Priority int

const (
	DiscreteEventPriority Priority = iota + 1
	ContinuousEventPriority
	DefaultEventPriority
	IdleEventPriority
)

// TimeoutHandle is an opaque handle returned by ScheduleTimeout.
type TimeoutHandle any

// ContextHost computes the host context threaded down the tree.
type ContextHost[C, Ctx any] interface {
	RootHostContext(root C) Ctx
	// ChildHostContext should return parent unchanged when nothing differs.
	ChildHostContext(parent Ctx, typ string, root C) Ctx
}

// InstanceHost creates instances and assembles detached subtrees.
type InstanceHost[C any, N comparable, Ctx any] interface {
	CreateInstance(typ string, props Props, root C, hostCtx Ctx) N
	CreateTextInstance(text string, root C, hostCtx Ctx) N
	AppendInitialChild(parent, child N)
	// FinalizeInitialChildren returning true schedules CommitMount.
	FinalizeInitialChildren(inst N, typ string, props Props, root C, hostCtx Ctx) bool
	// ShouldSetTextContent returning true means the host renders the
	// element's text from props and the reconciler creates no text children.
	ShouldSetTextContent(typ string, props Props) bool
	PublicInstance(inst N) any
}

// MutationHost applies changes to attached instances during a commit.
type MutationHost[N comparable, U any] interface {
	AppendChild(parent, child N)
	InsertBefore(parent, child, before N)
	RemoveChild(parent, child N)
	// PrepareUpdate returns the payload for CommitUpdate and whether an
	// update is needed at all.
	PrepareUpdate(inst N, typ string, oldProps, newProps Props) (U, bool)
	CommitUpdate(inst N, payload U, typ string, oldProps, newProps Props)
	CommitTextUpdate(text N, oldText, newText string)
	CommitMount(inst N, typ string, props Props)
	ResetTextContent(inst N)
	DetachDeletedInstance(inst N)
}

// ContainerHost applies changes directly against the root container.
type ContainerHost[C any, N comparable] interface {
	AppendChildToContainer(c C, child N)
	InsertInContainerBefore(c C, child, before N)
	RemoveChildFromContainer(c C, child N)
	ClearContainer(c C)
	PreparePortalMount(c C)
}

// CommitHost brackets every commit.
type CommitHost[C any] interface {
	PrepareForCommit(c C)
	ResetAfterCommit(c C)
}

// VisibilityHost hides and reveals instances for suspended subtrees.
type VisibilityHost[N comparable] interface {
	HideInstance(inst N)
	UnhideInstance(inst N, props Props)
	HideTextInstance(text N)
	UnhideTextInstance(inst N, text string)
}

// TimerHost provides the platform's deferred-callback primitives.
type TimerHost interface {
	ScheduleTimeout(fn func(), delay time.Duration) TimeoutHandle
	CancelTimeout(h TimeoutHandle)
	NoTimeout() TimeoutHandle
	CurrentEventPriority() Priority
}

// Capabilities advertises which optional reconciler modes a host supports.
type Capabilities interface {
	SupportsMutation() bool
	SupportsPersistence() bool
	SupportsHydration() bool
	SupportsMicrotasks() bool
	IsPrimaryRenderer() bool
}

// ScopeHost covers focus and scope hooks.
type ScopeHost[N comparable] interface {
	BeforeActiveInstanceBlur()
	AfterActiveInstanceBlur()
	PrepareScopeUpdate(scope any, inst N)
	InstanceFromScope(scope any) (N, bool)
	InstanceFromNode(node any) (N, bool)
}

// HostConfig is the full callback surface a reconciler requires.
//
// C is the container type, N the instance type (element and text instances
// share it), Ctx the host context and U the update payload.
type HostConfig[C any, N comparable, Ctx any, U any] interface {
	ContextHost[C, Ctx]
	InstanceHost[C, N, Ctx]
	MutationHost[N, U]
	ContainerHost[C, N]
	CommitHost[C]
	VisibilityHost[N]
	TimerHost
	Capabilities
	ScopeHost[N]
}

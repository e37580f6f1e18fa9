package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRenderStart    EventType = "render_start"
	EventCommit         EventType = "commit"
	EventRenderComplete EventType = "render_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RenderID  string    `json:"render_id"`
}

// CommitEvent is emitted after the host reports a finished commit.
type CommitEvent struct {
	EventBase
	Mutations int `json:"mutations"`
	Nodes     int `json:"nodes"`
}

// RenderEvent marks the start or end of a render call.
type RenderEvent struct {
	EventBase
	Bytes    int           `json:"bytes,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Cached   bool          `json:"cached,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for render observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnRenderStart    func(context.Context, *RenderEvent)
	OnCommit         func(context.Context, *CommitEvent)
	OnRenderComplete func(context.Context, *RenderEvent)
}

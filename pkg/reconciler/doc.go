// Package reconciler is a small tree-reconciliation engine written against
// ports.HostConfig.
//
// A Root pairs a host container with the fiber tree of its last committed
// description. UpdateContainer queues a new description; FlushSync (or the
// timeout the host schedules) renders it, diffs it against the committed
// fibers and replays the resulting mutations on the host inside a single
// commit bracketed by PrepareForCommit and ResetAfterCommit.
//
// The engine knows nothing about the host's instances. Everything it learns
// about them comes from the callbacks.
package reconciler
